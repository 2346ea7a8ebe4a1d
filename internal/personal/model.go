package personal

// Personal is a staff member. The joined names (document type, provider,
// ubigeo) come along for the management table.
type Personal struct {
	ID               int64   `json:"id"`
	IDTipoPersonal   int64   `json:"id_tipo_personal"`
	IDTipoDocumento  int64   `json:"id_tipo_documento"`
	NumeroDocumento  string  `json:"numero_documento"`
	Nombre           string  `json:"nombre"`
	Apellido         string  `json:"apellido"`
	TipoContratacion string  `json:"tipo_contratacion"`
	Direccion        *string `json:"direccion"`
	Ubigeo           *string `json:"ubigeo"`
	Comentario       *string `json:"comentario"`
	IDProveedor      *int64  `json:"id_proveedor"`
	Imagen           *string `json:"imagen"`
	Firma            *string `json:"firma"`
	Estado           int     `json:"estado"`
	IDEmpresa        int64   `json:"-"`

	NombreTipoPersonal string `json:"nombre_tipo_personal"`
	NombreDocumento    string `json:"nombre_documento"`
	Proveedor          string `json:"proveedor"`
	UbigeoText         string `json:"ubigeo_text"`
}

// Contratacion values.
const (
	ContratacionDirecta = "DIRECTA"
	ContratacionTercero = "TERCERO"
)
