package incidencias

import "github.com/coarapp/coar/internal/shared"

// Estado values of an incident through its lifecycle.
const (
	EstadoRegistrado = "REGISTRADO"
	EstadoDerivado   = "DERIVADO"
	EstadoFinalizado = "FINALIZADO"
	EstadoAnulado    = "ANULADO"
)

// Incidencia is one registered incident. Serie and Numero are assigned from
// the per-tenant correlative at creation and never change afterwards.
type Incidencia struct {
	ID                int64   `json:"id"`
	Serie             string  `json:"serie"`
	Numero            string  `json:"numero"`
	Descripcion       string  `json:"descripcion"`
	Fecha             string  `json:"fecha"`
	Estado            string  `json:"estado"`
	IDTipoIncidencia  int64   `json:"id_tipo_incidencia"`
	IDLugarIncidencia int64   `json:"id_lugar_incidencia"`
	IDArea            *int64  `json:"id_area"`
	IDEstudiante      *int64  `json:"id_estudiante"`
	MotivoAnulacion   *string `json:"motivo_anulacion"`
	IDUsuario         int64   `json:"-"`
	IDEmpresa         int64   `json:"-"`
}

// Secuencia renders the "SERIE-NUMERO" correlative shown in listings.
func (i Incidencia) Secuencia() string {
	return i.Serie + "-" + i.Numero
}

// Row is the listing projection with the catalog names resolved.
type Row struct {
	ID             int64   `json:"id"`
	Secuencia      string  `json:"secuencia"`
	Fecha          string  `json:"fecha"`
	Descripcion    string  `json:"descripcion"`
	Estado         string  `json:"estado"`
	TipoIncidencia string  `json:"tipo_incidencia"`
	Lugar          string  `json:"lugar"`
	Area           *string `json:"area"`
	Estudiante     *string `json:"estudiante"`
}

// InitialData feeds the incident registration form: the correlative the next
// incident will take plus the active dropdown rows.
type InitialData struct {
	Secuencia       string          `json:"secuencia"`
	TipoIncidencias []shared.Option `json:"tipoIncidencias"`
	Lugares         []shared.Option `json:"lugares"`
	Areas           []shared.Option `json:"areas"`
}
