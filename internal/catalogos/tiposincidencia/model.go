package tiposincidencia

// TipoIncidencia classifies incidents by nature and severity. The
// derivacion_inmediata flag keeps the SI/NO representation the SPA sends.
type TipoIncidencia struct {
	ID                  int64  `json:"id"`
	Nombre              string `json:"nombre"`
	NivelIncidencia     string `json:"nivel_incidencia"`
	NivelSeveridad      string `json:"nivel_severidad"`
	DerivacionInmediata string `json:"derivacion_inmediata"`
	Estado              int    `json:"estado"`
	IDUsuario           *int64 `json:"-"`
	IDEmpresa           int64  `json:"-"`
}
