package usuarios

// Usuario is the management view of an account, with the role and linked
// person names resolved for the table.
type Usuario struct {
	ID                      int64   `json:"id"`
	Nombre                  string  `json:"nombre"`
	Apellido                string  `json:"apellido"`
	Usuario                 string  `json:"usuario"`
	Email                   string  `json:"email"`
	TipoPersona             string  `json:"tipo_persona"`
	IDRol                   *int64  `json:"id_rol"`
	Rol                     string  `json:"rol"`
	IDPersonal              *int64  `json:"id_personal"`
	PersonalNombre          string  `json:"personal_nombre"`
	IDEstudiante            *int64  `json:"id_estudiante"`
	EstudianteNombre        string  `json:"estudiante_nombre"`
	Imagen                  *string `json:"imagen"`
	FlVerInformacionPrivada bool    `json:"fl_ver_informacion_privada"`
	FlSuspendido            bool    `json:"fl_suspendido"`
	IDEmpresa               int64   `json:"-"`
}

// TipoPersona values an account can be linked as.
const (
	TipoPersonaStandard   = "STANDARD"
	TipoPersonaDocente    = "DOCENTE"
	TipoPersonaEstudiante = "ESTUDIANTE"
)
