package auth

// User is the authenticated account row, including everything the identity
// middleware and the /me endpoint need.
type User struct {
	ID                      int64   `json:"id"`
	Usuario                 string  `json:"usuario"`
	Email                   string  `json:"email"`
	PasswordHash            string  `json:"-"`
	Nombre                  string  `json:"nombre"`
	Apellido                string  `json:"apellido"`
	Tipo                    string  `json:"tipo"`
	TipoPersona             string  `json:"tipo_persona"`
	IDRol                   *int64  `json:"id_rol"`
	IDPersonal              *int64  `json:"id_personal"`
	IDEstudiante            *int64  `json:"id_estudiante"`
	Imagen                  *string `json:"imagen"`
	FlVerInformacionPrivada bool    `json:"fl_ver_informacion_privada"`
	FlSuspendido            bool    `json:"fl_suspendido"`
	IDEmpresa               int64   `json:"id_empresa"`
}

// Permiso is one permission row of the user's role, in the wire shape the SPA
// uses to hide navigation entries.
type Permiso struct {
	Menu   string `json:"menu"`
	View   bool   `json:"view"`
	New    bool   `json:"new"`
	Edit   bool   `json:"edit"`
	Delete bool   `json:"delete"`
}
