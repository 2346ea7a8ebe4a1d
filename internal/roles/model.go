package roles

// Rol groups users under a named permission set within one empresa.
type Rol struct {
	ID            int64  `json:"id"`
	Nombre        string `json:"nombre"`
	FlNoDashboard bool   `json:"fl_no_dashboard"`
	Estado        int    `json:"estado"`
	IDEmpresa     int64  `json:"-"`
}

// Permiso is one menu grant of a role. The JSON field names match what the
// SPA permission matrix sends and expects.
type Permiso struct {
	Menu   string `json:"menu"`
	View   bool   `json:"view"`
	New    bool   `json:"new"`
	Edit   bool   `json:"edit"`
	Delete bool   `json:"delete"`
}

// RolConPermisos is the detail payload of one role.
type RolConPermisos struct {
	Rol
	Permisos []Permiso `json:"permisos"`
}
