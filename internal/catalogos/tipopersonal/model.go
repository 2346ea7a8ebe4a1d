package tipopersonal

// TipoPersonal categorizes staff members (docente, vigilancia, limpieza...).
// The nombre is unique per empresa; duplicates surface as a 409.
type TipoPersonal struct {
	ID          int64   `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Estado      int     `json:"estado"`
	IDUsuario   *int64  `json:"-"`
	IDEmpresa   int64   `json:"-"`
}
