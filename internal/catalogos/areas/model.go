package areas

// Area is a functional area of the school (tutoría, bienestar, ...).
type Area struct {
	ID          int64   `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Estado      int     `json:"estado"`
	IDEncargado *int64  `json:"id_encargado"`
	IDUsuario   *int64  `json:"-"`
	IDEmpresa   int64   `json:"-"`
}
