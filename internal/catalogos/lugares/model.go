package lugares

// Lugar is a physical place of the school where incidents can happen.
type Lugar struct {
	ID         int64   `json:"id"`
	Nombre     string  `json:"nombre"`
	Referencia *string `json:"referencia"`
	Estado     int     `json:"estado"`
	IDUsuario  *int64  `json:"-"`
	IDEmpresa  int64   `json:"-"`
}
