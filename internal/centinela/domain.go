// Package centinela keeps the append-only audit trail of every mutating
// operation: who changed what, in which menu and module, and when.
package centinela

import "time"

// Audit actions recorded by the modules. Free text is allowed (the usuario
// module records CAMBIAR CONTRASEÑA, SUSPENDER, ACTIVAR) but the three CRUD
// verbs cover almost every row.
const (
	AccionNuevo    = "NUEVO"
	AccionEditar   = "EDITAR"
	AccionEliminar = "ELIMINAR"
)

// Entry is one row of the centinela table. Rows are inserted once and never
// updated or deleted.
type Entry struct {
	ID          int64     `json:"id"`
	Fecha       time.Time `json:"fecha"`
	IDUsuario   *int64    `json:"id_usuario"`
	IDEmpresa   *int64    `json:"id_empresa"`
	Modulo      string    `json:"modulo"`
	Menu        string    `json:"menu"`
	Accion      string    `json:"accion"`
	Descripcion string    `json:"descripcion"`
}

// Movimiento is the report row served to the SPA: an entry joined with the
// acting user's name.
type Movimiento struct {
	Fecha       time.Time `json:"fecha"`
	Modulo      string    `json:"modulo"`
	Menu        string    `json:"menu"`
	Accion      string    `json:"accion"`
	Descripcion string    `json:"descripcion"`
	Usuario     string    `json:"usuario"`
}
