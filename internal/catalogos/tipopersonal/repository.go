package tipopersonal

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/platform/httpx"
)

// Repository provides PostgreSQL backed persistence for tipos de personal.
type Repository struct{}

// NewRepository constructs a repository.
func NewRepository() *Repository {
	return &Repository{}
}

// List returns the active tipos of one empresa, newest first.
func (Repository) List(ctx context.Context, q db.DBTX, empresaID int64) ([]TipoPersonal, error) {
	rows, err := q.Query(ctx,
		`SELECT id, nombre, descripcion, estado
		 FROM tipo_personal WHERE id_empresa = $1 AND estado <> 0 ORDER BY id DESC`, empresaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tipos []TipoPersonal
	for rows.Next() {
		var t TipoPersonal
		if err := rows.Scan(&t.ID, &t.Nombre, &t.Descripcion, &t.Estado); err != nil {
			return nil, err
		}
		t.IDEmpresa = empresaID
		tipos = append(tipos, t)
	}
	return tipos, rows.Err()
}

// Get fetches one tipo of the empresa.
func (Repository) Get(ctx context.Context, q db.DBTX, id, empresaID int64) (TipoPersonal, error) {
	var t TipoPersonal
	err := q.QueryRow(ctx,
		`SELECT id, nombre, descripcion, estado
		 FROM tipo_personal WHERE id = $1 AND id_empresa = $2`, id, empresaID).
		Scan(&t.ID, &t.Nombre, &t.Descripcion, &t.Estado)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TipoPersonal{}, httpx.ErrNotFound
		}
		return TipoPersonal{}, err
	}
	t.IDEmpresa = empresaID
	return t, nil
}

// Create inserts a new active tipo. The unique index on (id_empresa, nombre)
// rejects duplicates.
func (Repository) Create(ctx context.Context, q db.DBTX, t TipoPersonal) (TipoPersonal, error) {
	err := q.QueryRow(ctx,
		`INSERT INTO tipo_personal (nombre, descripcion, estado, id_usuario, id_empresa)
		 VALUES ($1, $2, 1, $3, $4) RETURNING id, estado`,
		t.Nombre, t.Descripcion, t.IDUsuario, t.IDEmpresa).
		Scan(&t.ID, &t.Estado)
	if err != nil {
		return TipoPersonal{}, err
	}
	return t, nil
}

// Update rewrites the editable fields of one tipo.
func (Repository) Update(ctx context.Context, q db.DBTX, t TipoPersonal) error {
	tag, err := q.Exec(ctx,
		`UPDATE tipo_personal SET nombre = $1, descripcion = $2 WHERE id = $3 AND id_empresa = $4`,
		t.Nombre, t.Descripcion, t.ID, t.IDEmpresa)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// SoftDelete marks the tipo inactive.
func (Repository) SoftDelete(ctx context.Context, q db.DBTX, id, empresaID int64) error {
	tag, err := q.Exec(ctx,
		`UPDATE tipo_personal SET estado = 0 WHERE id = $1 AND id_empresa = $2`, id, empresaID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
