package areas

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/platform/httpx"
)

// Repository provides PostgreSQL backed persistence for areas.
type Repository struct{}

// NewRepository constructs a repository.
func NewRepository() *Repository {
	return &Repository{}
}

// List returns the active areas of one empresa, newest first.
func (Repository) List(ctx context.Context, q db.DBTX, empresaID int64) ([]Area, error) {
	rows, err := q.Query(ctx,
		`SELECT id, nombre, descripcion, estado, id_encargado
		 FROM area WHERE id_empresa = $1 AND estado <> 0 ORDER BY id DESC`, empresaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var areas []Area
	for rows.Next() {
		var a Area
		if err := rows.Scan(&a.ID, &a.Nombre, &a.Descripcion, &a.Estado, &a.IDEncargado); err != nil {
			return nil, err
		}
		a.IDEmpresa = empresaID
		areas = append(areas, a)
	}
	return areas, rows.Err()
}

// Get fetches one area of the empresa.
func (Repository) Get(ctx context.Context, q db.DBTX, id, empresaID int64) (Area, error) {
	var a Area
	err := q.QueryRow(ctx,
		`SELECT id, nombre, descripcion, estado, id_encargado
		 FROM area WHERE id = $1 AND id_empresa = $2`, id, empresaID).
		Scan(&a.ID, &a.Nombre, &a.Descripcion, &a.Estado, &a.IDEncargado)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Area{}, httpx.ErrNotFound
		}
		return Area{}, err
	}
	a.IDEmpresa = empresaID
	return a, nil
}

// Create inserts a new active area.
func (Repository) Create(ctx context.Context, q db.DBTX, a Area) (Area, error) {
	err := q.QueryRow(ctx,
		`INSERT INTO area (nombre, descripcion, estado, id_usuario, id_encargado, id_empresa)
		 VALUES ($1, $2, 1, $3, $4, $5) RETURNING id, estado`,
		a.Nombre, a.Descripcion, a.IDUsuario, a.IDEncargado, a.IDEmpresa).
		Scan(&a.ID, &a.Estado)
	if err != nil {
		return Area{}, err
	}
	return a, nil
}

// Update rewrites the editable fields of one area.
func (Repository) Update(ctx context.Context, q db.DBTX, a Area) error {
	tag, err := q.Exec(ctx,
		`UPDATE area SET nombre = $1, descripcion = $2, id_encargado = $3 WHERE id = $4 AND id_empresa = $5`,
		a.Nombre, a.Descripcion, a.IDEncargado, a.ID, a.IDEmpresa)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// SoftDelete marks the area inactive.
func (Repository) SoftDelete(ctx context.Context, q db.DBTX, id, empresaID int64) error {
	tag, err := q.Exec(ctx,
		`UPDATE area SET estado = 0 WHERE id = $1 AND id_empresa = $2`, id, empresaID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
