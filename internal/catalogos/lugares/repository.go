package lugares

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/platform/httpx"
)

// Repository provides PostgreSQL backed persistence for lugares.
type Repository struct{}

// NewRepository constructs a repository.
func NewRepository() *Repository {
	return &Repository{}
}

// List returns the active lugares of one empresa, newest first.
func (Repository) List(ctx context.Context, q db.DBTX, empresaID int64) ([]Lugar, error) {
	rows, err := q.Query(ctx,
		`SELECT id, nombre, referencia, estado
		 FROM lugar WHERE id_empresa = $1 AND estado <> 0 ORDER BY id DESC`, empresaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lugares []Lugar
	for rows.Next() {
		var l Lugar
		if err := rows.Scan(&l.ID, &l.Nombre, &l.Referencia, &l.Estado); err != nil {
			return nil, err
		}
		l.IDEmpresa = empresaID
		lugares = append(lugares, l)
	}
	return lugares, rows.Err()
}

// Get fetches one lugar of the empresa.
func (Repository) Get(ctx context.Context, q db.DBTX, id, empresaID int64) (Lugar, error) {
	var l Lugar
	err := q.QueryRow(ctx,
		`SELECT id, nombre, referencia, estado
		 FROM lugar WHERE id = $1 AND id_empresa = $2`, id, empresaID).
		Scan(&l.ID, &l.Nombre, &l.Referencia, &l.Estado)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lugar{}, httpx.ErrNotFound
		}
		return Lugar{}, err
	}
	l.IDEmpresa = empresaID
	return l, nil
}

// Create inserts a new active lugar.
func (Repository) Create(ctx context.Context, q db.DBTX, l Lugar) (Lugar, error) {
	err := q.QueryRow(ctx,
		`INSERT INTO lugar (nombre, referencia, estado, id_usuario, id_empresa)
		 VALUES ($1, $2, 1, $3, $4) RETURNING id, estado`,
		l.Nombre, l.Referencia, l.IDUsuario, l.IDEmpresa).
		Scan(&l.ID, &l.Estado)
	if err != nil {
		return Lugar{}, err
	}
	return l, nil
}

// Update rewrites the editable fields of one lugar.
func (Repository) Update(ctx context.Context, q db.DBTX, l Lugar) error {
	tag, err := q.Exec(ctx,
		`UPDATE lugar SET nombre = $1, referencia = $2 WHERE id = $3 AND id_empresa = $4`,
		l.Nombre, l.Referencia, l.ID, l.IDEmpresa)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// SoftDelete marks the lugar inactive.
func (Repository) SoftDelete(ctx context.Context, q db.DBTX, id, empresaID int64) error {
	tag, err := q.Exec(ctx,
		`UPDATE lugar SET estado = 0 WHERE id = $1 AND id_empresa = $2`, id, empresaID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
