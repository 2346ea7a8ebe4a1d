package estadosmonitoreo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/platform/httpx"
)

// Repository provides PostgreSQL backed persistence for estados de monitoreo.
type Repository struct{}

// NewRepository constructs a repository.
func NewRepository() *Repository {
	return &Repository{}
}

// List returns the estados of one empresa, newest first.
func (Repository) List(ctx context.Context, q db.DBTX, empresaID int64) ([]EstadoMonitoreo, error) {
	rows, err := q.Query(ctx,
		`SELECT id, nombre, tipo, color_bg, color_text
		 FROM estado_monitoreo WHERE id_empresa = $1 ORDER BY id DESC`, empresaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var estados []EstadoMonitoreo
	for rows.Next() {
		var e EstadoMonitoreo
		if err := rows.Scan(&e.ID, &e.Nombre, &e.Tipo, &e.ColorBg, &e.ColorText); err != nil {
			return nil, err
		}
		e.IDEmpresa = empresaID
		estados = append(estados, e)
	}
	return estados, rows.Err()
}

// Get fetches one estado of the empresa.
func (Repository) Get(ctx context.Context, q db.DBTX, id, empresaID int64) (EstadoMonitoreo, error) {
	var e EstadoMonitoreo
	err := q.QueryRow(ctx,
		`SELECT id, nombre, tipo, color_bg, color_text
		 FROM estado_monitoreo WHERE id = $1 AND id_empresa = $2`, id, empresaID).
		Scan(&e.ID, &e.Nombre, &e.Tipo, &e.ColorBg, &e.ColorText)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return EstadoMonitoreo{}, httpx.ErrNotFound
		}
		return EstadoMonitoreo{}, err
	}
	e.IDEmpresa = empresaID
	return e, nil
}

// Create inserts a new estado.
func (Repository) Create(ctx context.Context, q db.DBTX, e EstadoMonitoreo) (EstadoMonitoreo, error) {
	err := q.QueryRow(ctx,
		`INSERT INTO estado_monitoreo (nombre, tipo, color_bg, color_text, id_empresa)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		e.Nombre, e.Tipo, e.ColorBg, e.ColorText, e.IDEmpresa).
		Scan(&e.ID)
	if err != nil {
		return EstadoMonitoreo{}, err
	}
	return e, nil
}

// Update rewrites the editable fields of one estado.
func (Repository) Update(ctx context.Context, q db.DBTX, e EstadoMonitoreo) error {
	tag, err := q.Exec(ctx,
		`UPDATE estado_monitoreo SET nombre = $1, tipo = $2, color_bg = $3, color_text = $4
		 WHERE id = $5 AND id_empresa = $6`,
		e.Nombre, e.Tipo, e.ColorBg, e.ColorText, e.ID, e.IDEmpresa)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// Delete removes the estado. Monitoring states are not soft deleted; the
// board rebuilds from the remaining rows.
func (Repository) Delete(ctx context.Context, q db.DBTX, id, empresaID int64) error {
	tag, err := q.Exec(ctx,
		`DELETE FROM estado_monitoreo WHERE id = $1 AND id_empresa = $2`, id, empresaID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
