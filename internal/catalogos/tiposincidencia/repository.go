package tiposincidencia

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/platform/httpx"
)

// Repository provides PostgreSQL backed persistence for tipos de incidencia.
type Repository struct{}

// NewRepository constructs a repository.
func NewRepository() *Repository {
	return &Repository{}
}

// List returns the active tipos of one empresa, newest first.
func (Repository) List(ctx context.Context, q db.DBTX, empresaID int64) ([]TipoIncidencia, error) {
	rows, err := q.Query(ctx,
		`SELECT id, nombre, nivel_incidencia, nivel_severidad, derivacion_inmediata, estado
		 FROM tipos_incidencia WHERE id_empresa = $1 AND estado <> 0 ORDER BY id DESC`, empresaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tipos []TipoIncidencia
	for rows.Next() {
		var t TipoIncidencia
		if err := rows.Scan(&t.ID, &t.Nombre, &t.NivelIncidencia, &t.NivelSeveridad, &t.DerivacionInmediata, &t.Estado); err != nil {
			return nil, err
		}
		t.IDEmpresa = empresaID
		tipos = append(tipos, t)
	}
	return tipos, rows.Err()
}

// Get fetches one tipo of the empresa.
func (Repository) Get(ctx context.Context, q db.DBTX, id, empresaID int64) (TipoIncidencia, error) {
	var t TipoIncidencia
	err := q.QueryRow(ctx,
		`SELECT id, nombre, nivel_incidencia, nivel_severidad, derivacion_inmediata, estado
		 FROM tipos_incidencia WHERE id = $1 AND id_empresa = $2`, id, empresaID).
		Scan(&t.ID, &t.Nombre, &t.NivelIncidencia, &t.NivelSeveridad, &t.DerivacionInmediata, &t.Estado)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TipoIncidencia{}, httpx.ErrNotFound
		}
		return TipoIncidencia{}, err
	}
	t.IDEmpresa = empresaID
	return t, nil
}

// Create inserts a new active tipo.
func (Repository) Create(ctx context.Context, q db.DBTX, t TipoIncidencia) (TipoIncidencia, error) {
	err := q.QueryRow(ctx,
		`INSERT INTO tipos_incidencia (nombre, nivel_incidencia, nivel_severidad, derivacion_inmediata, estado, id_usuario, id_empresa)
		 VALUES ($1, $2, $3, $4, 1, $5, $6) RETURNING id, estado`,
		t.Nombre, t.NivelIncidencia, t.NivelSeveridad, t.DerivacionInmediata, t.IDUsuario, t.IDEmpresa).
		Scan(&t.ID, &t.Estado)
	if err != nil {
		return TipoIncidencia{}, err
	}
	return t, nil
}

// Update rewrites the editable fields of one tipo.
func (Repository) Update(ctx context.Context, q db.DBTX, t TipoIncidencia) error {
	tag, err := q.Exec(ctx,
		`UPDATE tipos_incidencia
		 SET nombre = $1, nivel_incidencia = $2, nivel_severidad = $3, derivacion_inmediata = $4
		 WHERE id = $5 AND id_empresa = $6`,
		t.Nombre, t.NivelIncidencia, t.NivelSeveridad, t.DerivacionInmediata, t.ID, t.IDEmpresa)
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
		`UPDATE tipos_incidencia SET estado = 0 WHERE id = $1 AND id_empresa = $2`, id, empresaID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
