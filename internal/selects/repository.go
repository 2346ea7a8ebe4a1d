package selects

import (
	"context"

	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/shared"
)

// Repository reads the dropdown projections. Every query is tenant-scoped
// except the static reference tables.
type Repository struct{}

// NewRepository constructs a repository.
func NewRepository() *Repository {
	return &Repository{}
}

func options(ctx context.Context, q db.DBTX, query string, args ...any) ([]shared.Option, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return shared.CollectOptions(rows)
}

// TiposPersonal returns the active staff types.
func (Repository) TiposPersonal(ctx context.Context, q db.DBTX, empresaID int64) ([]shared.Option, error) {
	return options(ctx, q,
		`SELECT id, nombre FROM tipo_personal
		 WHERE id_empresa = $1 AND estado = 1 ORDER BY nombre`, empresaID)
}

// Areas returns the active areas.
func (Repository) Areas(ctx context.Context, q db.DBTX, empresaID int64) ([]shared.Option, error) {
	return options(ctx, q,
		`SELECT id, nombre FROM area
		 WHERE id_empresa = $1 AND estado <> 0 ORDER BY nombre`, empresaID)
}

// Lugares returns the active places.
func (Repository) Lugares(ctx context.Context, q db.DBTX, empresaID int64) ([]shared.Option, error) {
	return options(ctx, q,
		`SELECT id, nombre FROM lugar
		 WHERE id_empresa = $1 AND estado <> 0 ORDER BY nombre`, empresaID)
}

// TiposIncidencia returns the active incident types.
func (Repository) TiposIncidencia(ctx context.Context, q db.DBTX, empresaID int64) ([]shared.Option, error) {
	return options(ctx, q,
		`SELECT id, nombre FROM tipos_incidencia
		 WHERE id_empresa = $1 AND estado = 1 ORDER BY nombre`, empresaID)
}

// EstadosMonitoreo returns the monitoring states, optionally filtered by
// tipo. An empty tipo or "TODOS" returns every state.
func (Repository) EstadosMonitoreo(ctx context.Context, q db.DBTX, empresaID int64, tipo string) ([]shared.Option, error) {
	if tipo != "" && tipo != "TODOS" {
		return options(ctx, q,
			`SELECT id, nombre FROM estado_monitoreo
			 WHERE id_empresa = $1 AND tipo = $2 ORDER BY nombre`, empresaID, tipo)
	}
	return options(ctx, q,
		`SELECT id, nombre FROM estado_monitoreo
		 WHERE id_empresa = $1 ORDER BY nombre`, empresaID)
}

// TiposDocumento returns the static document types.
func (Repository) TiposDocumento(ctx context.Context, q db.DBTX) ([]shared.Option, error) {
	return options(ctx, q,
		`SELECT id, nombre FROM static_documento ORDER BY nombre`)
}

// Proveedores returns the active providers.
func (Repository) Proveedores(ctx context.Context, q db.DBTX, empresaID int64) ([]shared.Option, error) {
	return options(ctx, q,
		`SELECT id, razon_social FROM proveedor
		 WHERE id_empresa = $1 AND estado <> 0 ORDER BY razon_social`, empresaID)
}

// Ubigeos returns the static ubigeo catalog as "distrito - provincia -
// departamento" rows.
func (Repository) Ubigeos(ctx context.Context, q db.DBTX) ([]shared.Option, error) {
	return options(ctx, q,
		`SELECT id, distrito || ' - ' || provincia || ' - ' || departamento
		 FROM static_ubigeo
		 ORDER BY departamento, provincia, distrito`)
}

// Personal returns the active staff as "nombre apellido" rows.
func (Repository) Personal(ctx context.Context, q db.DBTX, empresaID int64) ([]shared.Option, error) {
	return options(ctx, q,
		`SELECT id, nombre || ' ' || apellido FROM personal
		 WHERE id_empresa = $1 AND estado = 1 ORDER BY nombre, apellido`, empresaID)
}

// Roles returns the active roles.
func (Repository) Roles(ctx context.Context, q db.DBTX, empresaID int64) ([]shared.Option, error) {
	return options(ctx, q,
		`SELECT id, nombre FROM rol
		 WHERE id_empresa = $1 AND estado <> 0 ORDER BY nombre`, empresaID)
}
