package incidencias

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/platform/httpx"
	"github.com/coarapp/coar/internal/shared"
)

// Repository provides PostgreSQL backed persistence for incidents.
type Repository struct{}

// NewRepository constructs a repository.
func NewRepository() *Repository {
	return &Repository{}
}

// List returns the incidents of one empresa, newest correlative first.
func (Repository) List(ctx context.Context, q db.DBTX, empresaID int64) ([]Row, error) {
	rows, err := q.Query(ctx,
		`SELECT i.id, i.serie || '-' || i.numero,
		        to_char(i.fecha, 'YYYY-MM-DD'), i.descripcion, i.estado,
		        ti.nombre, l.nombre, a.nombre,
		        e.nombres || ' ' || e.apellidos
		 FROM incidencias i
		 JOIN tipos_incidencia ti ON ti.id = i.id_tipo_incidencia
		 JOIN lugar l ON l.id = i.id_lugar_incidencia
		 LEFT JOIN area a ON a.id = i.id_area
		 LEFT JOIN estudiante e ON e.id = i.id_estudiante
		 WHERE i.id_empresa = $1
		 ORDER BY i.serie DESC, i.numero DESC`, empresaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var r Row
		err := rows.Scan(&r.ID, &r.Secuencia, &r.Fecha, &r.Descripcion,
			&r.Estado, &r.TipoIncidencia, &r.Lugar, &r.Area, &r.Estudiante)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// Get fetches one incident of the empresa.
func (Repository) Get(ctx context.Context, q db.DBTX, id, empresaID int64) (Incidencia, error) {
	var i Incidencia
	err := q.QueryRow(ctx,
		`SELECT id, serie, numero, descripcion, to_char(fecha, 'YYYY-MM-DD'),
		        estado, id_tipo_incidencia, id_lugar_incidencia, id_area,
		        id_estudiante, motivo_anulacion, id_usuario
		 FROM incidencias WHERE id = $1 AND id_empresa = $2`, id, empresaID).
		Scan(&i.ID, &i.Serie, &i.Numero, &i.Descripcion, &i.Fecha,
			&i.Estado, &i.IDTipoIncidencia, &i.IDLugarIncidencia, &i.IDArea,
			&i.IDEstudiante, &i.MotivoAnulacion, &i.IDUsuario)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Incidencia{}, httpx.ErrNotFound
		}
		return Incidencia{}, err
	}
	i.IDEmpresa = empresaID
	return i, nil
}

// Insert stores a new incident and returns its id.
func (Repository) Insert(ctx context.Context, q db.DBTX, i Incidencia) (int64, error) {
	var id int64
	err := q.QueryRow(ctx,
		`INSERT INTO incidencias
		   (serie, numero, descripcion, fecha, estado, id_tipo_incidencia,
		    id_lugar_incidencia, id_area, id_estudiante, id_usuario, id_empresa)
		 VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		i.Serie, i.Numero, i.Descripcion, i.Fecha, i.Estado, i.IDTipoIncidencia,
		i.IDLugarIncidencia, i.IDArea, i.IDEstudiante, i.IDUsuario, i.IDEmpresa).
		Scan(&id)
	return id, err
}

// TipoIncidenciaOptions returns the active incident types as dropdown rows.
func (Repository) TipoIncidenciaOptions(ctx context.Context, q db.DBTX, empresaID int64) ([]shared.Option, error) {
	rows, err := q.Query(ctx,
		`SELECT id, nombre FROM tipos_incidencia
		 WHERE id_empresa = $1 AND estado = 1 ORDER BY nombre`, empresaID)
	if err != nil {
		return nil, err
	}
	return shared.CollectOptions(rows)
}

// LugarOptions returns the active places as dropdown rows.
func (Repository) LugarOptions(ctx context.Context, q db.DBTX, empresaID int64) ([]shared.Option, error) {
	rows, err := q.Query(ctx,
		`SELECT id, nombre FROM lugar
		 WHERE id_empresa = $1 AND estado <> 0 ORDER BY nombre`, empresaID)
	if err != nil {
		return nil, err
	}
	return shared.CollectOptions(rows)
}

// AreaOptions returns the active areas as dropdown rows.
func (Repository) AreaOptions(ctx context.Context, q db.DBTX, empresaID int64) ([]shared.Option, error) {
	rows, err := q.Query(ctx,
		`SELECT id, nombre FROM area
		 WHERE id_empresa = $1 AND estado <> 0 ORDER BY nombre`, empresaID)
	if err != nil {
		return nil, err
	}
	return shared.CollectOptions(rows)
}
