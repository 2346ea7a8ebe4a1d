package roles

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/platform/httpx"
)

// Repository provides PostgreSQL backed persistence for roles and their
// permission rows.
type Repository struct{}

// NewRepository constructs a repository.
func NewRepository() *Repository {
	return &Repository{}
}

// List returns the active roles of one empresa, newest first.
func (Repository) List(ctx context.Context, q db.DBTX, empresaID int64) ([]Rol, error) {
	rows, err := q.Query(ctx,
		`SELECT id, nombre, fl_no_dashboard, estado
		 FROM rol WHERE id_empresa = $1 AND estado <> 0 ORDER BY id DESC`, empresaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []Rol
	for rows.Next() {
		var rol Rol
		if err := rows.Scan(&rol.ID, &rol.Nombre, &rol.FlNoDashboard, &rol.Estado); err != nil {
			return nil, err
		}
		rol.IDEmpresa = empresaID
		roles = append(roles, rol)
	}
	return roles, rows.Err()
}

// Get fetches one role of the empresa.
func (Repository) Get(ctx context.Context, q db.DBTX, id, empresaID int64) (Rol, error) {
	var rol Rol
	err := q.QueryRow(ctx,
		`SELECT id, nombre, fl_no_dashboard, estado
		 FROM rol WHERE id = $1 AND id_empresa = $2`, id, empresaID).
		Scan(&rol.ID, &rol.Nombre, &rol.FlNoDashboard, &rol.Estado)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Rol{}, httpx.ErrNotFound
		}
		return Rol{}, err
	}
	rol.IDEmpresa = empresaID
	return rol, nil
}

// ListPermisos returns the permission rows of one role, menu-ordered.
func (Repository) ListPermisos(ctx context.Context, q db.DBTX, rolID int64) ([]Permiso, error) {
	rows, err := q.Query(ctx,
		`SELECT menu, can_view, can_new, can_edit, can_delete
		 FROM permiso WHERE id_rol = $1 ORDER BY menu`, rolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var permisos []Permiso
	for rows.Next() {
		var p Permiso
		if err := rows.Scan(&p.Menu, &p.View, &p.New, &p.Edit, &p.Delete); err != nil {
			return nil, err
		}
		permisos = append(permisos, p)
	}
	return permisos, rows.Err()
}

// Create inserts a new active role.
func (Repository) Create(ctx context.Context, q db.DBTX, rol Rol) (Rol, error) {
	err := q.QueryRow(ctx,
		`INSERT INTO rol (nombre, fl_no_dashboard, estado, id_empresa)
		 VALUES ($1, $2, 1, $3) RETURNING id, estado`,
		rol.Nombre, rol.FlNoDashboard, rol.IDEmpresa).
		Scan(&rol.ID, &rol.Estado)
	if err != nil {
		return Rol{}, err
	}
	return rol, nil
}

// Update rewrites the editable fields of one role.
func (Repository) Update(ctx context.Context, q db.DBTX, rol Rol) error {
	tag, err := q.Exec(ctx,
		`UPDATE rol SET nombre = $1, fl_no_dashboard = $2 WHERE id = $3 AND id_empresa = $4`,
		rol.Nombre, rol.FlNoDashboard, rol.ID, rol.IDEmpresa)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// SoftDelete marks the role inactive. Permission rows stay in place so the
// role can be reactivated with its grants intact.
func (Repository) SoftDelete(ctx context.Context, q db.DBTX, id, empresaID int64) error {
	tag, err := q.Exec(ctx,
		`UPDATE rol SET estado = 0 WHERE id = $1 AND id_empresa = $2`, id, empresaID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// UpsertPermiso inserts or rewrites one grant. The UNIQUE(id_rol, menu)
// constraint backs the conflict target.
func (Repository) UpsertPermiso(ctx context.Context, q db.DBTX, rolID int64, p Permiso) error {
	_, err := q.Exec(ctx,
		`INSERT INTO permiso (id_rol, menu, can_view, can_new, can_edit, can_delete)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id_rol, menu)
		 DO UPDATE SET can_view = EXCLUDED.can_view, can_new = EXCLUDED.can_new,
		               can_edit = EXCLUDED.can_edit, can_delete = EXCLUDED.can_delete`,
		rolID, p.Menu, p.View, p.New, p.Edit, p.Delete)
	return err
}

// DeletePermisosExcept removes the grants whose menu is absent from keep.
func (Repository) DeletePermisosExcept(ctx context.Context, q db.DBTX, rolID int64, keep []string) error {
	_, err := q.Exec(ctx,
		`DELETE FROM permiso WHERE id_rol = $1 AND menu <> ALL($2)`, rolID, keep)
	return err
}
