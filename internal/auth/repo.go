package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/platform/httpx"
)

// Repository defines persistence operations for the auth module.
type Repository interface {
	FindByUsuarioOrEmail(ctx context.Context, login string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	ListPermisos(ctx context.Context, rolID int64) ([]Permiso, error)
}

const userColumns = `id, usuario, email, password, COALESCE(nombre, ''), COALESCE(apellido, ''),
	COALESCE(tipo, ''), COALESCE(tipo_persona, 'STANDARD'), id_rol, id_personal, id_estudiante,
	imagen, fl_ver_informacion_privada, fl_suspendido, id_empresa`

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	db db.DBTX
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(q db.DBTX) *PGRepository {
	return &PGRepository{db: q}
}

// FindByUsuarioOrEmail fetches a user by login name or email address.
func (r *PGRepository) FindByUsuarioOrEmail(ctx context.Context, login string) (*User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM usuario WHERE usuario = $1 OR email = $1`, login)
	return scanUser(row)
}

// FindByID fetches a user by primary key. The identity middleware calls this
// on every request so suspensions and role changes apply immediately.
func (r *PGRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM usuario WHERE id = $1`, id)
	return scanUser(row)
}

// ListPermisos returns the permission rows of a role for the /me payload.
func (r *PGRepository) ListPermisos(ctx context.Context, rolID int64) ([]Permiso, error) {
	rows, err := r.db.Query(ctx,
		`SELECT menu, can_view, can_new, can_edit, can_delete FROM permiso WHERE id_rol = $1 ORDER BY menu`, rolID)
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

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Usuario, &u.Email, &u.PasswordHash, &u.Nombre, &u.Apellido,
		&u.Tipo, &u.TipoPersona, &u.IDRol, &u.IDPersonal, &u.IDEstudiante,
		&u.Imagen, &u.FlVerInformacionPrivada, &u.FlSuspendido, &u.IDEmpresa)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

var _ Repository = (*PGRepository)(nil)
