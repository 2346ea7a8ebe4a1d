package usuarios

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/platform/httpx"
)

// Repository provides PostgreSQL backed persistence for accounts.
type Repository struct{}

// NewRepository constructs a repository.
func NewRepository() *Repository {
	return &Repository{}
}

const listQuery = `
SELECT u.id,
       COALESCE(u.nombre, ''), COALESCE(u.apellido, ''),
       u.usuario, u.email, COALESCE(u.tipo_persona, 'STANDARD'),
       u.id_rol, COALESCE(r.nombre, 'SUPER ADMINISTRADOR'),
       u.id_personal, COALESCE(p.nombre || ' ' || p.apellido, ''),
       u.id_estudiante, COALESCE(e.nombres || ' ' || e.apellidos, ''),
       u.imagen, u.fl_ver_informacion_privada, u.fl_suspendido
FROM usuario u
LEFT JOIN rol r ON r.id = u.id_rol
LEFT JOIN personal p ON p.id = u.id_personal
LEFT JOIN estudiante e ON e.id = u.id_estudiante`

func scanUsuario(row pgx.Row, empresaID int64) (Usuario, error) {
	var u Usuario
	err := row.Scan(
		&u.ID, &u.Nombre, &u.Apellido, &u.Usuario, &u.Email, &u.TipoPersona,
		&u.IDRol, &u.Rol, &u.IDPersonal, &u.PersonalNombre,
		&u.IDEstudiante, &u.EstudianteNombre,
		&u.Imagen, &u.FlVerInformacionPrivada, &u.FlSuspendido,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Usuario{}, httpx.ErrNotFound
		}
		return Usuario{}, err
	}
	u.IDEmpresa = empresaID
	return u, nil
}

// List returns the accounts of one empresa, newest first.
func (Repository) List(ctx context.Context, q db.DBTX, empresaID int64) ([]Usuario, error) {
	rows, err := q.Query(ctx, listQuery+` WHERE u.id_empresa = $1 ORDER BY u.id DESC`, empresaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usuarios []Usuario
	for rows.Next() {
		u, err := scanUsuario(rows, empresaID)
		if err != nil {
			return nil, err
		}
		usuarios = append(usuarios, u)
	}
	return usuarios, rows.Err()
}

// Get fetches one account of the empresa.
func (Repository) Get(ctx context.Context, q db.DBTX, id, empresaID int64) (Usuario, error) {
	row := q.QueryRow(ctx, listQuery+` WHERE u.id = $1 AND u.id_empresa = $2`, id, empresaID)
	return scanUsuario(row, empresaID)
}

// Insert stores a new account and returns its id.
func (Repository) Insert(ctx context.Context, q db.DBTX, u Usuario, passwordHash string) (int64, error) {
	var id int64
	err := q.QueryRow(ctx,
		`INSERT INTO usuario
		   (usuario, email, password, nombre, apellido, tipo_persona,
		    id_personal, id_estudiante, id_rol, imagen,
		    fl_ver_informacion_privada, fl_suspendido, id_empresa)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, false, $12)
		 RETURNING id`,
		u.Usuario, u.Email, passwordHash, u.Nombre, u.Apellido, u.TipoPersona,
		u.IDPersonal, u.IDEstudiante, u.IDRol, u.Imagen,
		u.FlVerInformacionPrivada, u.IDEmpresa).
		Scan(&id)
	return id, err
}

// Update rewrites the editable fields of one account.
func (Repository) Update(ctx context.Context, q db.DBTX, u Usuario) error {
	tag, err := q.Exec(ctx,
		`UPDATE usuario
		 SET usuario = $1, email = $2, nombre = $3, apellido = $4, tipo_persona = $5,
		     id_personal = $6, id_estudiante = $7, id_rol = $8, imagen = $9,
		     fl_ver_informacion_privada = $10
		 WHERE id = $11 AND id_empresa = $12`,
		u.Usuario, u.Email, u.Nombre, u.Apellido, u.TipoPersona,
		u.IDPersonal, u.IDEstudiante, u.IDRol, u.Imagen,
		u.FlVerInformacionPrivada, u.ID, u.IDEmpresa)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// Delete removes the account for good. Accounts are the one entity the
// original system hard deletes.
func (Repository) Delete(ctx context.Context, q db.DBTX, id, empresaID int64) error {
	tag, err := q.Exec(ctx,
		`DELETE FROM usuario WHERE id = $1 AND id_empresa = $2`, id, empresaID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// UpdatePassword stores a new password hash.
func (Repository) UpdatePassword(ctx context.Context, q db.DBTX, id, empresaID int64, hash string) error {
	tag, err := q.Exec(ctx,
		`UPDATE usuario SET password = $1 WHERE id = $2 AND id_empresa = $3`, hash, id, empresaID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// SetSuspendido toggles the suspension flag.
func (Repository) SetSuspendido(ctx context.Context, q db.DBTX, id, empresaID int64, suspendido bool) error {
	tag, err := q.Exec(ctx,
		`UPDATE usuario SET fl_suspendido = $1 WHERE id = $2 AND id_empresa = $3`, suspendido, id, empresaID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// PersonalNombre resolves the name pair of a staff record.
func (Repository) PersonalNombre(ctx context.Context, q db.DBTX, id, empresaID int64) (nombre, apellido string, err error) {
	err = q.QueryRow(ctx,
		`SELECT nombre, apellido FROM personal WHERE id = $1 AND id_empresa = $2`, id, empresaID).
		Scan(&nombre, &apellido)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", httpx.ErrNotFound
	}
	return nombre, apellido, err
}

// EstudianteNombre resolves the name pair of a student record.
func (Repository) EstudianteNombre(ctx context.Context, q db.DBTX, id, empresaID int64) (nombres, apellidos string, err error) {
	err = q.QueryRow(ctx,
		`SELECT nombres, apellidos FROM estudiante WHERE id = $1 AND id_empresa = $2`, id, empresaID).
		Scan(&nombres, &apellidos)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", httpx.ErrNotFound
	}
	return nombres, apellidos, err
}
