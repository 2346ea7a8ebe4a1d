package personal

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/platform/httpx"
)

// Repository provides PostgreSQL backed persistence for staff.
type Repository struct{}

// NewRepository constructs a repository.
func NewRepository() *Repository {
	return &Repository{}
}

const listQuery = `
SELECT p.id, p.id_tipo_personal, p.id_tipo_documento, p.numero_documento,
       p.nombre, p.apellido, p.tipo_contratacion, p.direccion, p.ubigeo,
       p.comentario, p.id_proveedor, p.imagen, p.firma, p.estado,
       COALESCE(tp.nombre, ''),
       COALESCE(sd.nombre, ''),
       COALESCE(pr.razon_social, ''),
       COALESCE(su.distrito || ' - ' || su.provincia || ' - ' || su.departamento, '')
FROM personal p
LEFT JOIN tipo_personal tp ON tp.id = p.id_tipo_personal
LEFT JOIN static_documento sd ON sd.id = p.id_tipo_documento
LEFT JOIN proveedor pr ON pr.id = p.id_proveedor
LEFT JOIN static_ubigeo su ON su.id = p.ubigeo`

func scanPersonal(row pgx.Row, empresaID int64) (Personal, error) {
	var p Personal
	err := row.Scan(
		&p.ID, &p.IDTipoPersonal, &p.IDTipoDocumento, &p.NumeroDocumento,
		&p.Nombre, &p.Apellido, &p.TipoContratacion, &p.Direccion, &p.Ubigeo,
		&p.Comentario, &p.IDProveedor, &p.Imagen, &p.Firma, &p.Estado,
		&p.NombreTipoPersonal, &p.NombreDocumento, &p.Proveedor, &p.UbigeoText,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Personal{}, httpx.ErrNotFound
		}
		return Personal{}, err
	}
	p.IDEmpresa = empresaID
	return p, nil
}

// List returns the staff of one empresa, newest first.
func (Repository) List(ctx context.Context, q db.DBTX, empresaID int64) ([]Personal, error) {
	rows, err := q.Query(ctx, listQuery+` WHERE p.id_empresa = $1 ORDER BY p.id DESC`, empresaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var personal []Personal
	for rows.Next() {
		p, err := scanPersonal(rows, empresaID)
		if err != nil {
			return nil, err
		}
		personal = append(personal, p)
	}
	return personal, rows.Err()
}

// Get fetches one staff member of the empresa.
func (Repository) Get(ctx context.Context, q db.DBTX, id, empresaID int64) (Personal, error) {
	row := q.QueryRow(ctx, listQuery+` WHERE p.id = $1 AND p.id_empresa = $2`, id, empresaID)
	return scanPersonal(row, empresaID)
}

// Create inserts a new active staff member and returns its id.
func (Repository) Create(ctx context.Context, q db.DBTX, p Personal) (int64, error) {
	var id int64
	err := q.QueryRow(ctx,
		`INSERT INTO personal
		   (id_tipo_personal, id_tipo_documento, numero_documento, nombre, apellido,
		    tipo_contratacion, direccion, ubigeo, comentario, id_proveedor,
		    imagen, firma, estado, id_empresa)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 1, $13)
		 RETURNING id`,
		p.IDTipoPersonal, p.IDTipoDocumento, p.NumeroDocumento, p.Nombre, p.Apellido,
		p.TipoContratacion, p.Direccion, p.Ubigeo, p.Comentario, p.IDProveedor,
		p.Imagen, p.Firma, p.IDEmpresa).
		Scan(&id)
	return id, err
}

// Update rewrites the editable fields of one staff member.
func (Repository) Update(ctx context.Context, q db.DBTX, p Personal) error {
	tag, err := q.Exec(ctx,
		`UPDATE personal
		 SET id_tipo_personal = $1, id_tipo_documento = $2, numero_documento = $3,
		     nombre = $4, apellido = $5, tipo_contratacion = $6, direccion = $7,
		     ubigeo = $8, comentario = $9, id_proveedor = $10, imagen = $11, firma = $12
		 WHERE id = $13 AND id_empresa = $14`,
		p.IDTipoPersonal, p.IDTipoDocumento, p.NumeroDocumento,
		p.Nombre, p.Apellido, p.TipoContratacion, p.Direccion,
		p.Ubigeo, p.Comentario, p.IDProveedor, p.Imagen, p.Firma,
		p.ID, p.IDEmpresa)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// SoftDelete marks the staff member inactive.
func (Repository) SoftDelete(ctx context.Context, q db.DBTX, id, empresaID int64) error {
	tag, err := q.Exec(ctx,
		`UPDATE personal SET estado = 0 WHERE id = $1 AND id_empresa = $2`, id, empresaID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
