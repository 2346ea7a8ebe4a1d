package empresa

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/platform/httpx"
)

// Repository provides PostgreSQL backed persistence for the empresa profile.
type Repository struct{}

// NewRepository constructs a repository.
func NewRepository() *Repository {
	return &Repository{}
}

// Get fetches the profile of one empresa.
func (Repository) Get(ctx context.Context, q db.DBTX, id int64) (Empresa, error) {
	var e Empresa
	err := q.QueryRow(ctx,
		`SELECT id, numero_documento, razon_social, nombre_comercial, direccion, telefono, email, logo, logo_factura
		 FROM empresa WHERE id = $1`, id).
		Scan(&e.ID, &e.NumeroDocumento, &e.RazonSocial, &e.NombreComercial,
			&e.Direccion, &e.Telefono, &e.Email, &e.Logo, &e.LogoFactura)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Empresa{}, httpx.ErrNotFound
		}
		return Empresa{}, err
	}
	return e, nil
}

// Update rewrites the profile fields.
func (Repository) Update(ctx context.Context, q db.DBTX, e Empresa) error {
	tag, err := q.Exec(ctx,
		`UPDATE empresa
		 SET numero_documento = $1, razon_social = $2, nombre_comercial = $3,
		     direccion = $4, telefono = $5, email = $6, logo = $7, logo_factura = $8
		 WHERE id = $9`,
		e.NumeroDocumento, e.RazonSocial, e.NombreComercial,
		e.Direccion, e.Telefono, e.Email, e.Logo, e.LogoFactura, e.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
