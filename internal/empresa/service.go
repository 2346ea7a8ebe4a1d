package empresa

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coarapp/coar/internal/centinela"
	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/shared"
)

// Input carries the editable fields of the company profile.
type Input struct {
	NumeroDocumento string  `json:"numero_documento" validate:"required,max=20"`
	RazonSocial     string  `json:"razon_social" validate:"required,max=200"`
	NombreComercial string  `json:"nombre_comercial" validate:"required,max=200"`
	Direccion       string  `json:"direccion" validate:"required,max=200"`
	Telefono        string  `json:"telefono" validate:"required,max=20"`
	Email           string  `json:"email" validate:"required,email,max=100"`
	Logo            *string `json:"logo"`
	LogoFactura     *string `json:"logo_factura"`
}

// Service implements company profile use cases. Each request can only reach
// its own empresa; there is no cross-tenant listing.
type Service struct {
	pool  *pgxpool.Pool
	repo  *Repository
	audit *centinela.Service
}

// NewService constructs a Service.
func NewService(pool *pgxpool.Pool, repo *Repository, audit *centinela.Service) *Service {
	return &Service{pool: pool, repo: repo, audit: audit}
}

// Obtener returns the current tenant's profile.
func (s *Service) Obtener(ctx context.Context) (Empresa, error) {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return Empresa{}, errors.New("empresa: identidad no disponible")
	}
	return s.repo.Get(ctx, s.pool, ident.EmpresaID)
}

// Actualizar rewrites the current tenant's profile. Absent logo fields keep
// the stored filenames.
func (s *Service) Actualizar(ctx context.Context, in Input) (Empresa, error) {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return Empresa{}, errors.New("empresa: identidad no disponible")
	}

	empresa, err := s.repo.Get(ctx, s.pool, ident.EmpresaID)
	if err != nil {
		return Empresa{}, err
	}
	empresa.NumeroDocumento = in.NumeroDocumento
	empresa.RazonSocial = in.RazonSocial
	empresa.NombreComercial = in.NombreComercial
	empresa.Direccion = in.Direccion
	empresa.Telefono = in.Telefono
	empresa.Email = in.Email
	if in.Logo != nil {
		empresa.Logo = in.Logo
	}
	if in.LogoFactura != nil {
		empresa.LogoFactura = in.LogoFactura
	}

	err = db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.repo.Update(ctx, tx, empresa); err != nil {
			return err
		}
		_, err := s.audit.Registrar(ctx, tx, centinela.AccionEditar, empresa.NombreComercial, menuLabel, moduloLabel)
		return err
	})
	if err != nil {
		return Empresa{}, err
	}
	return empresa, nil
}
