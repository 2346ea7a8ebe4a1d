package lugares

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coarapp/coar/internal/centinela"
	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/shared"
)

// Input carries the editable fields of a lugar.
type Input struct {
	Nombre     string  `json:"nombre" validate:"required,max=100"`
	Referencia *string `json:"referencia" validate:"omitempty,max=255"`
}

// Service implements lugar use cases. Mutations and their audit rows share
// one transaction.
type Service struct {
	pool  *pgxpool.Pool
	repo  *Repository
	audit *centinela.Service
}

// NewService constructs a Service.
func NewService(pool *pgxpool.Pool, repo *Repository, audit *centinela.Service) *Service {
	return &Service{pool: pool, repo: repo, audit: audit}
}

// Listar returns the active lugares of the empresa.
func (s *Service) Listar(ctx context.Context, empresaID int64) ([]Lugar, error) {
	return s.repo.List(ctx, s.pool, empresaID)
}

// Crear registers a new lugar.
func (s *Service) Crear(ctx context.Context, in Input) (Lugar, error) {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return Lugar{}, errors.New("lugares: identidad no disponible")
	}

	lugar := Lugar{
		Nombre:     in.Nombre,
		Referencia: in.Referencia,
		IDUsuario:  &ident.UserID,
		IDEmpresa:  ident.EmpresaID,
	}
	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		created, err := s.repo.Create(ctx, tx, lugar)
		if err != nil {
			return err
		}
		lugar = created
		_, err = s.audit.Registrar(ctx, tx, centinela.AccionNuevo, lugar.Nombre, menuLabel, moduloLabel)
		return err
	})
	if err != nil {
		return Lugar{}, err
	}
	return lugar, nil
}

// Actualizar rewrites an existing lugar.
func (s *Service) Actualizar(ctx context.Context, id int64, in Input) (Lugar, error) {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return Lugar{}, errors.New("lugares: identidad no disponible")
	}

	lugar, err := s.repo.Get(ctx, s.pool, id, ident.EmpresaID)
	if err != nil {
		return Lugar{}, err
	}
	lugar.Nombre = in.Nombre
	lugar.Referencia = in.Referencia

	err = db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.repo.Update(ctx, tx, lugar); err != nil {
			return err
		}
		_, err := s.audit.Registrar(ctx, tx, centinela.AccionEditar, lugar.Nombre, menuLabel, moduloLabel)
		return err
	})
	if err != nil {
		return Lugar{}, err
	}
	return lugar, nil
}

// Eliminar marks a lugar inactive.
func (s *Service) Eliminar(ctx context.Context, id int64) error {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return errors.New("lugares: identidad no disponible")
	}

	lugar, err := s.repo.Get(ctx, s.pool, id, ident.EmpresaID)
	if err != nil {
		return err
	}

	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.repo.SoftDelete(ctx, tx, id, ident.EmpresaID); err != nil {
			return err
		}
		_, err := s.audit.Registrar(ctx, tx, centinela.AccionEliminar, lugar.Nombre, menuLabel, moduloLabel)
		return err
	})
}
