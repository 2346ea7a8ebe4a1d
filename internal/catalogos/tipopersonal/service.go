package tipopersonal

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coarapp/coar/internal/centinela"
	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/shared"
)

// Input carries the editable fields of a tipo de personal.
type Input struct {
	Nombre      string  `json:"nombre" validate:"required,max=255"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=555"`
}

// Service implements tipo de personal use cases. Mutations and their audit
// rows share one transaction.
type Service struct {
	pool  *pgxpool.Pool
	repo  *Repository
	audit *centinela.Service
}

// NewService constructs a Service.
func NewService(pool *pgxpool.Pool, repo *Repository, audit *centinela.Service) *Service {
	return &Service{pool: pool, repo: repo, audit: audit}
}

// Listar returns the active tipos of the empresa.
func (s *Service) Listar(ctx context.Context, empresaID int64) ([]TipoPersonal, error) {
	return s.repo.List(ctx, s.pool, empresaID)
}

// Crear registers a new tipo.
func (s *Service) Crear(ctx context.Context, in Input) (TipoPersonal, error) {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return TipoPersonal{}, errors.New("tipopersonal: identidad no disponible")
	}

	tipo := TipoPersonal{
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		IDUsuario:   &ident.UserID,
		IDEmpresa:   ident.EmpresaID,
	}
	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		created, err := s.repo.Create(ctx, tx, tipo)
		if err != nil {
			return err
		}
		tipo = created
		_, err = s.audit.Registrar(ctx, tx, centinela.AccionNuevo, tipo.Nombre, menuLabel, moduloLabel)
		return err
	})
	if err != nil {
		return TipoPersonal{}, err
	}
	return tipo, nil
}

// Actualizar rewrites an existing tipo.
func (s *Service) Actualizar(ctx context.Context, id int64, in Input) (TipoPersonal, error) {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return TipoPersonal{}, errors.New("tipopersonal: identidad no disponible")
	}

	tipo, err := s.repo.Get(ctx, s.pool, id, ident.EmpresaID)
	if err != nil {
		return TipoPersonal{}, err
	}
	tipo.Nombre = in.Nombre
	tipo.Descripcion = in.Descripcion

	err = db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.repo.Update(ctx, tx, tipo); err != nil {
			return err
		}
		_, err := s.audit.Registrar(ctx, tx, centinela.AccionEditar, tipo.Nombre, menuLabel, moduloLabel)
		return err
	})
	if err != nil {
		return TipoPersonal{}, err
	}
	return tipo, nil
}

// Eliminar marks a tipo inactive.
func (s *Service) Eliminar(ctx context.Context, id int64) error {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return errors.New("tipopersonal: identidad no disponible")
	}

	tipo, err := s.repo.Get(ctx, s.pool, id, ident.EmpresaID)
	if err != nil {
		return err
	}

	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.repo.SoftDelete(ctx, tx, id, ident.EmpresaID); err != nil {
			return err
		}
		_, err := s.audit.Registrar(ctx, tx, centinela.AccionEliminar, tipo.Nombre, menuLabel, moduloLabel)
		return err
	})
}
