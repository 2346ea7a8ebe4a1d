package areas

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coarapp/coar/internal/centinela"
	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/shared"
)

// Input carries the editable fields of an area.
type Input struct {
	Nombre      string  `json:"nombre" validate:"required,max=100"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=255"`
	IDEncargado *int64  `json:"id_encargado"`
}

// Service implements area use cases. Mutations and their audit rows share one
// transaction.
type Service struct {
	pool  *pgxpool.Pool
	repo  *Repository
	audit *centinela.Service
}

// NewService constructs a Service.
func NewService(pool *pgxpool.Pool, repo *Repository, audit *centinela.Service) *Service {
	return &Service{pool: pool, repo: repo, audit: audit}
}

// Listar returns the active areas of the empresa.
func (s *Service) Listar(ctx context.Context, empresaID int64) ([]Area, error) {
	return s.repo.List(ctx, s.pool, empresaID)
}

// Crear registers a new area.
func (s *Service) Crear(ctx context.Context, in Input) (Area, error) {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return Area{}, errors.New("areas: identidad no disponible")
	}

	area := Area{
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		IDEncargado: in.IDEncargado,
		IDUsuario:   &ident.UserID,
		IDEmpresa:   ident.EmpresaID,
	}
	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		created, err := s.repo.Create(ctx, tx, area)
		if err != nil {
			return err
		}
		area = created
		_, err = s.audit.Registrar(ctx, tx, centinela.AccionNuevo, area.Nombre, menuLabel, moduloLabel)
		return err
	})
	if err != nil {
		return Area{}, err
	}
	return area, nil
}

// Actualizar rewrites an existing area.
func (s *Service) Actualizar(ctx context.Context, id int64, in Input) (Area, error) {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return Area{}, errors.New("areas: identidad no disponible")
	}

	area, err := s.repo.Get(ctx, s.pool, id, ident.EmpresaID)
	if err != nil {
		return Area{}, err
	}
	area.Nombre = in.Nombre
	area.Descripcion = in.Descripcion
	area.IDEncargado = in.IDEncargado

	err = db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.repo.Update(ctx, tx, area); err != nil {
			return err
		}
		_, err := s.audit.Registrar(ctx, tx, centinela.AccionEditar, area.Nombre, menuLabel, moduloLabel)
		return err
	})
	if err != nil {
		return Area{}, err
	}
	return area, nil
}

// Eliminar marks an area inactive.
func (s *Service) Eliminar(ctx context.Context, id int64) error {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return errors.New("areas: identidad no disponible")
	}

	area, err := s.repo.Get(ctx, s.pool, id, ident.EmpresaID)
	if err != nil {
		return err
	}

	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.repo.SoftDelete(ctx, tx, id, ident.EmpresaID); err != nil {
			return err
		}
		_, err := s.audit.Registrar(ctx, tx, centinela.AccionEliminar, area.Nombre, menuLabel, moduloLabel)
		return err
	})
}
