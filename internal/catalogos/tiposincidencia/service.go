package tiposincidencia

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coarapp/coar/internal/centinela"
	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/shared"
)

// Input carries the editable fields of a tipo de incidencia.
type Input struct {
	Nombre              string `json:"nombre" validate:"required,max=50"`
	NivelIncidencia     string `json:"nivel_incidencia" validate:"required,oneof=NEGATIVO POSITIVA NEUTRA"`
	NivelSeveridad      string `json:"nivel_severidad" validate:"required,oneof=BAJA MEDIA ALTA"`
	DerivacionInmediata string `json:"derivacion_inmediata" validate:"required,oneof=SI NO"`
}

// Service implements tipo de incidencia use cases. Mutations and their audit
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
func (s *Service) Listar(ctx context.Context, empresaID int64) ([]TipoIncidencia, error) {
	return s.repo.List(ctx, s.pool, empresaID)
}

// Crear registers a new tipo.
func (s *Service) Crear(ctx context.Context, in Input) (TipoIncidencia, error) {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return TipoIncidencia{}, errors.New("tiposincidencia: identidad no disponible")
	}

	tipo := TipoIncidencia{
		Nombre:              in.Nombre,
		NivelIncidencia:     in.NivelIncidencia,
		NivelSeveridad:      in.NivelSeveridad,
		DerivacionInmediata: in.DerivacionInmediata,
		IDUsuario:           &ident.UserID,
		IDEmpresa:           ident.EmpresaID,
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
		return TipoIncidencia{}, err
	}
	return tipo, nil
}

// Actualizar rewrites an existing tipo.
func (s *Service) Actualizar(ctx context.Context, id int64, in Input) (TipoIncidencia, error) {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return TipoIncidencia{}, errors.New("tiposincidencia: identidad no disponible")
	}

	tipo, err := s.repo.Get(ctx, s.pool, id, ident.EmpresaID)
	if err != nil {
		return TipoIncidencia{}, err
	}
	tipo.Nombre = in.Nombre
	tipo.NivelIncidencia = in.NivelIncidencia
	tipo.NivelSeveridad = in.NivelSeveridad
	tipo.DerivacionInmediata = in.DerivacionInmediata

	err = db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.repo.Update(ctx, tx, tipo); err != nil {
			return err
		}
		_, err := s.audit.Registrar(ctx, tx, centinela.AccionEditar, tipo.Nombre, menuLabel, moduloLabel)
		return err
	})
	if err != nil {
		return TipoIncidencia{}, err
	}
	return tipo, nil
}

// Eliminar marks a tipo inactive.
func (s *Service) Eliminar(ctx context.Context, id int64) error {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return errors.New("tiposincidencia: identidad no disponible")
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
