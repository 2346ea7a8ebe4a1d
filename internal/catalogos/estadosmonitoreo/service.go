package estadosmonitoreo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coarapp/coar/internal/centinela"
	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/shared"
)

// Input carries the editable fields of an estado de monitoreo.
type Input struct {
	Nombre  string `json:"nombre" validate:"required,max=100"`
	Tipo    string `json:"tipo" validate:"required,oneof=INCIDENCIA DERIVACION"`
	ColorBg string `json:"color_bg" validate:"required,max=45"`
}

// Service implements estado de monitoreo use cases. Mutations and their audit
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

// Listar returns the estados of the empresa.
func (s *Service) Listar(ctx context.Context, empresaID int64) ([]EstadoMonitoreo, error) {
	return s.repo.List(ctx, s.pool, empresaID)
}

// Crear registers a new estado.
func (s *Service) Crear(ctx context.Context, in Input) (EstadoMonitoreo, error) {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return EstadoMonitoreo{}, errors.New("estadosmonitoreo: identidad no disponible")
	}

	estado := EstadoMonitoreo{
		Nombre:    in.Nombre,
		Tipo:      in.Tipo,
		ColorBg:   in.ColorBg,
		ColorText: TextColor(in.ColorBg),
		IDEmpresa: ident.EmpresaID,
	}
	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		created, err := s.repo.Create(ctx, tx, estado)
		if err != nil {
			return err
		}
		estado = created
		_, err = s.audit.Registrar(ctx, tx, centinela.AccionNuevo, estado.Nombre+", "+estado.Tipo, menuLabel, moduloLabel)
		return err
	})
	if err != nil {
		return EstadoMonitoreo{}, err
	}
	return estado, nil
}

// Actualizar rewrites an existing estado.
func (s *Service) Actualizar(ctx context.Context, id int64, in Input) (EstadoMonitoreo, error) {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return EstadoMonitoreo{}, errors.New("estadosmonitoreo: identidad no disponible")
	}

	estado, err := s.repo.Get(ctx, s.pool, id, ident.EmpresaID)
	if err != nil {
		return EstadoMonitoreo{}, err
	}
	estado.Nombre = in.Nombre
	estado.Tipo = in.Tipo
	estado.ColorBg = in.ColorBg
	estado.ColorText = TextColor(in.ColorBg)

	err = db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.repo.Update(ctx, tx, estado); err != nil {
			return err
		}
		_, err := s.audit.Registrar(ctx, tx, centinela.AccionEditar, estado.Nombre+", "+estado.Tipo, menuLabel, moduloLabel)
		return err
	})
	if err != nil {
		return EstadoMonitoreo{}, err
	}
	return estado, nil
}

// Eliminar removes an estado.
func (s *Service) Eliminar(ctx context.Context, id int64) error {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return errors.New("estadosmonitoreo: identidad no disponible")
	}

	estado, err := s.repo.Get(ctx, s.pool, id, ident.EmpresaID)
	if err != nil {
		return err
	}

	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.repo.Delete(ctx, tx, id, ident.EmpresaID); err != nil {
			return err
		}
		_, err := s.audit.Registrar(ctx, tx, centinela.AccionEliminar, estado.Nombre+", "+estado.Tipo, menuLabel, moduloLabel)
		return err
	})
}
