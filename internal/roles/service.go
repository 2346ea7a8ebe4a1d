package roles

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coarapp/coar/internal/centinela"
	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/shared"
)

// PermisoInput is one row of the SPA permission matrix.
type PermisoInput struct {
	Menu   string `json:"menu" validate:"required"`
	View   bool   `json:"view"`
	New    bool   `json:"new"`
	Edit   bool   `json:"edit"`
	Delete bool   `json:"delete"`
}

// Input carries the editable fields of a role plus its full grant set.
type Input struct {
	Nombre        string         `json:"nombre" validate:"required,max=200"`
	FlNoDashboard bool           `json:"fl_no_dashboard"`
	Permisos      []PermisoInput `json:"permisos" validate:"required,min=1,dive"`
}

func (in Input) permisos() []Permiso {
	permisos := make([]Permiso, 0, len(in.Permisos))
	for _, p := range in.Permisos {
		permisos = append(permisos, Permiso{
			Menu: p.Menu, View: p.View, New: p.New, Edit: p.Edit, Delete: p.Delete,
		})
	}
	return permisos
}

// Service implements role use cases. The grant set of a role is replaced by
// upserting the incoming rows and deleting the rest, all in the same
// transaction as the role mutation, so concurrent permission checks never see
// a half-written or empty set.
type Service struct {
	pool  *pgxpool.Pool
	repo  *Repository
	audit *centinela.Service
}

// NewService constructs a Service.
func NewService(pool *pgxpool.Pool, repo *Repository, audit *centinela.Service) *Service {
	return &Service{pool: pool, repo: repo, audit: audit}
}

// Listar returns the active roles of the empresa.
func (s *Service) Listar(ctx context.Context, empresaID int64) ([]Rol, error) {
	return s.repo.List(ctx, s.pool, empresaID)
}

// Obtener returns one role with its grant set.
func (s *Service) Obtener(ctx context.Context, id, empresaID int64) (RolConPermisos, error) {
	rol, err := s.repo.Get(ctx, s.pool, id, empresaID)
	if err != nil {
		return RolConPermisos{}, err
	}
	permisos, err := s.repo.ListPermisos(ctx, s.pool, rol.ID)
	if err != nil {
		return RolConPermisos{}, err
	}
	if permisos == nil {
		permisos = []Permiso{}
	}
	return RolConPermisos{Rol: rol, Permisos: permisos}, nil
}

// Crear registers a role with its grants.
func (s *Service) Crear(ctx context.Context, in Input) (RolConPermisos, error) {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return RolConPermisos{}, errors.New("roles: identidad no disponible")
	}

	result := RolConPermisos{
		Rol:      Rol{Nombre: in.Nombre, FlNoDashboard: in.FlNoDashboard, IDEmpresa: ident.EmpresaID},
		Permisos: in.permisos(),
	}
	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		rol, err := s.repo.Create(ctx, tx, result.Rol)
		if err != nil {
			return err
		}
		result.Rol = rol
		for _, p := range result.Permisos {
			if err := s.repo.UpsertPermiso(ctx, tx, rol.ID, p); err != nil {
				return err
			}
		}
		_, err = s.audit.Registrar(ctx, tx, centinela.AccionNuevo, rol.Nombre, menuLabel, moduloLabel)
		return err
	})
	if err != nil {
		return RolConPermisos{}, err
	}
	return result, nil
}

// Actualizar rewrites a role and replaces its grant set by diffing: incoming
// menus are upserted in place, missing ones deleted afterwards.
func (s *Service) Actualizar(ctx context.Context, id int64, in Input) (RolConPermisos, error) {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return RolConPermisos{}, errors.New("roles: identidad no disponible")
	}

	rol, err := s.repo.Get(ctx, s.pool, id, ident.EmpresaID)
	if err != nil {
		return RolConPermisos{}, err
	}
	rol.Nombre = in.Nombre
	rol.FlNoDashboard = in.FlNoDashboard

	result := RolConPermisos{Rol: rol, Permisos: in.permisos()}
	err = db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.repo.Update(ctx, tx, rol); err != nil {
			return err
		}

		keep := make([]string, 0, len(result.Permisos))
		for _, p := range result.Permisos {
			if err := s.repo.UpsertPermiso(ctx, tx, rol.ID, p); err != nil {
				return err
			}
			keep = append(keep, p.Menu)
		}
		if err := s.repo.DeletePermisosExcept(ctx, tx, rol.ID, keep); err != nil {
			return err
		}

		_, err := s.audit.Registrar(ctx, tx, centinela.AccionEditar, rol.Nombre, menuLabel, moduloLabel)
		return err
	})
	if err != nil {
		return RolConPermisos{}, err
	}
	return result, nil
}

// Eliminar marks a role inactive.
func (s *Service) Eliminar(ctx context.Context, id int64) error {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return errors.New("roles: identidad no disponible")
	}

	rol, err := s.repo.Get(ctx, s.pool, id, ident.EmpresaID)
	if err != nil {
		return err
	}

	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.repo.SoftDelete(ctx, tx, id, ident.EmpresaID); err != nil {
			return err
		}
		_, err := s.audit.Registrar(ctx, tx, centinela.AccionEliminar, rol.Nombre, menuLabel, moduloLabel)
		return err
	})
}
