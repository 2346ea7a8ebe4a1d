package usuarios

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/coarapp/coar/internal/centinela"
	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/shared"
)

// Input carries the editable fields of an account. Nombre and apellido are
// required for STANDARD accounts; linked accounts take them from the
// personal or estudiante record instead.
type Input struct {
	Usuario                 string  `json:"usuario" validate:"required,max=50"`
	Email                   string  `json:"email" validate:"required,email,max=100"`
	Nombre                  string  `json:"nombre" validate:"required_if=TipoPersona STANDARD,omitempty,max=200"`
	Apellido                string  `json:"apellido" validate:"required_if=TipoPersona STANDARD,omitempty,max=200"`
	TipoPersona             string  `json:"tipo_persona" validate:"omitempty,oneof=STANDARD DOCENTE ESTUDIANTE"`
	IDRol                   *int64  `json:"id_rol"`
	IDPersonal              *int64  `json:"id_personal" validate:"required_if=TipoPersona DOCENTE"`
	IDEstudiante            *int64  `json:"id_estudiante" validate:"required_if=TipoPersona ESTUDIANTE"`
	Imagen                  *string `json:"imagen"`
	FlVerInformacionPrivada bool    `json:"fl_ver_informacion_privada"`
}

// StoreInput adds the initial password on creation.
type StoreInput struct {
	Input
	Password string `json:"password" validate:"required,min=6,max=255"`
}

// PasswordInput carries a password replacement.
type PasswordInput struct {
	Password string `json:"password" validate:"required,min=6,max=255"`
}

// Service implements account management. Mutations and their audit rows share
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

// Listar returns the accounts of the empresa.
func (s *Service) Listar(ctx context.Context, empresaID int64) ([]Usuario, error) {
	return s.repo.List(ctx, s.pool, empresaID)
}

// resolve fills the name pair and clears the link that does not apply to the
// tipo de persona.
func (s *Service) resolve(ctx context.Context, q db.DBTX, u *Usuario) error {
	switch u.TipoPersona {
	case TipoPersonaDocente:
		if u.IDPersonal == nil {
			return errors.New("usuarios: id_personal requerido para DOCENTE")
		}
		u.IDEstudiante = nil
		nombre, apellido, err := s.repo.PersonalNombre(ctx, q, *u.IDPersonal, u.IDEmpresa)
		if err != nil {
			return err
		}
		u.Nombre, u.Apellido = nombre, apellido
	case TipoPersonaEstudiante:
		if u.IDEstudiante == nil {
			return errors.New("usuarios: id_estudiante requerido para ESTUDIANTE")
		}
		u.IDPersonal = nil
		nombres, apellidos, err := s.repo.EstudianteNombre(ctx, q, *u.IDEstudiante, u.IDEmpresa)
		if err != nil {
			return err
		}
		u.Nombre, u.Apellido = nombres, apellidos
	default:
		u.TipoPersona = TipoPersonaStandard
		u.IDPersonal = nil
		u.IDEstudiante = nil
	}
	return nil
}

// Crear registers an account with a bcrypt password hash.
func (s *Service) Crear(ctx context.Context, in StoreInput) (Usuario, error) {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return Usuario{}, errors.New("usuarios: identidad no disponible")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Usuario{}, err
	}

	usuario := Usuario{
		Usuario:                 in.Usuario,
		Email:                   in.Email,
		Nombre:                  in.Nombre,
		Apellido:                in.Apellido,
		TipoPersona:             in.TipoPersona,
		IDRol:                   in.IDRol,
		IDPersonal:              in.IDPersonal,
		IDEstudiante:            in.IDEstudiante,
		Imagen:                  in.Imagen,
		FlVerInformacionPrivada: in.FlVerInformacionPrivada,
		IDEmpresa:               ident.EmpresaID,
	}
	err = db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.resolve(ctx, tx, &usuario); err != nil {
			return err
		}
		id, err := s.repo.Insert(ctx, tx, usuario, string(hash))
		if err != nil {
			return err
		}
		usuario, err = s.repo.Get(ctx, tx, id, ident.EmpresaID)
		if err != nil {
			return err
		}
		_, err = s.audit.Registrar(ctx, tx, centinela.AccionNuevo, usuario.Usuario, menuLabel, moduloLabel)
		return err
	})
	if err != nil {
		return Usuario{}, err
	}
	return usuario, nil
}

// Actualizar rewrites an existing account.
func (s *Service) Actualizar(ctx context.Context, id int64, in Input) (Usuario, error) {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return Usuario{}, errors.New("usuarios: identidad no disponible")
	}

	usuario, err := s.repo.Get(ctx, s.pool, id, ident.EmpresaID)
	if err != nil {
		return Usuario{}, err
	}
	usuario.Usuario = in.Usuario
	usuario.Email = in.Email
	usuario.Nombre = in.Nombre
	usuario.Apellido = in.Apellido
	usuario.TipoPersona = in.TipoPersona
	usuario.IDRol = in.IDRol
	usuario.IDPersonal = in.IDPersonal
	usuario.IDEstudiante = in.IDEstudiante
	if in.Imagen != nil {
		usuario.Imagen = in.Imagen
	}
	usuario.FlVerInformacionPrivada = in.FlVerInformacionPrivada

	err = db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.resolve(ctx, tx, &usuario); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, tx, usuario); err != nil {
			return err
		}
		usuario, err = s.repo.Get(ctx, tx, id, ident.EmpresaID)
		if err != nil {
			return err
		}
		_, err = s.audit.Registrar(ctx, tx, centinela.AccionEditar, usuario.Usuario, menuLabel, moduloLabel)
		return err
	})
	if err != nil {
		return Usuario{}, err
	}
	return usuario, nil
}

// Eliminar removes an account for good.
func (s *Service) Eliminar(ctx context.Context, id int64) error {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return errors.New("usuarios: identidad no disponible")
	}

	usuario, err := s.repo.Get(ctx, s.pool, id, ident.EmpresaID)
	if err != nil {
		return err
	}

	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.repo.Delete(ctx, tx, id, ident.EmpresaID); err != nil {
			return err
		}
		_, err := s.audit.Registrar(ctx, tx, centinela.AccionEliminar, usuario.Usuario, menuLabel, moduloLabel)
		return err
	})
}

// CambiarPassword replaces the password of an account.
func (s *Service) CambiarPassword(ctx context.Context, id int64, in PasswordInput) error {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return errors.New("usuarios: identidad no disponible")
	}

	usuario, err := s.repo.Get(ctx, s.pool, id, ident.EmpresaID)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.repo.UpdatePassword(ctx, tx, id, ident.EmpresaID, string(hash)); err != nil {
			return err
		}
		_, err := s.audit.Registrar(ctx, tx, "CAMBIAR CONTRASEÑA", usuario.Usuario, menuLabel, moduloLabel)
		return err
	})
}

// Suspender blocks an account from logging in.
func (s *Service) Suspender(ctx context.Context, id int64) error {
	return s.setSuspendido(ctx, id, true, "SUSPENDER")
}

// Activar lifts a suspension.
func (s *Service) Activar(ctx context.Context, id int64) error {
	return s.setSuspendido(ctx, id, false, "ACTIVAR")
}

func (s *Service) setSuspendido(ctx context.Context, id int64, suspendido bool, accion string) error {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return errors.New("usuarios: identidad no disponible")
	}

	usuario, err := s.repo.Get(ctx, s.pool, id, ident.EmpresaID)
	if err != nil {
		return err
	}

	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.repo.SetSuspendido(ctx, tx, id, ident.EmpresaID, suspendido); err != nil {
			return err
		}
		_, err := s.audit.Registrar(ctx, tx, accion, usuario.Usuario, menuLabel, moduloLabel)
		return err
	})
}
