package personal

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coarapp/coar/internal/centinela"
	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/shared"
)

// Input carries the editable fields of a staff member. A TERCERO contract
// must name its provider; the provider is dropped otherwise.
type Input struct {
	IDTipoPersonal   int64   `json:"id_tipo_personal" validate:"required"`
	IDTipoDocumento  int64   `json:"id_tipo_documento" validate:"required"`
	NumeroDocumento  string  `json:"numero_documento" validate:"required,max=20"`
	Nombre           string  `json:"nombre" validate:"required,max=200"`
	Apellido         string  `json:"apellido" validate:"required,max=200"`
	TipoContratacion string  `json:"tipo_contratacion" validate:"required,oneof=DIRECTA TERCERO"`
	Direccion        *string `json:"direccion" validate:"omitempty,max=100"`
	Ubigeo           *string `json:"ubigeo" validate:"omitempty,max=6"`
	Comentario       *string `json:"comentario" validate:"omitempty,max=100"`
	IDProveedor      *int64  `json:"id_proveedor" validate:"required_if=TipoContratacion TERCERO"`
	Imagen           *string `json:"imagen"`
	Firma            *string `json:"firma"`
}

func (in Input) apply(p *Personal) {
	p.IDTipoPersonal = in.IDTipoPersonal
	p.IDTipoDocumento = in.IDTipoDocumento
	p.NumeroDocumento = in.NumeroDocumento
	p.Nombre = in.Nombre
	p.Apellido = in.Apellido
	p.TipoContratacion = in.TipoContratacion
	p.Direccion = in.Direccion
	p.Ubigeo = in.Ubigeo
	p.Comentario = in.Comentario
	if in.TipoContratacion == ContratacionTercero {
		p.IDProveedor = in.IDProveedor
	} else {
		p.IDProveedor = nil
	}
	if in.Imagen != nil {
		p.Imagen = in.Imagen
	}
	if in.Firma != nil {
		p.Firma = in.Firma
	}
}

// Service implements staff use cases. Mutations and their audit rows share
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

// Listar returns the staff of the empresa. A non empty buscar term filters by
// name or document number ignoring case and accents.
func (s *Service) Listar(ctx context.Context, empresaID int64, buscar string) ([]Personal, error) {
	personal, err := s.repo.List(ctx, s.pool, empresaID)
	if err != nil || buscar == "" {
		return personal, err
	}

	term := shared.FoldSearch(buscar)
	filtered := personal[:0]
	for _, p := range personal {
		if strings.Contains(shared.FoldSearch(p.Nombre+" "+p.Apellido), term) ||
			strings.Contains(shared.FoldSearch(p.NumeroDocumento), term) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// Crear registers a staff member.
func (s *Service) Crear(ctx context.Context, in Input) (Personal, error) {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return Personal{}, errors.New("personal: identidad no disponible")
	}

	var persona Personal
	persona.IDEmpresa = ident.EmpresaID
	in.apply(&persona)

	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		id, err := s.repo.Create(ctx, tx, persona)
		if err != nil {
			return err
		}
		persona, err = s.repo.Get(ctx, tx, id, ident.EmpresaID)
		if err != nil {
			return err
		}
		_, err = s.audit.Registrar(ctx, tx, centinela.AccionNuevo,
			persona.Nombre+" "+persona.Apellido, menuLabel, moduloLabel)
		return err
	})
	if err != nil {
		return Personal{}, err
	}
	return persona, nil
}

// Actualizar rewrites an existing staff member.
func (s *Service) Actualizar(ctx context.Context, id int64, in Input) (Personal, error) {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return Personal{}, errors.New("personal: identidad no disponible")
	}

	persona, err := s.repo.Get(ctx, s.pool, id, ident.EmpresaID)
	if err != nil {
		return Personal{}, err
	}
	in.apply(&persona)

	err = db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.repo.Update(ctx, tx, persona); err != nil {
			return err
		}
		persona, err = s.repo.Get(ctx, tx, id, ident.EmpresaID)
		if err != nil {
			return err
		}
		_, err = s.audit.Registrar(ctx, tx, centinela.AccionEditar,
			persona.Nombre+" "+persona.Apellido, menuLabel, moduloLabel)
		return err
	})
	if err != nil {
		return Personal{}, err
	}
	return persona, nil
}

// Eliminar marks a staff member inactive.
func (s *Service) Eliminar(ctx context.Context, id int64) error {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return errors.New("personal: identidad no disponible")
	}

	persona, err := s.repo.Get(ctx, s.pool, id, ident.EmpresaID)
	if err != nil {
		return err
	}

	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.repo.SoftDelete(ctx, tx, id, ident.EmpresaID); err != nil {
			return err
		}
		_, err := s.audit.Registrar(ctx, tx, centinela.AccionEliminar,
			persona.Nombre+" "+persona.Apellido, menuLabel, moduloLabel)
		return err
	})
}
