package incidencias

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coarapp/coar/internal/centinela"
	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/shared"
)

const secuenciaTable = "incidencias"

// Input carries the registration form of an incident.
type Input struct {
	Descripcion       string `json:"descripcion" validate:"required,max=555"`
	Fecha             string `json:"fecha" validate:"required,datetime=2006-01-02"`
	IDTipoIncidencia  int64  `json:"id_tipo_incidencia" validate:"required"`
	IDLugarIncidencia int64  `json:"id_lugar_incidencia" validate:"required"`
	IDArea            *int64 `json:"id_area"`
	IDEstudiante      *int64 `json:"id_estudiante"`
}

// Service implements incident operations. The correlative is read and
// persisted inside the same transaction so two concurrent registrations
// cannot take the same number.
type Service struct {
	pool  *pgxpool.Pool
	repo  *Repository
	audit *centinela.Service
}

// NewService constructs a Service.
func NewService(pool *pgxpool.Pool, repo *Repository, audit *centinela.Service) *Service {
	return &Service{pool: pool, repo: repo, audit: audit}
}

// Listar returns the incidents of the empresa.
func (s *Service) Listar(ctx context.Context, empresaID int64) ([]Row, error) {
	return s.repo.List(ctx, s.pool, empresaID)
}

// Initial returns the form bootstrap data: the correlative the next incident
// will take and the active dropdown rows. The correlative shown here is
// informative only; the definitive one is assigned at registration.
func (s *Service) Initial(ctx context.Context, empresaID int64) (InitialData, error) {
	secuencia, err := shared.NextSecuencia(ctx, s.pool, secuenciaTable, empresaID, "")
	if err != nil {
		return InitialData{}, err
	}

	tipos, err := s.repo.TipoIncidenciaOptions(ctx, s.pool, empresaID)
	if err != nil {
		return InitialData{}, err
	}
	lugares, err := s.repo.LugarOptions(ctx, s.pool, empresaID)
	if err != nil {
		return InitialData{}, err
	}
	areas, err := s.repo.AreaOptions(ctx, s.pool, empresaID)
	if err != nil {
		return InitialData{}, err
	}

	return InitialData{
		Secuencia:       secuencia.String(),
		TipoIncidencias: tipos,
		Lugares:         lugares,
		Areas:           areas,
	}, nil
}

// secuenciaDuplicada reports whether err is the unique violation raised when
// a concurrent registration took the same correlative first.
func secuenciaDuplicada(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Registrar stores a new incident with the next correlative of the empresa.
// Two concurrent registrations can read the same MAX(numero); the loser hits
// UNIQUE(id_empresa, serie, numero) and the transaction runs once more with a
// fresh correlative instead of surfacing the conflict to the user.
func (s *Service) Registrar(ctx context.Context, in Input) (Incidencia, error) {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return Incidencia{}, errors.New("incidencias: identidad no disponible")
	}

	incidencia := Incidencia{
		Descripcion:       in.Descripcion,
		Fecha:             in.Fecha,
		Estado:            EstadoRegistrado,
		IDTipoIncidencia:  in.IDTipoIncidencia,
		IDLugarIncidencia: in.IDLugarIncidencia,
		IDArea:            in.IDArea,
		IDEstudiante:      in.IDEstudiante,
		IDUsuario:         ident.UserID,
		IDEmpresa:         ident.EmpresaID,
	}

	registrar := func() error {
		return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
			secuencia, err := shared.NextSecuencia(ctx, tx, secuenciaTable, ident.EmpresaID, "")
			if err != nil {
				return err
			}
			incidencia.Serie = secuencia.Serie
			incidencia.Numero = secuencia.Numero

			id, err := s.repo.Insert(ctx, tx, incidencia)
			if err != nil {
				return err
			}
			incidencia.ID = id

			_, err = s.audit.Registrar(ctx, tx, centinela.AccionNuevo,
				incidencia.Secuencia(), menuLabel, moduloLabel)
			return err
		})
	}

	err := registrar()
	if secuenciaDuplicada(err) {
		err = registrar()
	}
	if err != nil {
		return Incidencia{}, err
	}
	return incidencia, nil
}
