package estudiantes

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coarapp/coar/internal/centinela"
	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/shared"
)

// ApoderadoInput is one family member of the student form.
type ApoderadoInput struct {
	ID                        *int64  `json:"id"`
	Vive                      bool    `json:"vive"`
	ViveConEstudiante         bool    `json:"vive_con_estudiante"`
	Nombres                   *string `json:"nombres"`
	Apellidos                 *string `json:"apellidos"`
	DNI                       *string `json:"dni"`
	GradoInstruccion          *string `json:"grado_instruccion"`
	OcupacionActual           *string `json:"ocupacion_actual"`
	Telefono                  *string `json:"telefono"`
	CorreoElectronico         *string `json:"correo_electronico"`
	MotivoNoViveConEstudiante *string `json:"motivo_no_vive_con_estudiante"`
	ParentescoEstudiante      *string `json:"parentesco_estudiante"`
	TipoFamilia               *string `json:"tipo_familia"`
	FlLegalizado              bool    `json:"fl_legalizado"`
}

// Input is the full student form. When ID is present the form edits an
// existing student, otherwise it registers a new one.
type Input struct {
	ID                        *int64  `json:"id"`
	Nombres                   string  `json:"nombres" validate:"required,max=255"`
	Apellidos                 string  `json:"apellidos" validate:"required,max=100"`
	Obsv                      *string `json:"obsv" validate:"omitempty,max=255"`
	Grado                     string  `json:"grado" validate:"required,max=10"`
	Seccion                   string  `json:"seccion" validate:"required,max=10"`
	DNI                       string  `json:"dni" validate:"required,max=20"`
	Foto                      *string `json:"foto"`
	Sexo                      string  `json:"sexo" validate:"required,oneof=MASCULINO FEMENINO"`
	CorreoElectronico         string  `json:"correo_electronico" validate:"required,email,max=255"`
	CodigoEstudiante          string  `json:"codigo_estudiante" validate:"omitempty,max=255"`
	FechaNacimiento           *string `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
	CondicionEstudiante       string  `json:"condicion_estudiante" validate:"required,oneof=ESTUDIANTE EGRESADO"`
	LugarNacimiento           *string `json:"lugar_nacimiento" validate:"omitempty,max=255"`
	FechaCaducidadDNI         *string `json:"fecha_caducidad_dni" validate:"omitempty,datetime=2006-01-02"`
	NumTelefonico             *string `json:"num_telefonico" validate:"omitempty,max=20"`
	Religion                  *string `json:"religion" validate:"omitempty,max=50"`
	RegionDomicilioActual     *string `json:"region_domicilio_actual" validate:"omitempty,max=50"`
	ProvinciaDomicilioActual  *string `json:"provincia_domicilio_actual" validate:"omitempty,max=50"`
	DistritoDomicilioActual   *string `json:"distrito_domicilio_actual" validate:"omitempty,max=50"`
	DireccionDomicilioActual  *string `json:"direccion_domicilio_actual" validate:"omitempty,max=255"`
	ReferenciaDomicilioActual *string `json:"referencia_domicilio_actual" validate:"omitempty,max=255"`
	Lav                       *string `json:"lav" validate:"omitempty,max=10"`
	Llaves                    *string `json:"llaves" validate:"omitempty,max=10"`
	Pabellon                  *string `json:"pabellon" validate:"omitempty,max=10"`
	Ala                       *string `json:"ala" validate:"omitempty,max=10"`
	CamaRopero                *string `json:"cama_ropero" validate:"omitempty,max=10"`
	Duchas                    *string `json:"duchas" validate:"omitempty,max=10"`
	Banos                     *string `json:"banos" validate:"omitempty,max=10"`
	Urinarios                 *string `json:"urinarios" validate:"omitempty,max=10"`
	MonitorAcompana           *string `json:"monitor_acompana" validate:"omitempty,max=255"`

	Padre          *ApoderadoInput  `json:"padre"`
	Madre          *ApoderadoInput  `json:"madre"`
	PadreApoderado *ApoderadoInput  `json:"padre_apoderado"`
	Apoderados     []ApoderadoInput `json:"apoderados"`
}

const codigoChars = "0123456789abcdefghijklmnopqrstuvwxyz!@#$%^&*()ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func generarCodigo() string {
	b := make([]byte, 12)
	for i := range b {
		b[i] = codigoChars[rand.IntN(len(codigoChars))]
	}
	return string(b)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Service implements the student file use cases. A save rewrites the student
// and its whole family set in one transaction.
type Service struct {
	pool  *pgxpool.Pool
	repo  *Repository
	audit *centinela.Service
}

// NewService constructs a Service.
func NewService(pool *pgxpool.Pool, repo *Repository, audit *centinela.Service) *Service {
	return &Service{pool: pool, repo: repo, audit: audit}
}

// Listar returns the students of the empresa in the table projection. A non
// empty buscar term filters by name or DNI ignoring case and accents.
func (s *Service) Listar(ctx context.Context, empresaID int64, buscar string) ([]Row, error) {
	rows, err := s.repo.List(ctx, s.pool, empresaID)
	if err != nil || buscar == "" {
		return rows, err
	}

	term := shared.FoldSearch(buscar)
	filtered := rows[:0]
	for _, r := range rows {
		if strings.Contains(shared.FoldSearch(r.Estudiante), term) ||
			strings.Contains(shared.FoldSearch(r.DNI), term) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// Obtener returns the full ficha of one student.
func (s *Service) Obtener(ctx context.Context, id, empresaID int64) (Ficha, error) {
	estudiante, err := s.repo.Get(ctx, s.pool, id, empresaID)
	if err != nil {
		return Ficha{}, err
	}
	apoderados, err := s.repo.ListApoderados(ctx, s.pool, id)
	if err != nil {
		return Ficha{}, err
	}

	ficha := Ficha{Estudiante: estudiante, Apoderados: []Apoderado{}}
	for i := range apoderados {
		a := apoderados[i]
		switch a.Tipo {
		case TipoPadre:
			ficha.Padre = &a
		case TipoMadre:
			ficha.Madre = &a
		case TipoPadreApoderado:
			ficha.PadreApoderado = &a
		case TipoApoderado:
			ficha.Apoderados = append(ficha.Apoderados, a)
		}
	}
	return ficha, nil
}

func (in Input) estudiante(empresaID int64) Estudiante {
	return Estudiante{
		Nombres: in.Nombres, Apellidos: in.Apellidos, Obsv: in.Obsv,
		Grado: in.Grado, Seccion: in.Seccion, DNI: in.DNI, Foto: in.Foto,
		Sexo: in.Sexo, CorreoElectronico: in.CorreoElectronico,
		CodigoEstudiante: in.CodigoEstudiante, FechaNacimiento: in.FechaNacimiento,
		CondicionEstudiante: in.CondicionEstudiante, LugarNacimiento: in.LugarNacimiento,
		FechaCaducidadDNI: in.FechaCaducidadDNI, NumTelefonico: in.NumTelefonico,
		Religion:              in.Religion,
		RegionDomicilioActual: in.RegionDomicilioActual, ProvinciaDomicilioActual: in.ProvinciaDomicilioActual,
		DistritoDomicilioActual: in.DistritoDomicilioActual, DireccionDomicilioActual: in.DireccionDomicilioActual,
		ReferenciaDomicilioActual: in.ReferenciaDomicilioActual,
		Lav:                       in.Lav, Llaves: in.Llaves, Pabellon: in.Pabellon, Ala: in.Ala,
		CamaRopero: in.CamaRopero, Duchas: in.Duchas, Banos: in.Banos,
		Urinarios: in.Urinarios, MonitorAcompana: in.MonitorAcompana,
		IDEmpresa: empresaID,
	}
}

func (a ApoderadoInput) apoderado(tipo string, idEstudiante int64) Apoderado {
	out := Apoderado{
		Tipo:              tipo,
		Vive:              boolToInt(a.Vive),
		ViveConEstudiante: boolToInt(a.ViveConEstudiante),
		Nombres:           a.Nombres, Apellidos: a.Apellidos, DNI: a.DNI,
		GradoInstruccion: a.GradoInstruccion, OcupacionActual: a.OcupacionActual,
		Telefono: a.Telefono, CorreoElectronico: a.CorreoElectronico,
		MotivoNoViveConEstudiante: a.MotivoNoViveConEstudiante,
		ParentescoEstudiante:      a.ParentescoEstudiante,
		TipoFamilia:               a.TipoFamilia,
		FlLegalizado:              boolToInt(a.FlLegalizado),
		IDEstudiante:              idEstudiante,
	}
	if a.ID != nil {
		out.ID = *a.ID
	}
	return out
}

// saveFamiliar upserts one single-slot family row. A new row needs a DNI;
// rows identified by id are rewritten in place.
func (s *Service) saveFamiliar(ctx context.Context, tx pgx.Tx, tipo string, in *ApoderadoInput, idEstudiante int64) error {
	if in == nil {
		return nil
	}
	a := in.apoderado(tipo, idEstudiante)
	if a.ID == 0 && (a.DNI == nil || *a.DNI == "") {
		return nil
	}
	_, err := s.repo.UpsertApoderado(ctx, tx, a)
	return err
}

// Guardar creates or updates a student together with its family rows. It
// reports whether a new student was created.
func (s *Service) Guardar(ctx context.Context, in Input) (Estudiante, bool, error) {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return Estudiante{}, false, errors.New("estudiantes: identidad no disponible")
	}

	creating := in.ID == nil
	estudiante := in.estudiante(ident.EmpresaID)
	if creating {
		if estudiante.CodigoEstudiante == "" {
			estudiante.CodigoEstudiante = generarCodigo()
		}
		if estudiante.Foto == nil {
			foto := "sin_imagen.jpg"
			estudiante.Foto = &foto
		}
	}

	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if creating {
			id, err := s.repo.Insert(ctx, tx, estudiante)
			if err != nil {
				return err
			}
			estudiante.ID = id
		} else {
			actual, err := s.repo.Get(ctx, tx, *in.ID, ident.EmpresaID)
			if err != nil {
				return err
			}
			estudiante.ID = actual.ID
			if estudiante.CodigoEstudiante == "" {
				estudiante.CodigoEstudiante = actual.CodigoEstudiante
			}
			if estudiante.Foto == nil {
				estudiante.Foto = actual.Foto
			}
			if err := s.repo.Update(ctx, tx, estudiante); err != nil {
				return err
			}
		}

		if err := s.saveFamiliar(ctx, tx, TipoPadre, in.Padre, estudiante.ID); err != nil {
			return err
		}
		if err := s.saveFamiliar(ctx, tx, TipoMadre, in.Madre, estudiante.ID); err != nil {
			return err
		}
		if err := s.saveFamiliar(ctx, tx, TipoPadreApoderado, in.PadreApoderado, estudiante.ID); err != nil {
			return err
		}

		// Replace the APODERADO set by diffing against the incoming ids.
		keep := make([]int64, 0, len(in.Apoderados))
		for _, a := range in.Apoderados {
			id, err := s.repo.UpsertApoderado(ctx, tx, a.apoderado(TipoApoderado, estudiante.ID))
			if err != nil {
				return err
			}
			keep = append(keep, id)
		}
		if err := s.repo.DeleteApoderadosExcept(ctx, tx, estudiante.ID, TipoApoderado, keep); err != nil {
			return err
		}

		accion := centinela.AccionEditar
		if creating {
			accion = centinela.AccionNuevo
		}
		_, err := s.audit.Registrar(ctx, tx, accion,
			estudiante.Nombres+" "+estudiante.Apellidos, menuLabel, moduloLabel)
		return err
	})
	if err != nil {
		return Estudiante{}, false, err
	}
	return estudiante, creating, nil
}

// Eliminar hides a student from listings. The family rows stay so the file
// can be restored by hand if needed.
func (s *Service) Eliminar(ctx context.Context, id int64) error {
	ident := shared.IdentityFromContext(ctx)
	if ident == nil {
		return errors.New("estudiantes: identidad no disponible")
	}

	estudiante, err := s.repo.Get(ctx, s.pool, id, ident.EmpresaID)
	if err != nil {
		return err
	}

	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.repo.MarcarEliminado(ctx, tx, id, ident.EmpresaID); err != nil {
			return err
		}
		_, err := s.audit.Registrar(ctx, tx, centinela.AccionEliminar,
			estudiante.Nombres+" "+estudiante.Apellidos, menuLabel, moduloLabel)
		return err
	})
}
