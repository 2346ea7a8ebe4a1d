package estudiantes

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/coarapp/coar/internal/platform/db"
	"github.com/coarapp/coar/internal/platform/httpx"
)

// Repository provides PostgreSQL backed persistence for students and their
// guardians.
type Repository struct{}

// NewRepository constructs a repository.
func NewRepository() *Repository {
	return &Repository{}
}

// List returns the non-deleted students of one empresa, newest first, in the
// table projection.
func (Repository) List(ctx context.Context, q db.DBTX, empresaID int64) ([]Row, error) {
	rows, err := q.Query(ctx,
		`SELECT id, grado || '° ' || seccion, apellidos || ' ' || nombres,
		        correo_electronico, dni, condicion_estudiante
		 FROM estudiante
		 WHERE id_empresa = $1 AND condicion_estudiante <> 'ELIMINADO'
		 ORDER BY id DESC`, empresaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.ID, &r.GradoSeccion, &r.Estudiante, &r.CorreoElectronico, &r.DNI, &r.CondicionEstudiante); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

const estudianteColumns = `
	id, nombres, apellidos, obsv, grado, seccion, dni, foto, sexo,
	correo_electronico, codigo_estudiante,
	to_char(fecha_nacimiento, 'YYYY-MM-DD'), condicion_estudiante,
	lugar_nacimiento, to_char(fecha_caducidad_dni, 'YYYY-MM-DD'),
	num_telefonico, religion,
	region_domicilio_actual, provincia_domicilio_actual,
	distrito_domicilio_actual, direccion_domicilio_actual,
	referencia_domicilio_actual,
	lav, llaves, pabellon, ala, cama_ropero, duchas, banos, urinarios,
	monitor_acompana`

// Get fetches one student of the empresa.
func (Repository) Get(ctx context.Context, q db.DBTX, id, empresaID int64) (Estudiante, error) {
	var e Estudiante
	err := q.QueryRow(ctx,
		`SELECT `+estudianteColumns+` FROM estudiante WHERE id = $1 AND id_empresa = $2`,
		id, empresaID).
		Scan(&e.ID, &e.Nombres, &e.Apellidos, &e.Obsv, &e.Grado, &e.Seccion,
			&e.DNI, &e.Foto, &e.Sexo, &e.CorreoElectronico, &e.CodigoEstudiante,
			&e.FechaNacimiento, &e.CondicionEstudiante, &e.LugarNacimiento,
			&e.FechaCaducidadDNI, &e.NumTelefonico, &e.Religion,
			&e.RegionDomicilioActual, &e.ProvinciaDomicilioActual,
			&e.DistritoDomicilioActual, &e.DireccionDomicilioActual,
			&e.ReferenciaDomicilioActual,
			&e.Lav, &e.Llaves, &e.Pabellon, &e.Ala, &e.CamaRopero,
			&e.Duchas, &e.Banos, &e.Urinarios, &e.MonitorAcompana)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Estudiante{}, httpx.ErrNotFound
		}
		return Estudiante{}, err
	}
	e.IDEmpresa = empresaID
	return e, nil
}

// Insert stores a new student and returns its id.
func (Repository) Insert(ctx context.Context, q db.DBTX, e Estudiante) (int64, error) {
	var id int64
	err := q.QueryRow(ctx,
		`INSERT INTO estudiante
		   (nombres, apellidos, obsv, grado, seccion, dni, foto, sexo,
		    correo_electronico, codigo_estudiante, fecha_nacimiento,
		    condicion_estudiante, lugar_nacimiento, fecha_caducidad_dni,
		    num_telefonico, religion,
		    region_domicilio_actual, provincia_domicilio_actual,
		    distrito_domicilio_actual, direccion_domicilio_actual,
		    referencia_domicilio_actual,
		    lav, llaves, pabellon, ala, cama_ropero, duchas, banos, urinarios,
		    monitor_acompana, id_empresa)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::date, $12, $13,
		         $14::date, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24,
		         $25, $26, $27, $28, $29, $30, $31)
		 RETURNING id`,
		e.Nombres, e.Apellidos, e.Obsv, e.Grado, e.Seccion, e.DNI, e.Foto, e.Sexo,
		e.CorreoElectronico, e.CodigoEstudiante, e.FechaNacimiento,
		e.CondicionEstudiante, e.LugarNacimiento, e.FechaCaducidadDNI,
		e.NumTelefonico, e.Religion,
		e.RegionDomicilioActual, e.ProvinciaDomicilioActual,
		e.DistritoDomicilioActual, e.DireccionDomicilioActual,
		e.ReferenciaDomicilioActual,
		e.Lav, e.Llaves, e.Pabellon, e.Ala, e.CamaRopero, e.Duchas, e.Banos,
		e.Urinarios, e.MonitorAcompana, e.IDEmpresa).
		Scan(&id)
	return id, err
}

// Update rewrites the editable fields of one student.
func (Repository) Update(ctx context.Context, q db.DBTX, e Estudiante) error {
	tag, err := q.Exec(ctx,
		`UPDATE estudiante SET
		   nombres = $1, apellidos = $2, obsv = $3, grado = $4, seccion = $5,
		   dni = $6, foto = $7, sexo = $8, correo_electronico = $9,
		   codigo_estudiante = $10, fecha_nacimiento = $11::date,
		   condicion_estudiante = $12, lugar_nacimiento = $13,
		   fecha_caducidad_dni = $14::date, num_telefonico = $15, religion = $16,
		   region_domicilio_actual = $17, provincia_domicilio_actual = $18,
		   distrito_domicilio_actual = $19, direccion_domicilio_actual = $20,
		   referencia_domicilio_actual = $21,
		   lav = $22, llaves = $23, pabellon = $24, ala = $25, cama_ropero = $26,
		   duchas = $27, banos = $28, urinarios = $29, monitor_acompana = $30
		 WHERE id = $31 AND id_empresa = $32`,
		e.Nombres, e.Apellidos, e.Obsv, e.Grado, e.Seccion,
		e.DNI, e.Foto, e.Sexo, e.CorreoElectronico,
		e.CodigoEstudiante, e.FechaNacimiento,
		e.CondicionEstudiante, e.LugarNacimiento,
		e.FechaCaducidadDNI, e.NumTelefonico, e.Religion,
		e.RegionDomicilioActual, e.ProvinciaDomicilioActual,
		e.DistritoDomicilioActual, e.DireccionDomicilioActual,
		e.ReferenciaDomicilioActual,
		e.Lav, e.Llaves, e.Pabellon, e.Ala, e.CamaRopero,
		e.Duchas, e.Banos, e.Urinarios, e.MonitorAcompana,
		e.ID, e.IDEmpresa)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// MarcarEliminado hides the student from listings.
func (Repository) MarcarEliminado(ctx context.Context, q db.DBTX, id, empresaID int64) error {
	tag, err := q.Exec(ctx,
		`UPDATE estudiante SET condicion_estudiante = 'ELIMINADO'
		 WHERE id = $1 AND id_empresa = $2`, id, empresaID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

const apoderadoColumns = `
	id, tipo, vive, vive_con_estudiante, nombres, apellidos, dni,
	grado_instruccion, ocupacion_actual, telefono, correo_electronico,
	motivo_no_vive_con_estudiante, parentesco_estudiante, tipo_familia,
	fl_legalizado, id_estudiante`

// ListApoderados returns every family row of one student.
func (Repository) ListApoderados(ctx context.Context, q db.DBTX, idEstudiante int64) ([]Apoderado, error) {
	rows, err := q.Query(ctx,
		`SELECT `+apoderadoColumns+` FROM padres_apoderados WHERE id_estudiante = $1 ORDER BY id`, idEstudiante)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apoderados []Apoderado
	for rows.Next() {
		var a Apoderado
		err := rows.Scan(&a.ID, &a.Tipo, &a.Vive, &a.ViveConEstudiante,
			&a.Nombres, &a.Apellidos, &a.DNI, &a.GradoInstruccion,
			&a.OcupacionActual, &a.Telefono, &a.CorreoElectronico,
			&a.MotivoNoViveConEstudiante, &a.ParentescoEstudiante,
			&a.TipoFamilia, &a.FlLegalizado, &a.IDEstudiante)
		if err != nil {
			return nil, err
		}
		apoderados = append(apoderados, a)
	}
	return apoderados, rows.Err()
}

// UpsertApoderado inserts or rewrites one family row and returns its id.
func (Repository) UpsertApoderado(ctx context.Context, q db.DBTX, a Apoderado) (int64, error) {
	if a.ID != 0 {
		_, err := q.Exec(ctx,
			`UPDATE padres_apoderados SET
			   tipo = $1, vive = $2, vive_con_estudiante = $3, nombres = $4,
			   apellidos = $5, dni = $6, grado_instruccion = $7,
			   ocupacion_actual = $8, telefono = $9, correo_electronico = $10,
			   motivo_no_vive_con_estudiante = $11, parentesco_estudiante = $12,
			   tipo_familia = $13, fl_legalizado = $14
			 WHERE id = $15 AND id_estudiante = $16`,
			a.Tipo, a.Vive, a.ViveConEstudiante, a.Nombres,
			a.Apellidos, a.DNI, a.GradoInstruccion,
			a.OcupacionActual, a.Telefono, a.CorreoElectronico,
			a.MotivoNoViveConEstudiante, a.ParentescoEstudiante,
			a.TipoFamilia, a.FlLegalizado, a.ID, a.IDEstudiante)
		return a.ID, err
	}

	var id int64
	err := q.QueryRow(ctx,
		`INSERT INTO padres_apoderados
		   (tipo, vive, vive_con_estudiante, nombres, apellidos, dni,
		    grado_instruccion, ocupacion_actual, telefono, correo_electronico,
		    motivo_no_vive_con_estudiante, parentesco_estudiante, tipo_familia,
		    fl_legalizado, id_estudiante)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 RETURNING id`,
		a.Tipo, a.Vive, a.ViveConEstudiante, a.Nombres, a.Apellidos, a.DNI,
		a.GradoInstruccion, a.OcupacionActual, a.Telefono, a.CorreoElectronico,
		a.MotivoNoViveConEstudiante, a.ParentescoEstudiante, a.TipoFamilia,
		a.FlLegalizado, a.IDEstudiante).
		Scan(&id)
	return id, err
}

// DeleteApoderadosExcept removes the rows of one tipo missing from keep.
func (Repository) DeleteApoderadosExcept(ctx context.Context, q db.DBTX, idEstudiante int64, tipo string, keep []int64) error {
	_, err := q.Exec(ctx,
		`DELETE FROM padres_apoderados
		 WHERE id_estudiante = $1 AND tipo = $2 AND id <> ALL($3)`,
		idEstudiante, tipo, keep)
	return err
}
