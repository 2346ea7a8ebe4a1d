package estudiantes

// Condicion values. ELIMINADO hides the student from every listing while
// keeping the record and its guardians recoverable.
const (
	CondicionEstudiante = "ESTUDIANTE"
	CondicionEgresado   = "EGRESADO"
	CondicionEliminado  = "ELIMINADO"
)

// Guardian tipo values.
const (
	TipoPadre          = "PADRE"
	TipoMadre          = "MADRE"
	TipoPadreApoderado = "PADRE_APODERADO"
	TipoApoderado      = "APODERADO"
)

// Estudiante carries the full student file, including boarding assignments.
type Estudiante struct {
	ID                        int64   `json:"id"`
	Nombres                   string  `json:"nombres"`
	Apellidos                 string  `json:"apellidos"`
	Obsv                      *string `json:"obsv"`
	Grado                     string  `json:"grado"`
	Seccion                   string  `json:"seccion"`
	DNI                       string  `json:"dni"`
	Foto                      *string `json:"foto"`
	Sexo                      string  `json:"sexo"`
	CorreoElectronico         string  `json:"correo_electronico"`
	CodigoEstudiante          string  `json:"codigo_estudiante"`
	FechaNacimiento           *string `json:"fecha_nacimiento"`
	CondicionEstudiante       string  `json:"condicion_estudiante"`
	LugarNacimiento           *string `json:"lugar_nacimiento"`
	FechaCaducidadDNI         *string `json:"fecha_caducidad_dni"`
	NumTelefonico             *string `json:"num_telefonico"`
	Religion                  *string `json:"religion"`
	RegionDomicilioActual     *string `json:"region_domicilio_actual"`
	ProvinciaDomicilioActual  *string `json:"provincia_domicilio_actual"`
	DistritoDomicilioActual   *string `json:"distrito_domicilio_actual"`
	DireccionDomicilioActual  *string `json:"direccion_domicilio_actual"`
	ReferenciaDomicilioActual *string `json:"referencia_domicilio_actual"`
	Lav                       *string `json:"lav"`
	Llaves                    *string `json:"llaves"`
	Pabellon                  *string `json:"pabellon"`
	Ala                       *string `json:"ala"`
	CamaRopero                *string `json:"cama_ropero"`
	Duchas                    *string `json:"duchas"`
	Banos                     *string `json:"banos"`
	Urinarios                 *string `json:"urinarios"`
	MonitorAcompana           *string `json:"monitor_acompana"`
	IDEmpresa                 int64   `json:"-"`
}

// Apoderado is one parent or guardian row of a student.
type Apoderado struct {
	ID                        int64   `json:"id"`
	Tipo                      string  `json:"tipo"`
	Vive                      int     `json:"vive"`
	ViveConEstudiante         int     `json:"vive_con_estudiante"`
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
	FlLegalizado              int     `json:"fl_legalizado"`
	IDEstudiante              int64   `json:"id_estudiante"`
}

// Ficha is the detail payload of one student with the family rows split the
// way the SPA form consumes them.
type Ficha struct {
	Estudiante
	Padre          *Apoderado  `json:"padre"`
	Madre          *Apoderado  `json:"madre"`
	PadreApoderado *Apoderado  `json:"padre_apoderado"`
	Apoderados     []Apoderado `json:"apoderados"`
}

// Row is the listing projection for the students table.
type Row struct {
	ID                  int64  `json:"id"`
	GradoSeccion        string `json:"grado_seccion"`
	Estudiante          string `json:"estudiante"`
	CorreoElectronico   string `json:"correo_electronico"`
	DNI                 string `json:"dni"`
	CondicionEstudiante string `json:"condicion_estudiante"`
}
