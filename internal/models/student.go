package models

// Student statuses as stored in the estado column.
const (
	StudentStatusActive    = "activo"
	StudentStatusGraduated = "egresado"
	StudentStatusSuspended = "suspendido"
)

// Student represents a learner registered in the institution. Dates travel
// as YYYY-MM-DD strings end to end; the storage layer casts them to DATE.
type Student struct {
	ID              int64    `db:"id" json:"id"`
	NombreCompleto  string   `db:"nombre_completo" json:"nombre_completo"`
	FechaNacimiento string   `db:"fecha_nacimiento" json:"fecha_nacimiento"`
	Email           string   `db:"email" json:"email"`
	Telefono        *string  `db:"telefono" json:"telefono"`
	Matricula       string   `db:"matricula" json:"matricula"`
	Carrera         string   `db:"carrera" json:"carrera"`
	AnioSemestre    string   `db:"anio_semestre" json:"anio_semestre"`
	Promedio        *float64 `db:"promedio" json:"promedio"`
	Estado          string   `db:"estado" json:"estado"`
	FechaIngreso    string   `db:"fecha_ingreso" json:"fecha_ingreso"`
	FechaEgreso     *string  `db:"fecha_egreso" json:"fecha_egreso"`
	Direccion       *string  `db:"direccion" json:"direccion"`
}

// RosterEntry is the reduced student projection used by the roster listing
// and the export endpoints.
type RosterEntry struct {
	ID             int64  `db:"id" json:"id"`
	NombreCompleto string `db:"nombre_completo" json:"nombre_completo"`
	Matricula      string `db:"matricula" json:"matricula"`
	Email          string `db:"email" json:"email"`
}
