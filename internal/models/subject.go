package models

// Subject represents a course unit, optionally owned by a professor.
type Subject struct {
	ID         int64  `db:"id" json:"id"`
	Nombre     string `db:"nombre" json:"nombre"`
	Creditos   int    `db:"creditos" json:"creditos"`
	Horas      int    `db:"horas" json:"horas"`
	ProfesorID *int64 `db:"profesor_id" json:"profesor_id"`
}

// SubjectDetail joins the owning professor's display fields for listings.
type SubjectDetail struct {
	Subject
	ProfesorNombre *string `db:"profesor_nombre" json:"profesor_nombre"`
	ProfesorCedula *string `db:"profesor_cedula" json:"profesor_cedula"`
}
