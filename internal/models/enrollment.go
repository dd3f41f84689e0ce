package models

// Enrollment links one student to one subject. The (estudiante, materia)
// pair is unique.
type Enrollment struct {
	ID           int64 `db:"id" json:"id"`
	EstudianteID int64 `db:"estudiante_id" json:"estudiante_id"`
	MateriaID    int64 `db:"materia_id" json:"materia_id"`
}

// EnrolledSubject is a subject as seen from a student's enrollment list,
// with the professor's name resolved.
type EnrolledSubject struct {
	ID             int64   `db:"id" json:"id"`
	Nombre         string  `db:"nombre" json:"nombre"`
	Creditos       int     `db:"creditos" json:"creditos"`
	Horas          int     `db:"horas" json:"horas"`
	ProfesorNombre *string `db:"profesor_nombre" json:"profesor_nombre"`
}
