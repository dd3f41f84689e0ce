package models

// Professor represents a subject owner identified by national ID (cedula).
type Professor struct {
	ID      int64  `db:"id" json:"id"`
	Nombres string `db:"nombres" json:"nombres"`
	Cedula  string `db:"cedula" json:"cedula"`
}
