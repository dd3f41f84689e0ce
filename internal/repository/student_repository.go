package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/amezav/registro-academico-api/internal/models"
)

const studentColumns = `id, nombre_completo, to_char(fecha_nacimiento, 'YYYY-MM-DD') AS fecha_nacimiento, email, telefono, matricula, carrera, anio_semestre, promedio, estado, to_char(fecha_ingreso, 'YYYY-MM-DD') AS fecha_ingreso, to_char(fecha_egreso, 'YYYY-MM-DD') AS fecha_egreso, direccion`

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns all students ordered by id.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM estudiantes ORDER BY id ASC", studentColumns)
	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// Roster returns the reduced listing ordered by name.
func (r *StudentRepository) Roster(ctx context.Context) ([]models.RosterEntry, error) {
	const query = `SELECT id, nombre_completo, matricula, email FROM estudiantes ORDER BY nombre_completo`
	entries := []models.RosterEntry{}
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	return entries, nil
}

// FindByID fetches a student by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM estudiantes WHERE id = $1", studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// ExistsByEmailOrMatricula checks the student uniqueness constraints,
// optionally excluding an ID during updates.
func (r *StudentRepository) ExistsByEmailOrMatricula(ctx context.Context, email, matricula string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM estudiantes WHERE (email = $1 OR matricula = $2)"
	args := []interface{}{email, matricula}
	if excludeID > 0 {
		query += " AND id <> $3"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check student uniqueness: %w", err)
	}
	return true, nil
}

// Create inserts a new student and fills in the generated identifier.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	const query = `INSERT INTO estudiantes
        (nombre_completo, fecha_nacimiento, email, telefono, matricula, carrera, anio_semestre, promedio, estado, fecha_ingreso, fecha_egreso, direccion)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id`
	if err := r.db.GetContext(ctx, &student.ID, query,
		student.NombreCompleto,
		student.FechaNacimiento,
		student.Email,
		student.Telefono,
		student.Matricula,
		student.Carrera,
		student.AnioSemestre,
		student.Promedio,
		student.Estado,
		student.FechaIngreso,
		student.FechaEgreso,
		student.Direccion,
	); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// UpdateFields applies a sparse set of column changes. Column names come
// from the service-side whitelist, never from request input.
func (r *StudentRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	assignments := make([]string, 0, len(fields))
	args := make([]interface{}, 0, len(fields)+1)
	for column, value := range fields {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)+1))
		args = append(args, value)
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE estudiantes SET %s WHERE id = $%d", strings.Join(assignments, ", "), len(args))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// Delete removes a student row, returning the number of rows affected.
func (r *StudentRepository) Delete(ctx context.Context, id int64) (int64, error) {
	const query = `DELETE FROM estudiantes WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete student: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete student rows affected: %w", err)
	}
	return affected, nil
}

// CountEnrollments returns how many subjects reference the student.
func (r *StudentRepository) CountEnrollments(ctx context.Context, id int64) (int, error) {
	const query = `SELECT COUNT(*) FROM estudiante_materia WHERE estudiante_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return 0, fmt.Errorf("count student enrollments: %w", err)
	}
	return count, nil
}
