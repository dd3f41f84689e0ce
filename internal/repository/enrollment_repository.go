package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/amezav/registro-academico-api/internal/models"
)

// EnrollmentRepository handles persistence of the student-subject join.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// ListSubjectsByStudent returns the subjects a student is enrolled in,
// professor name resolved, ordered by subject name.
func (r *EnrollmentRepository) ListSubjectsByStudent(ctx context.Context, studentID int64) ([]models.EnrolledSubject, error) {
	const query = `SELECT m.id, m.nombre, m.creditos, m.horas, p.nombres AS profesor_nombre
        FROM estudiante_materia em
        JOIN materias m ON em.materia_id = m.id
        LEFT JOIN profesores p ON m.profesor_id = p.id
        WHERE em.estudiante_id = $1
        ORDER BY m.nombre`
	subjects := []models.EnrolledSubject{}
	if err := r.db.SelectContext(ctx, &subjects, query, studentID); err != nil {
		return nil, fmt.Errorf("list enrolled subjects: %w", err)
	}
	return subjects, nil
}

// Exists checks whether the (student, subject) pair is already enrolled.
func (r *EnrollmentRepository) Exists(ctx context.Context, studentID, subjectID int64) (bool, error) {
	const query = `SELECT 1 FROM estudiante_materia WHERE estudiante_id = $1 AND materia_id = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, studentID, subjectID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return true, nil
}

// Create inserts an enrollment and fills in the generated identifier.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	const query = `INSERT INTO estudiante_materia (estudiante_id, materia_id) VALUES ($1, $2) RETURNING id`
	if err := r.db.GetContext(ctx, &enrollment.ID, query, enrollment.EstudianteID, enrollment.MateriaID); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// Delete removes the enrollment for the pair, returning rows affected.
func (r *EnrollmentRepository) Delete(ctx context.Context, studentID, subjectID int64) (int64, error) {
	const query = `DELETE FROM estudiante_materia WHERE estudiante_id = $1 AND materia_id = $2`
	result, err := r.db.ExecContext(ctx, query, studentID, subjectID)
	if err != nil {
		return 0, fmt.Errorf("delete enrollment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete enrollment rows affected: %w", err)
	}
	return affected, nil
}
