package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/amezav/registro-academico-api/internal/models"
)

// SubjectRepository manages persistence for subjects.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository constructs a SubjectRepository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// List returns all subjects ordered by id with the owning professor joined.
func (r *SubjectRepository) List(ctx context.Context) ([]models.SubjectDetail, error) {
	const query = `SELECT m.id, m.nombre, m.creditos, m.horas, m.profesor_id, p.nombres AS profesor_nombre, p.cedula AS profesor_cedula
        FROM materias m
        LEFT JOIN profesores p ON m.profesor_id = p.id
        ORDER BY m.id ASC`
	subjects := []models.SubjectDetail{}
	if err := r.db.SelectContext(ctx, &subjects, query); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// FindByID fetches a subject by ID.
func (r *SubjectRepository) FindByID(ctx context.Context, id int64) (*models.Subject, error) {
	const query = `SELECT id, nombre, creditos, horas, profesor_id FROM materias WHERE id = $1`
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		return nil, err
	}
	return &subject, nil
}

// FindDetailByID fetches a subject with the professor fields resolved.
func (r *SubjectRepository) FindDetailByID(ctx context.Context, id int64) (*models.SubjectDetail, error) {
	const query = `SELECT m.id, m.nombre, m.creditos, m.horas, m.profesor_id, p.nombres AS profesor_nombre, p.cedula AS profesor_cedula
        FROM materias m
        LEFT JOIN profesores p ON m.profesor_id = p.id
        WHERE m.id = $1`
	var detail models.SubjectDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Create inserts a subject and fills in the generated identifier.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	const query = `INSERT INTO materias (nombre, creditos, horas, profesor_id) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.GetContext(ctx, &subject.ID, query, subject.Nombre, subject.Creditos, subject.Horas, subject.ProfesorID); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	return nil
}

// UpdateFields applies a sparse set of column changes. Column names come
// from the service-side whitelist, never from request input.
func (r *SubjectRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
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
	query := fmt.Sprintf("UPDATE materias SET %s WHERE id = $%d", strings.Join(assignments, ", "), len(args))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update subject: %w", err)
	}
	return nil
}

// Delete removes a subject row, returning the number of rows affected.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) (int64, error) {
	const query = `DELETE FROM materias WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete subject: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete subject rows affected: %w", err)
	}
	return affected, nil
}

// CountEnrollments returns how many students reference the subject.
func (r *SubjectRepository) CountEnrollments(ctx context.Context, id int64) (int, error) {
	const query = `SELECT COUNT(*) FROM estudiante_materia WHERE materia_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return 0, fmt.Errorf("count subject enrollments: %w", err)
	}
	return count, nil
}
