package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/amezav/registro-academico-api/internal/models"
)

// ProfessorRepository manages persistence for professors.
type ProfessorRepository struct {
	db *sqlx.DB
}

// NewProfessorRepository constructs a ProfessorRepository.
func NewProfessorRepository(db *sqlx.DB) *ProfessorRepository {
	return &ProfessorRepository{db: db}
}

// List returns all professors ordered by id.
func (r *ProfessorRepository) List(ctx context.Context) ([]models.Professor, error) {
	const query = `SELECT id, nombres, cedula FROM profesores ORDER BY id ASC`
	professors := []models.Professor{}
	if err := r.db.SelectContext(ctx, &professors, query); err != nil {
		return nil, fmt.Errorf("list professors: %w", err)
	}
	return professors, nil
}

// FindByID fetches a professor by ID.
func (r *ProfessorRepository) FindByID(ctx context.Context, id int64) (*models.Professor, error) {
	const query = `SELECT id, nombres, cedula FROM profesores WHERE id = $1`
	var professor models.Professor
	if err := r.db.GetContext(ctx, &professor, query, id); err != nil {
		return nil, err
	}
	return &professor, nil
}

// ExistsByCedula checks cedula uniqueness, optionally excluding an ID.
func (r *ProfessorRepository) ExistsByCedula(ctx context.Context, cedula string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM profesores WHERE cedula = $1"
	args := []interface{}{cedula}
	if excludeID > 0 {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check cedula: %w", err)
	}
	return true, nil
}

// Create inserts a professor and fills in the generated identifier.
func (r *ProfessorRepository) Create(ctx context.Context, professor *models.Professor) error {
	const query = `INSERT INTO profesores (nombres, cedula) VALUES ($1, $2) RETURNING id`
	if err := r.db.GetContext(ctx, &professor.ID, query, professor.Nombres, professor.Cedula); err != nil {
		return fmt.Errorf("create professor: %w", err)
	}
	return nil
}

// UpdateFields applies a sparse set of column changes. Column names come
// from the service-side whitelist, never from request input.
func (r *ProfessorRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
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
	query := fmt.Sprintf("UPDATE profesores SET %s WHERE id = $%d", strings.Join(assignments, ", "), len(args))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update professor: %w", err)
	}
	return nil
}

// Delete removes a professor row, returning the number of rows affected.
func (r *ProfessorRepository) Delete(ctx context.Context, id int64) (int64, error) {
	const query = `DELETE FROM profesores WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete professor: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete professor rows affected: %w", err)
	}
	return affected, nil
}

// CountSubjects returns how many subjects name this professor as owner.
func (r *ProfessorRepository) CountSubjects(ctx context.Context, id int64) (int, error) {
	const query = `SELECT COUNT(*) FROM materias WHERE profesor_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return 0, fmt.Errorf("count professor subjects: %w", err)
	}
	return count, nil
}
