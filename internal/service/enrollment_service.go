package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/amezav/registro-academico-api/internal/models"
	"github.com/amezav/registro-academico-api/internal/repository"
	appErrors "github.com/amezav/registro-academico-api/pkg/errors"
)

type enrollmentRepository interface {
	ListSubjectsByStudent(ctx context.Context, studentID int64) ([]models.EnrolledSubject, error)
	Exists(ctx context.Context, studentID, subjectID int64) (bool, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, studentID, subjectID int64) (int64, error)
}

type studentLookup interface {
	FindByID(ctx context.Context, id int64) (*models.Student, error)
}

type subjectLookup interface {
	FindByID(ctx context.Context, id int64) (*models.Subject, error)
}

// EnrollmentService manages the student-subject assignments.
type EnrollmentService struct {
	repo     enrollmentRepository
	students studentLookup
	subjects subjectLookup
	logger   *zap.Logger
}

// NewEnrollmentService constructs the enrollment service.
func NewEnrollmentService(repo enrollmentRepository, students studentLookup, subjects subjectLookup, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, students: students, subjects: subjects, logger: logger}
}

// ListForStudent returns the subjects assigned to a student, ordered by
// subject name. An unknown student yields an empty list.
func (s *EnrollmentService) ListForStudent(ctx context.Context, studentID int64) ([]models.EnrolledSubject, error) {
	subjects, err := s.repo.ListSubjectsByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrolled subjects")
	}
	return subjects, nil
}

// Assign links a subject to a student, rejecting duplicates.
func (s *EnrollmentService) Assign(ctx context.Context, studentID, subjectID int64) (*models.Enrollment, error) {
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student or subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if _, err := s.subjects.FindByID(ctx, subjectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student or subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	exists, err := s.repo.Exists(ctx, studentID, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "subject already assigned to this student")
	}

	enrollment := &models.Enrollment{EstudianteID: studentID, MateriaID: subjectID}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		// A racing assignment hits the unique (estudiante, materia) index.
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "subject already assigned to this student")
		}
		if repository.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student or subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create enrollment")
	}
	return enrollment, nil
}

// Unassign removes the enrollment for a (student, subject) pair.
func (s *EnrollmentService) Unassign(ctx context.Context, studentID, subjectID int64) (*DeleteAck, error) {
	affected, err := s.repo.Delete(ctx, studentID, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete enrollment")
	}
	if affected == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}
	return &DeleteAck{OK: true}, nil
}
