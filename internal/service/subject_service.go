package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/amezav/registro-academico-api/internal/models"
	"github.com/amezav/registro-academico-api/internal/repository"
	appErrors "github.com/amezav/registro-academico-api/pkg/errors"
)

type subjectRepository interface {
	List(ctx context.Context) ([]models.SubjectDetail, error)
	FindByID(ctx context.Context, id int64) (*models.Subject, error)
	FindDetailByID(ctx context.Context, id int64) (*models.SubjectDetail, error)
	Create(ctx context.Context, subject *models.Subject) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) (int64, error)
	CountEnrollments(ctx context.Context, id int64) (int, error)
}

type professorLookup interface {
	FindByID(ctx context.Context, id int64) (*models.Professor, error)
}

// CreateSubjectRequest holds the payload for creating subjects.
type CreateSubjectRequest struct {
	Nombre     string `json:"nombre" validate:"required"`
	Creditos   int    `json:"creditos" validate:"required,gt=0"`
	Horas      int    `json:"horas" validate:"required,gt=0"`
	ProfesorID *int64 `json:"profesor_id"`
}

// UpdateSubjectRequest holds a sparse field set. ProfesorID nil leaves the
// owner unchanged; zero clears it; any other value reassigns it.
type UpdateSubjectRequest struct {
	Nombre     *string `json:"nombre"`
	Creditos   *int    `json:"creditos" validate:"omitempty,gt=0"`
	Horas      *int    `json:"horas" validate:"omitempty,gt=0"`
	ProfesorID *int64  `json:"profesor_id"`
}

// SubjectService handles subject use-cases.
type SubjectService struct {
	repo       subjectRepository
	professors professorLookup
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewSubjectService constructs the subject service.
func NewSubjectService(repo subjectRepository, professors professorLookup, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, professors: professors, validator: validate, logger: logger}
}

// List returns all subjects with professor info, ordered by id.
func (s *SubjectService) List(ctx context.Context) ([]models.SubjectDetail, error) {
	subjects, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	return subjects, nil
}

// Create registers a new subject, optionally owned by a professor.
func (s *SubjectService) Create(ctx context.Context, req CreateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing or invalid subject fields")
	}
	if req.ProfesorID != nil {
		if err := s.checkProfessor(ctx, *req.ProfesorID); err != nil {
			return nil, err
		}
	}

	subject := &models.Subject{
		Nombre:     req.Nombre,
		Creditos:   req.Creditos,
		Horas:      req.Horas,
		ProfesorID: req.ProfesorID,
	}
	if err := s.repo.Create(ctx, subject); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}
	return subject, nil
}

// Update applies a sparse field set and returns the updated row joined with
// the professor fields.
func (s *SubjectService) Update(ctx context.Context, id int64, req UpdateSubjectRequest) (*models.SubjectDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject fields")
	}

	fields := map[string]interface{}{}
	if req.Nombre != nil {
		if *req.Nombre == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "nombre cannot be empty")
		}
		fields["nombre"] = *req.Nombre
	}
	if req.Creditos != nil {
		fields["creditos"] = *req.Creditos
	}
	if req.Horas != nil {
		fields["horas"] = *req.Horas
	}
	if req.ProfesorID != nil {
		if *req.ProfesorID == 0 {
			fields["profesor_id"] = nil
		} else {
			if err := s.checkProfessor(ctx, *req.ProfesorID); err != nil {
				return nil, err
			}
			fields["profesor_id"] = *req.ProfesorID
		}
	}
	if len(fields) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no fields to update")
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update subject")
	}

	updated, err := s.repo.FindDetailByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload subject")
	}
	return updated, nil
}

// Delete removes a subject unless enrollments still reference it.
func (s *SubjectService) Delete(ctx context.Context, id int64) (*DeleteAck, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	count, err := s.repo.CountEnrollments(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count enrollments")
	}
	if count > 0 {
		return nil, s.blockedDelete(existing.Nombre, count)
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			count, countErr := s.repo.CountEnrollments(ctx, id)
			if countErr != nil || count == 0 {
				count = 1
			}
			return nil, s.blockedDelete(existing.Nombre, count)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subject")
	}
	if affected == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	return &DeleteAck{OK: true, ID: id}, nil
}

func (s *SubjectService) checkProfessor(ctx context.Context, id int64) error {
	if _, err := s.professors.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "professor not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load professor")
	}
	return nil
}

func (s *SubjectService) blockedDelete(name string, count int) error {
	return appErrors.WithDetails(appErrors.ErrSubjectHasStudents, map[string]interface{}{
		"count":  count,
		"nombre": name,
	})
}
