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

type professorRepository interface {
	List(ctx context.Context) ([]models.Professor, error)
	FindByID(ctx context.Context, id int64) (*models.Professor, error)
	ExistsByCedula(ctx context.Context, cedula string, excludeID int64) (bool, error)
	Create(ctx context.Context, professor *models.Professor) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) (int64, error)
	CountSubjects(ctx context.Context, id int64) (int, error)
}

// CreateProfessorRequest holds the payload for creating professors.
type CreateProfessorRequest struct {
	Nombres string `json:"nombres" validate:"required"`
	Cedula  string `json:"cedula" validate:"required,numeric,min=6,max=12"`
}

// UpdateProfessorRequest holds a sparse field set.
type UpdateProfessorRequest struct {
	Nombres *string `json:"nombres"`
	Cedula  *string `json:"cedula" validate:"omitempty,numeric,min=6,max=12"`
}

// ProfessorService handles professor use-cases.
type ProfessorService struct {
	repo      professorRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProfessorService constructs the professor service.
func NewProfessorService(repo professorRepository, validate *validator.Validate, logger *zap.Logger) *ProfessorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfessorService{repo: repo, validator: validate, logger: logger}
}

// List returns all professors ordered by id.
func (s *ProfessorService) List(ctx context.Context) ([]models.Professor, error) {
	professors, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list professors")
	}
	return professors, nil
}

// Create registers a new professor.
func (s *ProfessorService) Create(ctx context.Context, req CreateProfessorRequest) (*models.Professor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing or invalid professor fields")
	}
	exists, err := s.repo.ExistsByCedula(ctx, req.Cedula, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate cedula")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "a professor with that cedula already exists")
	}

	professor := &models.Professor{Nombres: req.Nombres, Cedula: req.Cedula}
	if err := s.repo.Create(ctx, professor); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "a professor with that cedula already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create professor")
	}
	return professor, nil
}

// Update applies a sparse field set and returns the full updated row.
func (s *ProfessorService) Update(ctx context.Context, id int64, req UpdateProfessorRequest) (*models.Professor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid professor fields")
	}

	fields := map[string]interface{}{}
	if req.Nombres != nil {
		if *req.Nombres == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "nombres cannot be empty")
		}
		fields["nombres"] = *req.Nombres
	}
	if req.Cedula != nil {
		if *req.Cedula == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "cedula cannot be empty")
		}
		fields["cedula"] = *req.Cedula
	}
	if len(fields) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no fields to update")
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load professor")
	}

	if req.Cedula != nil {
		taken, err := s.repo.ExistsByCedula(ctx, *req.Cedula, id)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate cedula")
		}
		if taken {
			return nil, appErrors.Clone(appErrors.ErrConflict, "a professor with that cedula already exists")
		}
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "a professor with that cedula already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update professor")
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload professor")
	}
	return updated, nil
}

// Delete removes a professor unless subjects still name it as owner.
func (s *ProfessorService) Delete(ctx context.Context, id int64) (*DeleteAck, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load professor")
	}

	count, err := s.repo.CountSubjects(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count owned subjects")
	}
	if count > 0 {
		return nil, s.blockedDelete(existing.Nombres, count)
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			count, countErr := s.repo.CountSubjects(ctx, id)
			if countErr != nil || count == 0 {
				count = 1
			}
			return nil, s.blockedDelete(existing.Nombres, count)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete professor")
	}
	if affected == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
	}
	return &DeleteAck{OK: true, ID: id}, nil
}

func (s *ProfessorService) blockedDelete(name string, count int) error {
	return appErrors.WithDetails(appErrors.ErrProfessorHasSubjects, map[string]interface{}{
		"count":  count,
		"nombre": name,
	})
}
