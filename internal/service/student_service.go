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
	"github.com/amezav/registro-academico-api/pkg/export"
)

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	Roster(ctx context.Context) ([]models.RosterEntry, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	ExistsByEmailOrMatricula(ctx context.Context, email, matricula string, excludeID int64) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) (int64, error)
	CountEnrollments(ctx context.Context, id int64) (int, error)
}

// CreateStudentRequest holds the payload for registering a student.
type CreateStudentRequest struct {
	NombreCompleto  string   `json:"nombre_completo" validate:"required"`
	FechaNacimiento string   `json:"fecha_nacimiento" validate:"required,datetime=2006-01-02"`
	Email           string   `json:"email" validate:"required,email"`
	Telefono        string   `json:"telefono"`
	Matricula       string   `json:"matricula" validate:"required"`
	Carrera         string   `json:"carrera" validate:"required"`
	AnioSemestre    string   `json:"anio_semestre" validate:"required"`
	Promedio        *float64 `json:"promedio" validate:"omitempty,gte=0,lte=20"`
	Estado          string   `json:"estado" validate:"omitempty,oneof=activo egresado suspendido"`
	FechaIngreso    string   `json:"fecha_ingreso" validate:"required,datetime=2006-01-02"`
	FechaEgreso     string   `json:"fecha_egreso" validate:"omitempty,datetime=2006-01-02"`
	Direccion       string   `json:"direccion"`
}

// UpdateStudentRequest holds a sparse field set; nil means "unchanged" and,
// on nullable columns, an empty string means "clear to NULL".
type UpdateStudentRequest struct {
	NombreCompleto  *string  `json:"nombre_completo"`
	FechaNacimiento *string  `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
	Email           *string  `json:"email" validate:"omitempty,email"`
	Telefono        *string  `json:"telefono"`
	Matricula       *string  `json:"matricula"`
	Carrera         *string  `json:"carrera"`
	AnioSemestre    *string  `json:"anio_semestre"`
	Promedio        *float64 `json:"promedio" validate:"omitempty,gte=0,lte=20"`
	Estado          *string  `json:"estado" validate:"omitempty,oneof=activo egresado suspendido"`
	FechaIngreso    *string  `json:"fecha_ingreso" validate:"omitempty,datetime=2006-01-02"`
	FechaEgreso     *string  `json:"fecha_egreso" validate:"omitempty,datetime=2006-01-02"`
	Direccion       *string  `json:"direccion"`
}

// DeleteAck acknowledges a successful delete.
type DeleteAck struct {
	OK bool  `json:"ok"`
	ID int64 `json:"id,omitempty"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	cache     *RosterCache
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service. cache may be nil when
// the roster cache is disabled.
func NewStudentService(repo studentRepository, cache *RosterCache, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{
		repo:      repo,
		cache:     cache,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		validator: validate,
		logger:    logger,
	}
}

// List returns all students ordered by id.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return students, nil
}

// Roster returns the reduced listing, served from cache when warm.
func (s *StudentService) Roster(ctx context.Context) ([]models.RosterEntry, error) {
	if s.cache != nil {
		if entries, ok := s.cache.Get(ctx); ok {
			return entries, nil
		}
	}
	entries, err := s.repo.Roster(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list roster")
	}
	if s.cache != nil {
		s.cache.Set(ctx, entries)
	}
	return entries, nil
}

// Create registers a new student.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing or invalid student fields")
	}
	exists, err := s.repo.ExistsByEmailOrMatricula(ctx, req.Email, req.Matricula, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate student uniqueness")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "a student with that email or matricula already exists")
	}

	estado := req.Estado
	if estado == "" {
		estado = models.StudentStatusActive
	}
	student := &models.Student{
		NombreCompleto:  req.NombreCompleto,
		FechaNacimiento: req.FechaNacimiento,
		Email:           req.Email,
		Telefono:        optionalString(req.Telefono),
		Matricula:       req.Matricula,
		Carrera:         req.Carrera,
		AnioSemestre:    req.AnioSemestre,
		Promedio:        req.Promedio,
		Estado:          estado,
		FechaIngreso:    req.FechaIngreso,
		FechaEgreso:     optionalString(req.FechaEgreso),
		Direccion:       optionalString(req.Direccion),
	}
	if err := s.repo.Create(ctx, student); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "a student with that email or matricula already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	s.invalidateRoster(ctx)
	return student, nil
}

// Update applies a sparse field set and returns the full updated row.
func (s *StudentService) Update(ctx context.Context, id int64, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student fields")
	}

	fields, err := studentChanges(req)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no fields to update")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	if req.Email != nil || req.Matricula != nil {
		email := existing.Email
		if req.Email != nil {
			email = *req.Email
		}
		matricula := existing.Matricula
		if req.Matricula != nil {
			matricula = *req.Matricula
		}
		taken, err := s.repo.ExistsByEmailOrMatricula(ctx, email, matricula, id)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate student uniqueness")
		}
		if taken {
			return nil, appErrors.Clone(appErrors.ErrConflict, "a student with that email or matricula already exists")
		}
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "a student with that email or matricula already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload student")
	}
	s.invalidateRoster(ctx)
	return updated, nil
}

// Delete removes a student unless enrollments still reference it.
func (s *StudentService) Delete(ctx context.Context, id int64) (*DeleteAck, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	count, err := s.repo.CountEnrollments(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count enrollments")
	}
	if count > 0 {
		return nil, s.blockedDelete(existing.NombreCompleto, count)
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		// An enrollment created between the check and the delete trips the
		// FK restriction; answer with the same structured conflict.
		if repository.IsForeignKeyViolation(err) {
			count, countErr := s.repo.CountEnrollments(ctx, id)
			if countErr != nil || count == 0 {
				count = 1
			}
			return nil, s.blockedDelete(existing.NombreCompleto, count)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	if affected == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	s.invalidateRoster(ctx)
	return &DeleteAck{OK: true, ID: id}, nil
}

// ExportRoster renders the roster as CSV or PDF.
func (s *StudentService) ExportRoster(ctx context.Context, format string) ([]byte, string, error) {
	entries, err := s.Roster(ctx)
	if err != nil {
		return nil, "", err
	}
	dataset := rosterDataset(entries)
	switch format {
	case "csv", "":
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return payload, "text/csv", nil
	case "pdf":
		payload, err := s.pdf.Render(dataset, "Listado de estudiantes")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

func (s *StudentService) blockedDelete(name string, count int) error {
	return appErrors.WithDetails(appErrors.ErrStudentHasSubjects, map[string]interface{}{
		"count":  count,
		"nombre": name,
	})
}

func (s *StudentService) invalidateRoster(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("failed to invalidate roster cache", zap.Error(err))
	}
}

func studentChanges(req UpdateStudentRequest) (map[string]interface{}, error) {
	fields := map[string]interface{}{}

	// Required columns reject an explicit empty value.
	required := map[string]*string{
		"nombre_completo":  req.NombreCompleto,
		"fecha_nacimiento": req.FechaNacimiento,
		"email":            req.Email,
		"matricula":        req.Matricula,
		"carrera":          req.Carrera,
		"anio_semestre":    req.AnioSemestre,
		"estado":           req.Estado,
		"fecha_ingreso":    req.FechaIngreso,
	}
	for column, value := range required {
		if value == nil {
			continue
		}
		if *value == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, column+" cannot be empty")
		}
		fields[column] = *value
	}

	// Nullable columns treat an empty string as an explicit clear.
	nullable := map[string]*string{
		"telefono":     req.Telefono,
		"fecha_egreso": req.FechaEgreso,
		"direccion":    req.Direccion,
	}
	for column, value := range nullable {
		if value == nil {
			continue
		}
		fields[column] = optionalString(*value)
	}

	if req.Promedio != nil {
		fields["promedio"] = *req.Promedio
	}
	return fields, nil
}

func rosterDataset(entries []models.RosterEntry) export.Dataset {
	headers := []string{"ID", "Nombre", "Matricula", "Email"}
	rows := make([]map[string]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, map[string]string{
			"ID":        formatID(entry.ID),
			"Nombre":    entry.NombreCompleto,
			"Matricula": entry.Matricula,
			"Email":     entry.Email,
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
