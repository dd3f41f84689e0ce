package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amezav/registro-academico-api/internal/service"
	appErrors "github.com/amezav/registro-academico-api/pkg/errors"
	"github.com/amezav/registro-academico-api/pkg/response"
)

// EnrollmentHandler exposes the student-subject assignment endpoints.
type EnrollmentHandler struct {
	enrollments *service.EnrollmentService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// List godoc
// @Summary List a student's enrolled subjects
// @Tags Enrollments
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /estudiantes/{id}/materias [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	studentID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	subjects, err := h.enrollments.ListForStudent(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects)
}

// Assign godoc
// @Summary Assign a subject to a student
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body handler.AssignSubjectRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /estudiantes/{id}/materias [post]
func (h *EnrollmentHandler) Assign(c *gin.Context) {
	studentID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req AssignSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "materia_id is required"))
		return
	}
	enrollment, err := h.enrollments.Assign(c.Request.Context(), studentID, req.MateriaID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enrollment)
}

// Unassign godoc
// @Summary Unassign a subject from a student
// @Tags Enrollments
// @Produce json
// @Param id path int true "Student ID"
// @Param materia_id path int true "Subject ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /estudiantes/{id}/materias/{materia_id} [delete]
func (h *EnrollmentHandler) Unassign(c *gin.Context) {
	studentID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	subjectID, err := pathID(c, "materia_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	ack, err := h.enrollments.Unassign(c.Request.Context(), studentID, subjectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ack)
}

// AssignSubjectRequest is the assignment payload.
type AssignSubjectRequest struct {
	MateriaID int64 `json:"materia_id" binding:"required,gt=0"`
}
