package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/amezav/registro-academico-api/internal/middleware"
	"github.com/amezav/registro-academico-api/internal/service"
)

// Dependencies carries the handlers and services needed to mount the API.
type Dependencies struct {
	Auth        *AuthHandler
	Students    *StudentHandler
	Professors  *ProfessorHandler
	Subjects    *SubjectHandler
	Enrollments *EnrollmentHandler
	AuthService *service.AuthService
}

// RegisterRoutes mounts the public and protected route groups. The legacy
// frontend addresses students at "/" and "/users/:id", so those paths are
// kept verbatim.
func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	r.POST("/register", deps.Auth.Register)
	r.POST("/login", deps.Auth.Login)

	protected := r.Group("/")
	protected.Use(middleware.JWT(deps.AuthService))
	{
		protected.GET("/", deps.Students.List)
		protected.POST("/", deps.Students.Create)
		protected.PATCH("/users/:id", deps.Students.Update)
		protected.DELETE("/users/:id", deps.Students.Delete)

		protected.GET("/estudiantes", deps.Students.Roster)
		protected.GET("/estudiantes/export", deps.Students.Export)
		protected.GET("/estudiantes/:id/materias", deps.Enrollments.List)
		protected.POST("/estudiantes/:id/materias", deps.Enrollments.Assign)
		protected.DELETE("/estudiantes/:id/materias/:materia_id", deps.Enrollments.Unassign)

		protected.GET("/profesores", deps.Professors.List)
		protected.POST("/profesores", deps.Professors.Create)
		protected.PATCH("/profesores/:id", deps.Professors.Update)
		protected.DELETE("/profesores/:id", deps.Professors.Delete)

		protected.GET("/materias", deps.Subjects.List)
		protected.POST("/materias", deps.Subjects.Create)
		protected.PATCH("/materias/:id", deps.Subjects.Update)
		protected.DELETE("/materias/:id", deps.Subjects.Delete)
	}
}
