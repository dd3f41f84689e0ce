package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/amezav/registro-academico-api/api/swagger"
	"github.com/amezav/registro-academico-api/internal/handler"
	"github.com/amezav/registro-academico-api/internal/middleware"
	"github.com/amezav/registro-academico-api/internal/repository"
	"github.com/amezav/registro-academico-api/internal/service"
	"github.com/amezav/registro-academico-api/pkg/cache"
	"github.com/amezav/registro-academico-api/pkg/config"
	"github.com/amezav/registro-academico-api/pkg/database"
	"github.com/amezav/registro-academico-api/pkg/logger"
	corsmiddleware "github.com/amezav/registro-academico-api/pkg/middleware/cors"
	reqidmiddleware "github.com/amezav/registro-academico-api/pkg/middleware/requestid"
)

// @title Registro Academico API
// @version 1.0.0
// @description Administration API for students, professors, subjects and enrollments
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsService := service.NewMetricsService()

	var rosterCache *service.RosterCache
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, roster cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			rosterCache = service.NewRosterCache(redisClient, metricsService, logr, cfg.Cache.RosterTTL)
		}
	}

	validate := validator.New()

	studentRepo := repository.NewStudentRepository(db)
	professorRepo := repository.NewProfessorRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	credentialRepo := repository.NewCredentialRepository(db)

	studentService := service.NewStudentService(studentRepo, rosterCache, validate, logr)
	professorService := service.NewProfessorService(professorRepo, validate, logr)
	subjectService := service.NewSubjectService(subjectRepo, professorRepo, validate, logr)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, studentRepo, subjectRepo, logr)
	authService := service.NewAuthService(credentialRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsService.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, handler.Dependencies{
		Auth:        handler.NewAuthHandler(authService),
		Students:    handler.NewStudentHandler(studentService),
		Professors:  handler.NewProfessorHandler(professorService),
		Subjects:    handler.NewSubjectHandler(subjectService),
		Enrollments: handler.NewEnrollmentHandler(enrollmentService),
		AuthService: authService,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
