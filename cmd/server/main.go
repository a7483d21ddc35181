package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/gpsbazar/school-records-api/api/swagger"
	"github.com/gpsbazar/school-records-api/internal/handler"
	"github.com/gpsbazar/school-records-api/internal/middleware"
	"github.com/gpsbazar/school-records-api/internal/repository"
	"github.com/gpsbazar/school-records-api/internal/service"
	"github.com/gpsbazar/school-records-api/pkg/cache"
	"github.com/gpsbazar/school-records-api/pkg/config"
	"github.com/gpsbazar/school-records-api/pkg/database"
	"github.com/gpsbazar/school-records-api/pkg/export"
	"github.com/gpsbazar/school-records-api/pkg/insight"
	"github.com/gpsbazar/school-records-api/pkg/logger"
	corsmiddleware "github.com/gpsbazar/school-records-api/pkg/middleware/cors"
	reqidmiddleware "github.com/gpsbazar/school-records-api/pkg/middleware/requestid"
)

// @title School Records API
// @version 1.0.0
// @description Student roster, marks, attendance and transcript service
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, dashboard cache disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	studentRepo := repository.NewStudentRepository(db)
	credentialRepo := repository.NewCredentialRepository(db)
	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}

	metricsSvc := service.NewMetricsService()
	transcriptSvc := service.NewTranscriptService()
	studentSvc := service.NewStudentService(studentRepo, validate, logr)
	importSvc := service.NewImportService(studentRepo, logr)
	attendanceSvc := service.NewAttendanceService(studentRepo, logr)
	dashboardSvc := service.NewDashboardService(studentRepo, cacheRepo, cfg.Dashboard.CacheTTL, logr)
	exportSvc := service.NewExportService(studentRepo, transcriptSvc, export.NewPDFExporter(), service.ExportConfig{
		SchoolName:  cfg.SchoolName,
		SessionYear: cfg.SessionYear,
	}, logr)
	insightSvc := service.NewInsightService(studentRepo, insight.NewClient(cfg.Insight), cfg.SchoolName, logr)
	authSvc := service.NewAuthService(credentialRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
	})

	studentHandler := handler.NewStudentHandler(studentSvc, dashboardSvc)
	importHandler := handler.NewImportHandler(importSvc, metricsSvc, dashboardSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)
	transcriptHandler := handler.NewTranscriptHandler(studentSvc, transcriptSvc)
	insightHandler := handler.NewInsightHandler(insightSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc, insightSvc, cfg.SessionYear)
	authHandler := handler.NewAuthHandler(authSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Scrape)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.GET("/status", authHandler.Status)
	auth.POST("/setup", authHandler.Setup)
	auth.POST("/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.Auth(authSvc))

	protected.GET("/students", studentHandler.List)
	protected.POST("/students", studentHandler.Create)
	protected.GET("/students/export", exportHandler.Roster)
	protected.GET("/students/template", exportHandler.Template)
	protected.POST("/students/import", importHandler.Import)
	protected.GET("/students/:id", studentHandler.Get)
	protected.PUT("/students/:id", studentHandler.Update)
	protected.DELETE("/students/:id", studentHandler.Delete)
	protected.PUT("/students/:id/results/:semester", studentHandler.SaveMarks)
	protected.GET("/students/:id/results/:semester", transcriptHandler.Semester)
	protected.GET("/students/:id/transcript", transcriptHandler.Annual)
	protected.GET("/students/:id/report-card", exportHandler.ReportCard)
	protected.GET("/students/:id/attendance/summary", attendanceHandler.Summary)
	protected.POST("/students/:id/insight", insightHandler.Generate)

	protected.GET("/attendance/:grade/:date", attendanceHandler.Sheet)
	protected.PUT("/attendance/:grade/:date", attendanceHandler.Mark)
	protected.POST("/attendance/:grade/:date/mark-all-present", attendanceHandler.MarkAllPresent)

	protected.GET("/dashboard", dashboardHandler.Stats)
	protected.GET("/dashboard/summary", dashboardHandler.Summary)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
