package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/studentres/resources-api/api/swagger"
	"github.com/studentres/resources-api/internal/client"
	"github.com/studentres/resources-api/internal/handler"
	"github.com/studentres/resources-api/internal/middleware"
	"github.com/studentres/resources-api/internal/repository"
	"github.com/studentres/resources-api/internal/service"
	"github.com/studentres/resources-api/internal/store"
	"github.com/studentres/resources-api/pkg/cache"
	"github.com/studentres/resources-api/pkg/config"
	"github.com/studentres/resources-api/pkg/database"
	"github.com/studentres/resources-api/pkg/export"
	"github.com/studentres/resources-api/pkg/logger"
	corsmiddleware "github.com/studentres/resources-api/pkg/middleware/cors"
	reqidmiddleware "github.com/studentres/resources-api/pkg/middleware/requestid"
)

// @title Student Resources API
// @version 1.0.0
// @description Academic resource sharing, moderation and study tools
// @BasePath /api/v1
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
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	docs := store.NewPostgresStore(db, metricsSvc, cfg.Timeouts.Store)
	schemaCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := docs.EnsureSchema(schemaCtx); err != nil {
		logr.Sugar().Fatalw("failed to ensure schema", "error", err)
	}

	contentRepo := repository.NewContentRepository(docs, metricsSvc, logr)
	profileRepo := repository.NewProfileRepository(docs)
	plannerRepo := repository.NewPlannerRepository(redisClient)

	assetHost := client.NewAssetHost(cfg.AssetHost, cfg.Timeouts.HTTPClient, logr)
	questionGen := client.NewQuestionGen(cfg.QuestionGen, cfg.Timeouts.HTTPClient, logr)

	authSvc := service.NewAuthService(cfg.JWT)
	profileSvc := service.NewProfileService(profileRepo, nil, logr)
	contentSvc := service.NewContentService(contentRepo, profileSvc, nil, metricsSvc, logr)
	moderationSvc := service.NewModerationService(contentRepo, assetHost, metricsSvc, logr)
	quizSvc := service.NewQuizService(questionGen, export.NewPDFExporter(), nil, logr)
	plannerSvc := service.NewPlannerService(plannerRepo, nil, logr)

	contentHandler := handler.NewContentHandler(contentSvc)
	moderationHandler := handler.NewModerationHandler(moderationSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	quizHandler := handler.NewQuizHandler(quizSvc)
	plannerHandler := handler.NewPlannerHandler(plannerSvc)
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

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	content := api.Group("/content")
	content.Use(middleware.OptionalJWT(authSvc))
	{
		content.GET("/:kind", contentHandler.List)
	}
	contentAuthed := api.Group("/content")
	contentAuthed.Use(middleware.JWT(authSvc))
	{
		contentAuthed.POST("/:kind/submissions", contentHandler.Submit)
	}

	moderation := api.Group("/moderation")
	moderation.Use(middleware.JWT(authSvc), middleware.RequireAdmin(profileSvc))
	{
		moderation.GET("/:kind/submissions", moderationHandler.ListPending)
		moderation.POST("/:kind/submissions/:id/approve", moderationHandler.Approve)
		moderation.POST("/:kind/submissions/:id/reject", moderationHandler.Reject)
		moderation.POST("/:kind/submissions/:id/repair", moderationHandler.Repair)
	}

	profile := api.Group("/profile")
	profile.Use(middleware.JWT(authSvc))
	{
		profile.GET("", profileHandler.Get)
		profile.PUT("", profileHandler.Update)
		profile.POST("/semester/advance", profileHandler.AdvanceSemester)
		profile.GET("/admin-request", profileHandler.AdminRequestStatus)
		profile.POST("/admin-request", profileHandler.RequestAdmin)
	}

	quiz := api.Group("/quiz")
	quiz.Use(middleware.JWT(authSvc))
	{
		quiz.POST("/generate", quizHandler.GenerateQuiz)
		quiz.POST("/paper", quizHandler.GeneratePaper)
		quiz.POST("/paper/export", quizHandler.ExportPaper)
	}

	planner := api.Group("/planner")
	planner.Use(middleware.JWT(authSvc))
	{
		planner.GET("/notes", plannerHandler.ListNotes)
		planner.POST("/notes", plannerHandler.CreateNote)
		planner.PUT("/notes/:id", plannerHandler.UpdateNote)
		planner.DELETE("/notes/:id", plannerHandler.DeleteNote)
		planner.GET("/todos", plannerHandler.ListTodos)
		planner.POST("/todos", plannerHandler.CreateTodo)
		planner.PUT("/todos/:id", plannerHandler.UpdateTodo)
		planner.DELETE("/todos/:id", plannerHandler.DeleteTodo)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
