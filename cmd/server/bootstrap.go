package main

import (
	"github.com/edupulse/backend/internal/config"
	"github.com/edupulse/backend/internal/handlers"
	"github.com/edupulse/backend/internal/models"
	"github.com/edupulse/backend/internal/services"
	"github.com/edupulse/backend/internal/utils"
	"github.com/edupulse/backend/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	cfg               *config.Config
	commentService    *services.CommentService
	reclassifyService *services.ReclassifyService
	taskQueue         services.TaskQueue
	worker            *services.Worker
	authHandler       *handlers.AuthHandler
	commentHandler    *handlers.CommentHandler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize system logger
	services.InitSystemLogger(models.GetDB())

	// Sentiment pipeline
	classifier := services.NewLLMClassifier(&cfg.Classifier, cfg.Sentiment.RatingWeight)
	resolver := services.NewSentimentResolver(classifier)
	commentService := services.NewCommentService(models.GetDB(), resolver)

	// Task queue (uses Redis if enabled, otherwise sync mode)
	taskQueue := services.InitTaskQueue(cfg)
	reclassifyService := services.NewReclassifyService(models.GetDB(), resolver, &cfg.Sentiment, taskQueue)

	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(reclassifyService.Process)
	}

	// Start async worker if Redis is enabled
	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.InitWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(reclassifyService.Process)
			worker.Start()
		}
	}

	// Periodic sweep over degraded comments
	if err := reclassifyService.StartScheduler(); err != nil {
		logger.Warn().Err(err).Msg("Failed to start reclassify scheduler")
	}

	// Create default admin user
	authHandler := handlers.NewAuthHandler(models.GetDB(), cfg)
	if err := authHandler.CreateAdminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	return &appServices{
		cfg:               cfg,
		commentService:    commentService,
		reclassifyService: reclassifyService,
		taskQueue:         taskQueue,
		worker:            worker,
		authHandler:       authHandler,
		commentHandler:    handlers.NewCommentHandler(commentService, taskQueue),
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.reclassifyService.StopScheduler()
	logger.Info().Msg("All schedulers stopped")

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
}
