package main

import (
	"github.com/edupulse/backend/internal/handlers"
	"github.com/edupulse/backend/internal/middleware"
	"github.com/edupulse/backend/internal/models"
	"github.com/edupulse/backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for comment ingestion
	ingestLimiter := middleware.NewRateLimiter(10, 20)

	// Health check
	healthHandler := handlers.NewHealthHandler()
	r.GET("/health", healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", svc.authHandler.Login)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)
			protected.POST("/auth/change-password", svc.authHandler.ChangePassword)

			// Dashboard (all users)
			dashboardHandler := handlers.NewDashboardHandler(models.GetDB())
			protected.GET("/dashboard/stats", dashboardHandler.GetStats)

			// Teachers (read for all users, for selection lists)
			userHandler := handlers.NewUserHandler(models.GetDB())
			protected.GET("/users/teachers", userHandler.ListTeachers)

			// Subjects (read for all users)
			subjectHandler := handlers.NewSubjectHandler(models.GetDB())
			protected.GET("/subjects", subjectHandler.List)
			protected.GET("/subjects/:id", subjectHandler.GetByID)

			// Evaluation periods (read for all users)
			evaluationHandler := handlers.NewEvaluationHandler(models.GetDB())
			protected.GET("/evaluations", evaluationHandler.List)
			protected.GET("/evaluations/active", evaluationHandler.GetActive)
			protected.GET("/evaluations/:id", evaluationHandler.GetByID)

			// Comments
			protected.GET("/comments", svc.commentHandler.List)
			protected.GET("/comments/:id", svc.commentHandler.GetByID)
			protected.POST("/comments", ingestLimiter.Middleware(), svc.commentHandler.Create)
		}

		// Admin only routes
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired(), middleware.AuditLog())
		{
			// Users
			userHandler := handlers.NewUserHandler(models.GetDB())
			admin.GET("/users", userHandler.List)
			admin.GET("/users/:id", userHandler.GetByID)
			admin.POST("/users", userHandler.Create)
			admin.PUT("/users/:id", userHandler.Update)
			admin.DELETE("/users/:id", userHandler.Delete)

			// Subjects (write operations)
			subjectHandler := handlers.NewSubjectHandler(models.GetDB())
			admin.POST("/subjects", subjectHandler.Create)
			admin.PUT("/subjects/:id", subjectHandler.Update)
			admin.DELETE("/subjects/:id", subjectHandler.Delete)

			// Evaluation periods (write operations)
			evaluationHandler := handlers.NewEvaluationHandler(models.GetDB())
			admin.POST("/evaluations", evaluationHandler.Create)
			admin.PUT("/evaluations/:id", evaluationHandler.Update)
			admin.DELETE("/evaluations/:id", evaluationHandler.Delete)

			// Comments (moderation)
			admin.POST("/comments/:id/reclassify", svc.commentHandler.Reclassify)
			admin.DELETE("/comments/:id", svc.commentHandler.Delete)

			// System Logs
			systemLogHandler := handlers.NewSystemLogHandler(models.GetDB())
			admin.GET("/system-logs", systemLogHandler.List)
			admin.GET("/system-logs/modules", systemLogHandler.GetModules)
			admin.DELETE("/system-logs/cleanup", systemLogHandler.Cleanup)
		}
	}
}
