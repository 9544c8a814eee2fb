package handlers

import (
	"github.com/edupulse/backend/internal/models"
	"github.com/edupulse/backend/internal/services"
	"github.com/gin-gonic/gin"
)

// HealthHandler provides health check endpoints.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// CheckHealth returns the health status of all subsystems.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	// Database check
	dbStatus := "ok"
	sqlDB, err := models.GetDB().DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	// Queue mode
	taskQueue := services.GetTaskQueue()
	queueMode := "sync"
	if taskQueue != nil && taskQueue.IsAsync() {
		queueMode = "async (Redis)"
	}

	// Comments waiting for another classification attempt
	var degradedCount int64
	models.GetDB().Model(&models.Comment{}).
		Where("sentiment = ?", models.SentimentNotAnalyzed).
		Count(&degradedCount)

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "edupulse",
		"components": gin.H{
			"database":          dbStatus,
			"queue_mode":        queueMode,
			"degraded_comments": degradedCount,
		},
	})
}
