package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/investbuddy/circles-api/internal/api/handler"
	"github.com/investbuddy/circles-api/internal/api/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	userIDHeader string,
	profileHandler *handler.ProfileHandler,
	goalHandler *handler.GoalHandler,
	demoHandler *handler.DemoHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Identity(userIDHeader))

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Profile operations
		profiles := v1.Group("/profiles")
		{
			profiles.GET("", profileHandler.List)
			profiles.GET("/:id", profileHandler.GetByID)
			profiles.GET("/:id/transactions", profileHandler.GetTransactions)
		}

		// Goal operations
		goals := v1.Group("/goals")
		{
			goals.POST("", goalHandler.Create)
			goals.GET("", goalHandler.List)
			goals.GET("/:id", goalHandler.GetByID)
			goals.POST("/:id/contribute", goalHandler.Contribute)
		}

		// Demo scene triggers
		v1.POST("/demo/scenario", demoHandler.TriggerScenario)
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
