package routes

import (
	"database/sql"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"resumeforge/internal/api/handlers"
	"resumeforge/internal/api/middleware"
	"resumeforge/internal/config"
	"resumeforge/internal/llm"
	"resumeforge/internal/pipeline"
	"resumeforge/internal/promptlog"
	"resumeforge/pkg/utils"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, db *sql.DB, store promptlog.Store, pl *pipeline.Pipeline, llmManager *llm.Manager, redisClient *utils.RedisClient) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig(cfg.Server.AllowedOrigins))
	e.Use(middleware.RequestValidation())

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(db, llmManager, redisClient))
		health.GET("/live", handlers.LivenessHandler)
	}

	// API v1 routes. Model-backed endpoints get a generous timeout; the LLM
	// call dominates the request latency.
	v1 := e.Group("/api/v1", middleware.TimeoutConfig(cfg.LLM.Timeout+30*time.Second))
	{
		resume := v1.Group("/resume")
		{
			resume.POST("/generate", handlers.GenerateResumeHandler(pl))
			resume.POST("/generate-array", handlers.GenerateResumeArrayHandler(pl))
			resume.POST("/section", handlers.UpdateResumeSectionHandler(pl))
			resume.POST("/export", handlers.ExportResumeHandler(cfg))
			resume.GET("/latest", handlers.GetLatestResumeHandler(redisClient))
			resume.GET("/logs/:id", handlers.GetPromptLogHandler(store))
		}
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"service": "ResumeForge",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
