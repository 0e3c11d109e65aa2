package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/middleware"
)

// Handlers groups everything RegisterRoutes mounts
type Handlers struct {
	Health          *HealthHandler
	Requirements    *RequirementsHandler
	Recommendations *RecommendationHandler
	Search          *SearchHandler
	Suggestions     *SuggestionHandler
	Settings        *SettingsHandler
	Runs            *RunsHandler
}

// RegisterRoutes mounts the health checks and the /api/v1 group. Pipeline and
// LLM routes share the stricter limiter; settings routes require adminAuth.
func RegisterRoutes(router *gin.Engine, h Handlers, defaultLimiter, strictLimiter *middleware.RateLimiter, adminAuth gin.HandlerFunc) {
	router.GET("/health", h.Health.Health)
	router.GET("/health/deep", middleware.RateLimitMiddleware(defaultLimiter), h.Health.DeepHealth)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RateLimitMiddleware(defaultLimiter))
	{
		v1.POST("/requirements", h.Requirements.Create)
		v1.GET("/requirements/:sessionId", h.Requirements.Get)

		expensive := v1.Group("")
		expensive.Use(middleware.RateLimitMiddleware(strictLimiter))
		{
			expensive.POST("/recommendations", h.Recommendations.Generate)
			expensive.POST("/sessions/:sessionId/recommendation", h.Recommendations.GenerateForSession)
			expensive.POST("/sessions/:sessionId/export", h.Recommendations.Export)
			expensive.POST("/search", h.Search.Search)
			expensive.POST("/suggestions/healthcare", h.Suggestions.Healthcare)
		}

		cfg := v1.Group("/settings")
		cfg.Use(adminAuth)
		{
			cfg.GET("/backend", h.Settings.GetBackend)
			cfg.PUT("/backend", h.Settings.UpdateBackend)
			cfg.POST("/backend/test", h.Settings.TestBackend)
			cfg.GET("/api-keys", h.Settings.GetAPIKeys)
			cfg.PUT("/api-keys", h.Settings.UpdateAPIKeys)
		}

		v1.GET("/runs/stats", h.Runs.Stats)
		v1.GET("/events/recommendations", h.Runs.Events)
	}
}
