package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/bundle"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/middleware"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/pipeline"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/session"
)

// Recommender runs the recommendation pipeline
type Recommender interface {
	Generate(ctx context.Context, req models.ProjectRequirements, opts pipeline.Options) (*models.RecommendationResult, error)
}

// RecommendationHandler exposes the pipeline over HTTP
type RecommendationHandler struct {
	recommender Recommender
	sessions    session.Store
	bundles     *bundle.Service
	logger      *zap.Logger
}

func NewRecommendationHandler(recommender Recommender, sessions session.Store, bundles *bundle.Service, logger *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recommender: recommender,
		sessions:    sessions,
		bundles:     bundles,
		logger:      logger,
	}
}

// Generate runs the pipeline on requirements in the request body
// @Summary Generate a recommendation
// @Tags recommendations
// @Accept json
// @Produce json
// @Param model query string false "search model"
// @Param requirements body models.ProjectRequirements true "project requirements"
// @Success 200 {object} models.RecommendationResult
// @Failure 422 {object} middleware.APIError
// @Failure 500 {object} middleware.APIError
// @Router /api/v1/recommendations [post]
func (h *RecommendationHandler) Generate(c *gin.Context) {
	req, ok := bindRequirements(c)
	if !ok {
		return
	}
	if result, ok := h.run(c, req, pipeline.Options{SearchModel: c.Query("model")}); ok {
		c.JSON(http.StatusOK, result)
	}
}

// GenerateForSession runs the pipeline on stored requirements
// @Summary Generate a recommendation for stored requirements
// @Tags recommendations
// @Produce json
// @Param sessionId path string true "session id"
// @Param model query string false "search model"
// @Success 200 {object} models.RecommendationResult
// @Failure 404 {object} middleware.APIError
// @Router /api/v1/sessions/{sessionId}/recommendation [post]
func (h *RecommendationHandler) GenerateForSession(c *gin.Context) {
	req, ok := loadSession(c, h.sessions, h.logger)
	if !ok {
		return
	}
	opts := pipeline.Options{SessionID: c.Param("sessionId"), SearchModel: c.Query("model")}
	if result, ok := h.run(c, req, opts); ok {
		c.JSON(http.StatusOK, result)
	}
}

// Export runs the pipeline on stored requirements and returns a signed bundle
// @Summary Export a signed recommendation bundle
// @Tags recommendations
// @Produce json
// @Param sessionId path string true "session id"
// @Success 200 {object} bundle.Bundle
// @Failure 404 {object} middleware.APIError
// @Router /api/v1/sessions/{sessionId}/export [post]
func (h *RecommendationHandler) Export(c *gin.Context) {
	req, ok := loadSession(c, h.sessions, h.logger)
	if !ok {
		return
	}
	result, ok := h.run(c, req, pipeline.Options{SessionID: c.Param("sessionId"), SearchModel: c.Query("model")})
	if !ok {
		return
	}

	b, err := h.bundles.Build(req, *result)
	if err != nil {
		h.logger.Error("failed to build bundle", zap.Error(err))
		middleware.InternalError(c, "Failed to build export bundle")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="designpanda-`+b.ID.String()+`.json"`)
	c.JSON(http.StatusOK, b)
}

func (h *RecommendationHandler) run(c *gin.Context, req models.ProjectRequirements, opts pipeline.Options) (*models.RecommendationResult, bool) {
	result, err := h.recommender.Generate(c.Request.Context(), req, opts)
	if err != nil {
		h.logger.Error("recommendation failed",
			zap.String("session_id", opts.SessionID),
			zap.Error(err),
		)
		middleware.RecommendationFailed(c, int(pipeline.RetryAfter(err).Milliseconds()))
		return nil, false
	}
	return result, true
}
