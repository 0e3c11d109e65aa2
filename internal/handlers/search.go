package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/middleware"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/search"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/settings"
)

// SearchService returns ranked results and never fails
type SearchService interface {
	Search(ctx context.Context, query, model string, keys search.Keys) []models.SearchResult
}

type SearchHandler struct {
	search   SearchService
	settings settings.Store
	logger   *zap.Logger
}

func NewSearchHandler(svc SearchService, store settings.Store, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{search: svc, settings: store, logger: logger}
}

type SearchRequest struct {
	Query string `json:"query" binding:"required"`
	Model string `json:"model"`
}

// Search picks a provider from the configured keys and returns its results
// @Summary Search for related projects and docs
// @Tags search
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} middleware.APIError
// @Router /api/v1/search [post]
func (h *SearchHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		middleware.BadRequest(c, "query is required")
		return
	}

	var keys search.Keys
	if cfg, err := h.settings.Get(c.Request.Context()); err == nil {
		keys = search.Keys{
			Groq:   cfg.Keys.Groq(),
			Serper: cfg.Keys.Serper(),
			Tavily: cfg.Keys.Tavily(),
			Google: cfg.Keys.Google(),
		}
	} else {
		h.logger.Warn("settings unavailable, searching without keys", zap.Error(err))
	}

	results := h.search.Search(c.Request.Context(), strings.TrimSpace(req.Query), req.Model, keys)
	c.JSON(http.StatusOK, gin.H{
		"query":   req.Query,
		"results": results,
	})
}
