package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/llm"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/middleware"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/settings"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/suggest"
)

// Suggester proposes healthcare requirements from a description
type Suggester interface {
	Suggest(ctx context.Context, description, apiKey string) (*suggest.Suggestion, error)
}

type SuggestionHandler struct {
	assistant Suggester
	settings  settings.Store
	logger    *zap.Logger
}

func NewSuggestionHandler(assistant Suggester, store settings.Store, logger *zap.Logger) *SuggestionHandler {
	return &SuggestionHandler{assistant: assistant, settings: store, logger: logger}
}

type SuggestionRequest struct {
	Description string `json:"description" binding:"required"`
}

// Healthcare asks the assistant for hospital system suggestions
// @Summary Suggest hospital system requirements
// @Tags suggestions
// @Accept json
// @Produce json
// @Success 200 {object} suggest.Suggestion
// @Failure 400 {object} middleware.APIError
// @Failure 502 {object} middleware.APIError
// @Router /api/v1/suggestions/healthcare [post]
func (h *SuggestionHandler) Healthcare(c *gin.Context) {
	var req SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Description) == "" {
		middleware.BadRequest(c, "Please enter a description first")
		return
	}

	cfg, err := h.settings.Get(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to read settings", zap.Error(err))
		middleware.StorageError(c, "Failed to read settings")
		return
	}

	suggestion, err := h.assistant.Suggest(c.Request.Context(), req.Description, cfg.Keys.Groq())
	switch {
	case err == nil:
		c.JSON(http.StatusOK, suggestion)
	case errors.Is(err, llm.ErrMissingAPIKey):
		middleware.BadRequest(c, "Groq API key not configured. Please add it in Settings.")
	case errors.Is(err, llm.ErrUnauthorized):
		middleware.BadGateway(c, "Invalid Groq API key", err.Error())
	case errors.Is(err, llm.ErrRateLimited):
		middleware.RespondErrorWithRetry(c, http.StatusTooManyRequests, middleware.ErrCodeRateLimited, "Groq rate limit exceeded", 60000)
	default:
		h.logger.Warn("suggestion request failed", zap.Error(err))
		middleware.BadGateway(c, "Failed to get AI suggestions", err.Error())
	}
}
