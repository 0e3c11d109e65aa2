package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/eventbus"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/middleware"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/runlog"
)

// RunStats summarizes recorded runs
type RunStats interface {
	Stats(ctx context.Context, since time.Time) (*runlog.Stats, error)
}

// EventReader returns recently published recommendation events
type EventReader interface {
	Recent(limit int) ([]eventbus.Event, error)
}

// RunsHandler reports on past pipeline runs. Both sources are optional.
type RunsHandler struct {
	stats  RunStats
	events EventReader
	logger *zap.Logger
}

func NewRunsHandler(stats RunStats, events EventReader, logger *zap.Logger) *RunsHandler {
	return &RunsHandler{stats: stats, events: events, logger: logger}
}

// Stats aggregates runs over the trailing window, 24h by default
// @Summary Aggregate run statistics
// @Tags runs
// @Produce json
// @Param window query string false "trailing window, e.g. 24h"
// @Success 200 {object} map[string]interface{}
// @Failure 501 {object} middleware.APIError
// @Router /api/v1/runs/stats [get]
func (h *RunsHandler) Stats(c *gin.Context) {
	if h.stats == nil {
		middleware.RespondError(c, http.StatusNotImplemented, middleware.ErrCodeStorageError, "Run log is not configured")
		return
	}

	window := 24 * time.Hour
	if raw := c.Query("window"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			middleware.BadRequest(c, "window must be a positive duration such as 1h")
			return
		}
		window = d
	}

	stats, err := h.stats.Stats(c.Request.Context(), time.Now().Add(-window))
	if err != nil {
		h.logger.Error("failed to read run stats", zap.Error(err))
		middleware.StorageError(c, "Failed to read run stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"window": window.String(),
		"stats":  stats,
	})
}

// Events lists recent recommendation events from the stream
// @Summary Most recent recommendation events, newest first
// @Tags runs
// @Produce json
// @Param limit query int false "maximum events"
// @Success 200 {object} map[string]interface{}
// @Failure 501 {object} middleware.APIError
// @Router /api/v1/events/recommendations [get]
func (h *RunsHandler) Events(c *gin.Context) {
	if h.events == nil {
		middleware.RespondError(c, http.StatusNotImplemented, middleware.ErrCodeStorageError, "Event stream is not configured")
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 500 {
			middleware.BadRequest(c, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	events, err := h.events.Recent(limit)
	if err != nil {
		h.logger.Error("failed to read events", zap.Error(err))
		middleware.StorageError(c, "Failed to read events")
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}
