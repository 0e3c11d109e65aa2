package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/settings"
)

const (
	serviceName    = "designpanda-api"
	serviceVersion = "0.1.0"
)

// Pinger is a dependency that can report liveness
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db       Pinger
	redis    Pinger
	settings settings.Store
	client   *http.Client
}

// NewHealthHandler creates a new health handler. db and redis may be nil.
func NewHealthHandler(db, redis Pinger, store settings.Store) *HealthHandler {
	return &HealthHandler{
		db:       db,
		redis:    redis,
		settings: store,
		client:   &http.Client{Timeout: 3 * time.Second},
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string            `json:"status"`
	Service      string            `json:"service"`
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies"`
}

// Health returns basic health status
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// DeepHealth returns health status with dependency checks. An unreachable AI
// backend only degrades the report, since recommendations fall back locally.
// @Summary Dependency health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health/deep [get]
func (h *HealthHandler) DeepHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	deps := make(map[string]string)
	allHealthy := true

	check := func(name string, p Pinger) {
		if p == nil {
			deps[name] = "not configured"
			return
		}
		if err := p.Ping(ctx); err != nil {
			deps[name] = "unhealthy: " + err.Error()
			allHealthy = false
			return
		}
		deps[name] = "healthy"
	}
	check("database", h.db)
	check("redis", h.redis)

	backend := "unreachable"
	if cfg, err := h.settings.Get(ctx); err == nil && h.checkBackend(ctx, cfg.BackendURL) {
		backend = "healthy"
	}
	deps["ai_backend"] = backend

	status := "healthy"
	httpStatus := http.StatusOK
	if !allHealthy {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	} else if backend != "healthy" {
		status = "degraded"
	}

	c.JSON(httpStatus, HealthResponse{
		Status:       status,
		Service:      serviceName,
		Version:      serviceVersion,
		Dependencies: deps,
	})
}

// checkBackend asks the AI backend's own health endpoint. It never calls
// /execute, which would start a generation run.
func (h *HealthHandler) checkBackend(ctx context.Context, baseURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
