package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/aiagent"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/middleware"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/settings"
)

// SettingsHandler reads and updates the backend URL and API keys. Key values
// are write-only; reads only report which keys are set.
type SettingsHandler struct {
	store   settings.Store
	checker ConnectionChecker
	logger  *zap.Logger
}

// ConnectionChecker sends the connection-test request to a backend URL
type ConnectionChecker interface {
	CheckConnection(ctx context.Context, baseURL string) (*aiagent.ConnectionResult, error)
}

func NewSettingsHandler(store settings.Store, checker ConnectionChecker, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{store: store, checker: checker, logger: logger}
}

type BackendRequest struct {
	BackendURL string `json:"backend_url" binding:"required"`
}

// GetBackend returns the backend URL in use
// @Summary Read the backend URL
// @Tags settings
// @Produce json
// @Security Bearer
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} middleware.APIError
// @Router /api/v1/settings/backend [get]
func (h *SettingsHandler) GetBackend(c *gin.Context) {
	cfg, err := h.store.Get(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to read settings", zap.Error(err))
		middleware.StorageError(c, "Failed to read settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"backend_url": cfg.BackendURL,
		"configured":  cfg.Configured,
	})
}

// UpdateBackend validates and stores a new backend URL
// @Summary Update the backend URL
// @Tags settings
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body BackendRequest true "backend URL"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} middleware.APIError
// @Failure 401 {object} middleware.APIError
// @Router /api/v1/settings/backend [put]
func (h *SettingsHandler) UpdateBackend(c *gin.Context) {
	var req BackendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BadRequest(c, "backend_url is required")
		return
	}

	err := h.store.SetBackendURL(c.Request.Context(), req.BackendURL)
	if errors.Is(err, settings.ErrInvalidBackendURL) {
		middleware.BadRequest(c, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("failed to save backend url", zap.Error(err))
		middleware.StorageError(c, "Failed to save settings")
		return
	}

	h.logger.Info("backend url updated")
	h.GetBackend(c)
}

// TestBackend runs the connection test against the body URL, or the stored one
// @Summary Test the backend connection
// @Tags settings
// @Produce json
// @Security Bearer
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} middleware.APIError
// @Router /api/v1/settings/backend/test [post]
func (h *SettingsHandler) TestBackend(c *gin.Context) {
	var req struct {
		BackendURL string `json:"backend_url"`
	}
	_ = c.ShouldBindJSON(&req)

	target := req.BackendURL
	if target == "" {
		cfg, err := h.store.Get(c.Request.Context())
		if err != nil {
			middleware.StorageError(c, "Failed to read settings")
			return
		}
		target = cfg.BackendURL
	}
	target, err := settings.ValidateBackendURL(target)
	if err != nil {
		middleware.BadRequest(c, err.Error())
		return
	}

	res, err := h.checker.CheckConnection(c.Request.Context(), target)
	if err != nil {
		h.logger.Info("backend connection test failed", zap.String("backend_url", target), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{
			"success":     false,
			"backend_url": target,
			"message":     "Could not connect to backend: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"backend_url":      target,
		"status_code":      res.StatusCode,
		"latency_ms":       res.Latency.Milliseconds(),
		"has_architecture": res.HasArchitecture,
		"message":          "Connection successful",
	})
}

// GetAPIKeys reports which keys are set without returning their values
// @Summary Report which API keys are set
// @Tags settings
// @Produce json
// @Security Bearer
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} middleware.APIError
// @Router /api/v1/settings/api-keys [get]
func (h *SettingsHandler) GetAPIKeys(c *gin.Context) {
	cfg, err := h.store.Get(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to read settings", zap.Error(err))
		middleware.StorageError(c, "Failed to read settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"keys": cfg.Keys.Presence()})
}

// UpdateAPIKeys sets the given keys; an empty string clears a key
// @Summary Set or clear API keys
// @Tags settings
// @Accept json
// @Produce json
// @Security Bearer
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} middleware.APIError
// @Failure 401 {object} middleware.APIError
// @Router /api/v1/settings/api-keys [put]
func (h *SettingsHandler) UpdateAPIKeys(c *gin.Context) {
	var keys map[string]string
	if err := c.ShouldBindJSON(&keys); err != nil || len(keys) == 0 {
		middleware.BadRequest(c, "Body must be an object of key names to values")
		return
	}

	err := h.store.UpdateKeys(c.Request.Context(), keys)
	if errors.Is(err, settings.ErrUnknownKey) {
		middleware.BadRequest(c, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("failed to save api keys", zap.Error(err))
		middleware.StorageError(c, "Failed to save settings")
		return
	}

	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, k)
	}
	h.logger.Info("api keys updated", zap.Strings("keys", names))
	h.GetAPIKeys(c)
}
