package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/middleware"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/session"
)

// RequirementsHandler stores submitted requirements per session
type RequirementsHandler struct {
	sessions session.Store
	logger   *zap.Logger
}

func NewRequirementsHandler(sessions session.Store, logger *zap.Logger) *RequirementsHandler {
	return &RequirementsHandler{sessions: sessions, logger: logger}
}

// bindRequirements decodes and validates the body, writing the error response itself
func bindRequirements(c *gin.Context) (models.ProjectRequirements, bool) {
	var req models.ProjectRequirements
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BadRequest(c, "Invalid requirements: "+err.Error())
		return req, false
	}
	if err := req.Validate(); err != nil {
		respondValidation(c, err)
		return req, false
	}
	return req, true
}

func respondValidation(c *gin.Context, err error) {
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		middleware.BadRequest(c, err.Error())
		return
	}
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field+": "+f.Message)
	}
	middleware.ValidationFailed(c, "Requirements are incomplete", strings.Join(fields, "; "))
}

// Create validates the requirements and stores them under a new session id
// @Summary Store project requirements
// @Tags requirements
// @Accept json
// @Produce json
// @Param requirements body models.ProjectRequirements true "project requirements"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} middleware.APIError
// @Router /api/v1/requirements [post]
func (h *RequirementsHandler) Create(c *gin.Context) {
	req, ok := bindRequirements(c)
	if !ok {
		return
	}

	sessionID := uuid.NewString()
	if err := h.sessions.Save(c.Request.Context(), sessionID, req); err != nil {
		h.logger.Error("failed to save requirements", zap.Error(err))
		middleware.StorageError(c, "Failed to store requirements")
		return
	}

	h.logger.Info("requirements stored",
		zap.String("session_id", sessionID),
		zap.String("domain", string(req.Domain)),
	)
	c.JSON(http.StatusCreated, gin.H{
		"session_id":   sessionID,
		"requirements": req,
	})
}

// Get returns the stored requirements for a session
// @Summary Read stored requirements
// @Tags requirements
// @Produce json
// @Param sessionId path string true "session id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} middleware.APIError
// @Router /api/v1/requirements/{sessionId} [get]
func (h *RequirementsHandler) Get(c *gin.Context) {
	req, ok := loadSession(c, h.sessions, h.logger)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id":   c.Param("sessionId"),
		"requirements": req,
	})
}

// loadSession reads the requirements named by the sessionId path parameter
func loadSession(c *gin.Context, sessions session.Store, logger *zap.Logger) (models.ProjectRequirements, bool) {
	sessionID := c.Param("sessionId")
	req, err := sessions.Load(c.Request.Context(), sessionID)
	if errors.Is(err, session.ErrNotFound) {
		middleware.NotFound(c, "Session not found or expired")
		return req, false
	}
	if err != nil {
		logger.Error("failed to load session", zap.String("session_id", sessionID), zap.Error(err))
		middleware.StorageError(c, "Failed to load requirements")
		return req, false
	}
	return req, true
}
