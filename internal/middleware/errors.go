package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError represents a structured error response
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	RetryAfter int    `json:"retry_after_ms,omitempty"`
}

// Common error codes
const (
	ErrCodeBadRequest           = "BAD_REQUEST"
	ErrCodeValidation           = "VALIDATION_FAILED"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeInternalError        = "INTERNAL_ERROR"
	ErrCodeUnauthorized         = "UNAUTHORIZED"
	ErrCodeForbidden            = "FORBIDDEN"
	ErrCodeAdminDisabled        = "ADMIN_DISABLED"
	ErrCodeUpstreamError        = "UPSTREAM_ERROR"
	ErrCodeStorageError         = "STORAGE_ERROR"
	ErrCodeRecommendationFailed = "RECOMMENDATION_FAILED"
	ErrCodeRateLimited          = "RATE_LIMITED"
)

// RespondError sends a structured error response
func RespondError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"error": APIError{
			Code:    code,
			Message: message,
		},
	})
}

// RespondErrorWithDetails sends a structured error response with details
func RespondErrorWithDetails(c *gin.Context, status int, code string, message string, details string) {
	c.JSON(status, gin.H{
		"error": APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// RespondErrorWithRetry sends a structured error response with retry hint
func RespondErrorWithRetry(c *gin.Context, status int, code string, message string, retryAfterMs int) {
	c.JSON(status, gin.H{
		"error": APIError{
			Code:       code,
			Message:    message,
			RetryAfter: retryAfterMs,
		},
	})
}

// BadRequest sends a 400 error
func BadRequest(c *gin.Context, message string) {
	RespondError(c, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// ValidationFailed sends a 422 error listing the offending fields
func ValidationFailed(c *gin.Context, message string, details string) {
	RespondErrorWithDetails(c, http.StatusUnprocessableEntity, ErrCodeValidation, message, details)
}

// NotFound sends a 404 error
func NotFound(c *gin.Context, message string) {
	RespondError(c, http.StatusNotFound, ErrCodeNotFound, message)
}

// InternalError sends a 500 error
func InternalError(c *gin.Context, message string) {
	RespondError(c, http.StatusInternalServerError, ErrCodeInternalError, message)
}

// StorageError sends a 503 error when a backing store is unreachable
func StorageError(c *gin.Context, message string) {
	RespondErrorWithRetry(c, http.StatusServiceUnavailable, ErrCodeStorageError, message, 1000)
}

// BadGateway sends a 502 error for failed upstream calls
func BadGateway(c *gin.Context, message string, details string) {
	RespondErrorWithDetails(c, http.StatusBadGateway, ErrCodeUpstreamError, message, details)
}

// Unauthorized sends a 401 error
func Unauthorized(c *gin.Context, message string) {
	RespondError(c, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// Forbidden sends a 403 error
func Forbidden(c *gin.Context, message string) {
	RespondError(c, http.StatusForbidden, ErrCodeForbidden, message)
}

// RecommendationFailed sends a 500 error the client may retry after retryAfterMs
func RecommendationFailed(c *gin.Context, retryAfterMs int) {
	RespondErrorWithRetry(c, http.StatusInternalServerError, ErrCodeRecommendationFailed, "Failed to generate recommendation", retryAfterMs)
}
