package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// RoleAdmin is the only role allowed on the settings routes
const RoleAdmin = "admin"

const (
	adminIssuer    = "designpanda"
	contextSubject = "admin_subject"
)

// AdminClaims are the claims carried by an operator token
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueAdminToken signs an HS256 admin token for subject that expires after ttl
func IssueAdminToken(secret, subject string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("admin secret is empty")
	}
	now := time.Now()
	claims := AdminClaims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    adminIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseAdminToken validates signature, expiry and issuer
func ParseAdminToken(secret, tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(adminIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// AdminAuth requires a bearer token signed with secret and carrying the admin
// role. With an empty secret every request is refused.
func AdminAuth(secret string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			RespondError(c, http.StatusServiceUnavailable, ErrCodeAdminDisabled, "Settings administration is disabled; set ADMIN_JWT_SECRET")
			c.Abort()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			Unauthorized(c, "Missing authorization header")
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header {
			Unauthorized(c, "Invalid authorization format")
			c.Abort()
			return
		}

		claims, err := ParseAdminToken(secret, tokenString)
		if err != nil {
			logger.Warn("admin token rejected",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}
		if claims.Role != RoleAdmin {
			Forbidden(c, "Admin role required")
			c.Abort()
			return
		}

		c.Set(contextSubject, claims.Subject)
		c.Next()
	}
}
