package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samarth/backend/internal/domain/identity"
	"github.com/samarth/backend/internal/infrastructure/logger"
	"github.com/samarth/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// PermissionConfig holds configuration for permission middleware
type PermissionConfig struct {
	Policy *identity.Policy
	// Logger for middleware logging
	Logger *zap.Logger
}

// RequireAction creates middleware that admits only roles the policy grants action to.
// It must run after JWTAuthMiddleware.
func RequireAction(policy *identity.Policy, action identity.Action) gin.HandlerFunc {
	return RequireActionWithConfig(PermissionConfig{Policy: policy}, action)
}

// RequireActionWithConfig creates the policy check with custom config
func RequireActionWithConfig(cfg PermissionConfig, action identity.Action) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if principal == nil {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, "Not authenticated", getRequestID(c)))
			return
		}

		if err := cfg.Policy.Authorize(action, principal.User.Role); err != nil {
			logger.Enrich(c.Request.Context(), cfg.Logger).Warn("Permission denied",
				zap.String("action", string(action)),
				zap.String("role", string(principal.User.Role)),
			)
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, "Not authorized", getRequestID(c)))
			return
		}

		c.Next()
	}
}
