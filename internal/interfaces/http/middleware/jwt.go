package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	appidentity "github.com/samarth/backend/internal/application/identity"
	"github.com/samarth/backend/internal/domain/shared"
	"github.com/samarth/backend/internal/infrastructure/logger"
	"github.com/samarth/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Auth context keys
const (
	PrincipalKey  = "principal"
	JWTUserIDKey  = "jwt_user_id"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// Authenticator resolves a bearer token to a live principal
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*appidentity.Principal, error)
}

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	Authenticator Authenticator
	// Logger for middleware logging
	Logger *zap.Logger
}

// JWTAuthMiddleware creates JWT authentication middleware
func JWTAuthMiddleware(authn Authenticator, log *zap.Logger) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{Authenticator: authn, Logger: log})
}

// JWTAuthMiddlewareWithConfig creates JWT authentication middleware with custom config.
// Every failure answers 401 with a WWW-Authenticate challenge.
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, cfg, dto.ErrCodeUnauthorized, "Not authenticated", nil)
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, cfg, dto.ErrCodeUnauthorized, "Not authenticated", nil)
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerPrefix))
		if tokenString == "" {
			abortUnauthorized(c, cfg, dto.ErrCodeUnauthorized, "Not authenticated", nil)
			return
		}

		principal, err := cfg.Authenticator.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			var domainErr *shared.DomainError
			if !errors.As(err, &domainErr) {
				logger.Enrich(c.Request.Context(), cfg.Logger).Error("Token resolution failed", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, "An unexpected error occurred", getRequestID(c)))
				return
			}
			abortUnauthorized(c, cfg, dto.NormalizeErrorCode(domainErr.Code), domainErr.Message, err)
			return
		}

		userID := principal.User.ID.String()
		c.Set(PrincipalKey, principal)
		c.Set(JWTUserIDKey, userID)

		ctx := logger.WithActor(c.Request.Context(), logger.Actor{
			UserID:   userID,
			Username: principal.User.Username,
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, cfg JWTMiddlewareConfig, code, message string, err error) {
	logger.Enrich(c.Request.Context(), cfg.Logger).Warn("JWT authentication failed",
		zap.String("code", code),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)

	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// GetPrincipal retrieves the authenticated caller from gin.Context
func GetPrincipal(c *gin.Context) *appidentity.Principal {
	if v, exists := c.Get(PrincipalKey); exists {
		if p, ok := v.(*appidentity.Principal); ok {
			return p
		}
	}
	return nil
}

// MustGetPrincipal retrieves the authenticated caller or panics if the
// route was not mounted behind JWTAuthMiddleware
func MustGetPrincipal(c *gin.Context) *appidentity.Principal {
	p := GetPrincipal(c)
	if p == nil {
		panic("principal not found in context")
	}
	return p
}

// GetJWTUserID retrieves the authenticated user ID from context
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}
