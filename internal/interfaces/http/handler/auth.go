package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	appidentity "github.com/samarth/backend/internal/application/identity"
	"github.com/samarth/backend/internal/interfaces/http/dto"
	"github.com/samarth/backend/internal/interfaces/http/middleware"
)

// MsgLoggedOut acknowledges a logout
const MsgLoggedOut = "Successfully logged out"

// AuthHandler handles token issuance and the caller's own session
type AuthHandler struct {
	BaseHandler
	authService *appidentity.AuthService
	userService *appidentity.UserService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *appidentity.AuthService, userService *appidentity.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

// Token handles POST /auth/token. It accepts the OAuth2 password form or
// JSON and answers with the bare token object rather than the envelope.
func (h *AuthHandler) Token(c *gin.Context) {
	var req appidentity.LoginInput
	if err := c.ShouldBind(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, appidentity.ErrInvalidCredentials) {
			c.Header("WWW-Authenticate", "Bearer")
		}
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, token)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.MustGetPrincipal(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.MessageResponse{Message: MsgLoggedOut})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	h.Success(c, h.authService.Me(middleware.MustGetPrincipal(c)))
}

// InitUsers handles POST /auth/init-users. 201 when the default accounts
// were created, 200 when they already existed.
func (h *AuthHandler) InitUsers(c *gin.Context) {
	result, err := h.userService.InitUsers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := dto.MessageResponse{Message: result.Message}
	if result.Created {
		h.Created(c, resp)
		return
	}
	h.Success(c, resp)
}
