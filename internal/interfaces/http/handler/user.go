package handler

import (
	"github.com/gin-gonic/gin"
	appidentity "github.com/samarth/backend/internal/application/identity"
)

// UserHandler handles account management
type UserHandler struct {
	BaseHandler
	userService *appidentity.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *appidentity.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles GET /auth/users/
func (h *UserHandler) List(c *gin.Context) {
	page, ok := h.bindPage(c)
	if !ok {
		return
	}

	users, err := h.userService.List(c.Request.Context(), page.Offset, page.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, users, page, len(users))
}

// Create handles POST /auth/users/
func (h *UserHandler) Create(c *gin.Context) {
	var req appidentity.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req, currentUser(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// Delete handles DELETE /auth/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", "User not found")
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id, currentUser(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
