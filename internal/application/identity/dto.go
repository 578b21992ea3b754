package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/samarth/backend/internal/domain/identity"
)

// LoginInput carries OAuth2 password-grant credentials
type LoginInput struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// TokenResponse is the raw OAuth2 token body returned by the login endpoint
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// CreateUserRequest is the body of a create-user call
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"required,oneof=SUPER_ADMIN ADMIN"`
	FullName string `json:"full_name" binding:"max=200"`
}

// UserResponse is a user in API responses. The password hash never leaves the service.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	FullName  string    `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse converts a domain user
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role.String(),
		FullName:  u.FullName,
		IsActive:  u.Active,
		CreatedAt: u.CreatedAt,
	}
}

// InitUsersResult reports whether the default accounts were created
type InitUsersResult struct {
	Created bool   `json:"-"`
	Message string `json:"message"`
}
