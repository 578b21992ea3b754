package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/samarth/backend/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create inserts a new user; a taken username yields shared.ErrAlreadyExists
	Create(ctx context.Context, user *User) error

	// Update updates an existing user
	Update(ctx context.Context, user *User) error

	// Delete deletes a user by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername finds a user by username, case-insensitively
	FindByUsername(ctx context.Context, username string) (*User, error)

	// List returns users ordered by creation time
	List(ctx context.Context, page shared.Page) ([]User, error)

	// Count returns the total number of users
	Count(ctx context.Context) (int64, error)
}
