package shared

import (
	"context"

	"github.com/google/uuid"
)

// Pagination defaults for offset based listing
const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// Repository is the base interface for simple aggregate repositories
type Repository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	List(ctx context.Context, page Page) ([]T, error)
	Count(ctx context.Context) (int64, error)
}

// Page represents an offset/limit window over an ordered listing
type Page struct {
	Offset int
	Limit  int
}

// NewPage clamps offset and limit into a usable window
func NewPage(offset, limit int) Page {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Offset: offset, Limit: limit}
}

// DefaultPage returns the first page with the default limit
func DefaultPage() Page {
	return NewPage(0, DefaultLimit)
}
