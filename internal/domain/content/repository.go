package content

import (
	"context"

	"github.com/google/uuid"
	"github.com/samarth/backend/internal/domain/shared"
)

// Repository defines the interface for content persistence
type Repository interface {
	Create(ctx context.Context, item *Item) error
	Update(ctx context.Context, item *Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	List(ctx context.Context, page shared.Page) ([]Item, error)

	// Stats counts content for the dashboard
	Stats(ctx context.Context) (Stats, error)
}

// Stats holds content counters
type Stats struct {
	Total     int64
	Practical int64
	Pedagogy  int64
	Unsynced  int64
}
