package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/samarth/backend/internal/domain/shared"
)

// ItemRepository defines the interface for inventory item persistence
type ItemRepository interface {
	// Create inserts a kit. Unique violations on kit ID, serial number or
	// QR code yield shared.ErrAlreadyExists; nothing is pre-checked.
	Create(ctx context.Context, item *Item) error

	// FindByID finds a kit by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// ExistsByKitID checks if a kit ID is registered
	ExistsByKitID(ctx context.Context, kitID string) (bool, error)

	// List returns kits ordered by creation time
	List(ctx context.Context, page shared.Page) ([]Item, error)

	// Delete removes a kit by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the total number of kits
	Count(ctx context.Context) (int64, error)

	// CountAllocated returns the number of kits linked to a batch
	CountAllocated(ctx context.Context) (int64, error)
}

// TransactionRepository defines the interface for the append-only kit history
type TransactionRepository interface {
	// Append stores a new transaction
	Append(ctx context.Context, tx *Transaction) error

	// ListByKitID returns the history of one kit, oldest first
	ListByKitID(ctx context.Context, kitID string) ([]Transaction, error)

	// CountByKitID returns the number of transactions recorded for a kit
	CountByKitID(ctx context.Context, kitID string) (int64, error)
}
