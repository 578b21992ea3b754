package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/samarth/backend/internal/domain/shared"
)

// ActionType is the kind of movement recorded by a transaction
type ActionType string

const (
	// ActionInitialAllocation records the arrival of a new kit from the vendor
	ActionInitialAllocation ActionType = "INITIAL_ALLOCATION"
	// ActionAllocate records assignment of a kit to a batch
	ActionAllocate ActionType = "ALLOCATE"
	// ActionReturn records a kit coming back from a batch
	ActionReturn ActionType = "RETURN"
	// ActionConsume records a kit being used up
	ActionConsume ActionType = "CONSUME"
	// ActionTransfer records a move between locations
	ActionTransfer ActionType = "TRANSFER"
)

// VendorLocation is the origin of every initial allocation
const VendorLocation = "VENDOR"

// String returns the string representation of ActionType
func (a ActionType) String() string {
	return string(a)
}

// IsValid returns true if the action type is valid
func (a ActionType) IsValid() bool {
	switch a {
	case ActionInitialAllocation, ActionAllocate, ActionReturn, ActionConsume, ActionTransfer:
		return true
	}
	return false
}

// Transaction is an immutable provenance record for a kit.
// Corrections are made with new transactions, never by editing old ones.
type Transaction struct {
	ID           uuid.UUID
	KitID        string
	ActionType   ActionType
	FromLocation *string
	ToLocation   *string
	UserID       uuid.UUID
	Timestamp    time.Time
}

// NewTransaction creates a new provenance record
func NewTransaction(kitID string, action ActionType, from, to string, userID uuid.UUID) (*Transaction, error) {
	if kitID == "" {
		return nil, shared.Invalid("Kit ID cannot be empty")
	}
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTION_TYPE", "Invalid transaction action type")
	}
	if userID == uuid.Nil {
		return nil, shared.Invalid("Acting user cannot be empty")
	}

	return &Transaction{
		ID:           uuid.New(),
		KitID:        kitID,
		ActionType:   action,
		FromLocation: optional(from),
		ToLocation:   optional(to),
		UserID:       userID,
		Timestamp:    time.Now().UTC(),
	}, nil
}

// NewInitialAllocation records a new kit moving from the vendor to its first location
func NewInitialAllocation(item *Item, userID uuid.UUID) (*Transaction, error) {
	return NewTransaction(item.KitID, ActionInitialAllocation, VendorLocation, item.Location.String(), userID)
}
