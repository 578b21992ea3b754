package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samarth/backend/internal/domain/shared"
)

// ItemStatus is the lifecycle status of a kit
type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "AVAILABLE"
	ItemStatusAllocated ItemStatus = "ALLOCATED"
	ItemStatusDamaged   ItemStatus = "DAMAGED"
	ItemStatusConsumed  ItemStatus = "CONSUMED"
)

// DefaultState is the location state assigned when none is given
const DefaultState = "Warehouse"

// IsValid returns true if the status is one of the known values
func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemStatusAvailable, ItemStatusAllocated, ItemStatusDamaged, ItemStatusConsumed:
		return true
	}
	return false
}

// String returns the string representation of ItemStatus
func (s ItemStatus) String() string {
	return string(s)
}

// Location is the state/district/institution hierarchy a kit sits in
type Location struct {
	State       string
	District    *string
	Institution *string
}

// String renders the location as "state/district/institution" with "-" for blanks
func (l Location) String() string {
	return fmt.Sprintf("%s/%s/%s", l.State, orDash(l.District), orDash(l.Institution))
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

// Item is a physical inventory kit identified by its kit ID
type Item struct {
	shared.BaseEntity
	KitID        string
	Name         string
	Model        *string
	Description  *string
	SerialNumber *string
	Category     string
	Status       ItemStatus
	Location     Location
	Quantity     int
	QRCode       *string
	BatchID      *uuid.UUID
}

// NewItemParams holds the attributes of a kit being registered
type NewItemParams struct {
	KitID        string
	Name         string
	Model        string
	Description  string
	SerialNumber string
	Category     string
	Status       string
	State        string
	District     string
	Institution  string
	Quantity     *int
	QRCode       string
	BatchID      *uuid.UUID
}

// NewItem validates params and builds a new kit.
// Blank optional strings are stored as nil.
func NewItem(p NewItemParams) (*Item, error) {
	kitID := strings.TrimSpace(p.KitID)
	if kitID == "" {
		return nil, shared.Invalid("Kit ID cannot be empty")
	}
	if len(kitID) > 100 {
		return nil, shared.Invalid("Kit ID cannot exceed 100 characters")
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, shared.Invalid("Name cannot be empty")
	}
	category := strings.TrimSpace(p.Category)
	if category == "" {
		return nil, shared.Invalid("Category cannot be empty")
	}

	status := ItemStatusAvailable
	if p.Status != "" {
		status = ItemStatus(strings.ToUpper(strings.TrimSpace(p.Status)))
		if !status.IsValid() {
			return nil, shared.Invalid("Status must be one of AVAILABLE, ALLOCATED, DAMAGED, CONSUMED")
		}
	}

	quantity := 1
	if p.Quantity != nil {
		quantity = *p.Quantity
	}
	if quantity < 0 {
		return nil, shared.Invalid("Quantity cannot be negative")
	}

	state := strings.TrimSpace(p.State)
	if state == "" {
		state = DefaultState
	}

	item := &Item{
		BaseEntity:   shared.NewBaseEntity(),
		KitID:        kitID,
		Name:         name,
		Model:        optional(p.Model),
		Description:  optional(p.Description),
		SerialNumber: optional(p.SerialNumber),
		Category:     category,
		Status:       status,
		Location: Location{
			State:       state,
			District:    optional(p.District),
			Institution: optional(p.Institution),
		},
		Quantity: quantity,
		QRCode:   optional(p.QRCode),
		BatchID:  p.BatchID,
	}
	return item, nil
}

// IsAllocated reports whether the kit is linked to a training batch
func (i *Item) IsAllocated() bool {
	return i.BatchID != nil
}

// LastUpdated returns the time the record last changed
func (i *Item) LastUpdated() time.Time {
	return i.UpdatedAt
}

// CreationDetail renders the audit detail for a newly registered kit
func (i *Item) CreationDetail() string {
	return fmt.Sprintf("Created Item %s (Kit ID: %s)", i.Name, i.KitID)
}

// DeletionDetail renders the audit detail for a removed kit
func (i *Item) DeletionDetail() string {
	return fmt.Sprintf("Deleted Item %s (Kit ID: %s)", i.Name, i.KitID)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
