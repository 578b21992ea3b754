package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/samarth/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// CreateItemRequest is the body of a kit registration
type CreateItemRequest struct {
	KitID        string     `json:"kit_id" binding:"required,max=100"`
	Name         string     `json:"name" binding:"required,max=200"`
	Model        string     `json:"model" binding:"max=100"`
	Description  string     `json:"description" binding:"max=2000"`
	SerialNumber string     `json:"serial_number" binding:"max=100"`
	Category     string     `json:"category" binding:"required,max=100"`
	Status       string     `json:"status" binding:"omitempty,oneof=AVAILABLE ALLOCATED DAMAGED CONSUMED"`
	State        string     `json:"state" binding:"max=100"`
	District     string     `json:"district" binding:"max=100"`
	Institution  string     `json:"institution" binding:"max=200"`
	Quantity     *int       `json:"quantity" binding:"omitempty,min=0"`
	QRCode       string     `json:"qr_code" binding:"max=200"`
	BatchID      *uuid.UUID `json:"batch_id"`
}

// ItemResponse is a kit in API responses
type ItemResponse struct {
	ID           uuid.UUID  `json:"id"`
	KitID        string     `json:"kit_id"`
	Name         string     `json:"name"`
	Model        *string    `json:"model"`
	Description  *string    `json:"description"`
	SerialNumber *string    `json:"serial_number"`
	Category     string     `json:"category"`
	Status       string     `json:"status"`
	State        string     `json:"state"`
	District     *string    `json:"district"`
	Institution  *string    `json:"institution"`
	Quantity     int        `json:"quantity"`
	QRCode       *string    `json:"qr_code"`
	BatchID      *uuid.UUID `json:"batch_id"`
	CreatedAt    time.Time  `json:"created_at"`
	LastUpdated  time.Time  `json:"last_updated"`
}

// ToItemResponse converts a domain kit
func ToItemResponse(i *inventory.Item) ItemResponse {
	return ItemResponse{
		ID:           i.ID,
		KitID:        i.KitID,
		Name:         i.Name,
		Model:        i.Model,
		Description:  i.Description,
		SerialNumber: i.SerialNumber,
		Category:     i.Category,
		Status:       i.Status.String(),
		State:        i.Location.State,
		District:     i.Location.District,
		Institution:  i.Location.Institution,
		Quantity:     i.Quantity,
		QRCode:       i.QRCode,
		BatchID:      i.BatchID,
		CreatedAt:    i.CreatedAt,
		LastUpdated:  i.LastUpdated(),
	}
}

// TransactionResponse is one provenance record
type TransactionResponse struct {
	ID           uuid.UUID `json:"id"`
	KitID        string    `json:"kit_id"`
	ActionType   string    `json:"action_type"`
	FromLocation *string   `json:"from_location"`
	ToLocation   *string   `json:"to_location"`
	UserID       uuid.UUID `json:"user_id"`
	Timestamp    time.Time `json:"timestamp"`
}

// ToTransactionResponse converts a domain transaction
func ToTransactionResponse(t *inventory.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           t.ID,
		KitID:        t.KitID,
		ActionType:   t.ActionType.String(),
		FromLocation: t.FromLocation,
		ToLocation:   t.ToLocation,
		UserID:       t.UserID,
		Timestamp:    t.Timestamp,
	}
}

// UtilizationResponse reports the kit allocation rate
type UtilizationResponse struct {
	UtilizationRate   decimal.Decimal `json:"utilization_rate"`
	AllocatedKits     int64           `json:"allocated_kits"`
	TotalKits         int64           `json:"total_kits"`
	CorrelationStatus string          `json:"correlation_status"`
}

// MessageResponse carries a bare message
type MessageResponse struct {
	Message string `json:"message"`
}

func (r CreateItemRequest) params() inventory.NewItemParams {
	return inventory.NewItemParams{
		KitID:        r.KitID,
		Name:         r.Name,
		Model:        r.Model,
		Description:  r.Description,
		SerialNumber: r.SerialNumber,
		Category:     r.Category,
		Status:       r.Status,
		State:        r.State,
		District:     r.District,
		Institution:  r.Institution,
		Quantity:     r.Quantity,
		QRCode:       r.QRCode,
		BatchID:      r.BatchID,
	}
}
