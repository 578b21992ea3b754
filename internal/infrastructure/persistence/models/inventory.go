package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/samarth/backend/internal/domain/inventory"
	"github.com/samarth/backend/internal/domain/shared"
)

// InventoryItemModel is the persistence model for inventory.Item.
// Optional strings are NULL when empty so that unique indexes on serial
// number and QR code only apply to set values.
type InventoryItemModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	KitID        string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	Name         string     `gorm:"type:varchar(200);not null"`
	Model        *string    `gorm:"type:varchar(200)"`
	Description  *string    `gorm:"type:text"`
	SerialNumber *string    `gorm:"type:varchar(100);uniqueIndex"`
	Category     string     `gorm:"type:varchar(100);not null"`
	Status       string     `gorm:"type:varchar(20);not null;default:'AVAILABLE'"`
	State        string     `gorm:"type:varchar(100);not null;default:'Warehouse'"`
	District     *string    `gorm:"type:varchar(100)"`
	Institution  *string    `gorm:"type:varchar(200)"`
	Quantity     int        `gorm:"not null;default:1"`
	QRCode       *string    `gorm:"column:qr_code;type:varchar(200);uniqueIndex"`
	BatchID      *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt    time.Time  `gorm:"not null;index"`
	LastUpdated  time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InventoryItemModel) TableName() string {
	return "inventory"
}

// ToDomain converts the model to a domain item
func (m *InventoryItemModel) ToDomain() *inventory.Item {
	return &inventory.Item{
		BaseEntity:   shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.LastUpdated},
		KitID:        m.KitID,
		Name:         m.Name,
		Model:        m.Model,
		Description:  m.Description,
		SerialNumber: m.SerialNumber,
		Category:     m.Category,
		Status:       inventory.ItemStatus(m.Status),
		Location: inventory.Location{
			State:       m.State,
			District:    m.District,
			Institution: m.Institution,
		},
		Quantity: m.Quantity,
		QRCode:   m.QRCode,
		BatchID:  m.BatchID,
	}
}

// InventoryItemModelFromDomain converts a domain item to its model
func InventoryItemModelFromDomain(i *inventory.Item) *InventoryItemModel {
	return &InventoryItemModel{
		ID:           i.ID,
		KitID:        i.KitID,
		Name:         i.Name,
		Model:        i.Model,
		Description:  i.Description,
		SerialNumber: i.SerialNumber,
		Category:     i.Category,
		Status:       string(i.Status),
		State:        i.Location.State,
		District:     i.Location.District,
		Institution:  i.Location.Institution,
		Quantity:     i.Quantity,
		QRCode:       i.QRCode,
		BatchID:      i.BatchID,
		CreatedAt:    i.CreatedAt,
		LastUpdated:  i.UpdatedAt,
	}
}

// InventoryTransactionModel is the append-only kit history row.
type InventoryTransactionModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	KitID        string    `gorm:"type:varchar(100);not null;index"`
	ActionType   string    `gorm:"type:varchar(30);not null"`
	FromLocation *string   `gorm:"type:varchar(300)"`
	ToLocation   *string   `gorm:"type:varchar(300)"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Timestamp    time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (InventoryTransactionModel) TableName() string {
	return "inventory_transactions"
}

// ToDomain converts the model to a domain transaction
func (m *InventoryTransactionModel) ToDomain() *inventory.Transaction {
	return &inventory.Transaction{
		ID:           m.ID,
		KitID:        m.KitID,
		ActionType:   inventory.ActionType(m.ActionType),
		FromLocation: m.FromLocation,
		ToLocation:   m.ToLocation,
		UserID:       m.UserID,
		Timestamp:    m.Timestamp,
	}
}

// InventoryTransactionModelFromDomain converts a domain transaction to its model
func InventoryTransactionModelFromDomain(t *inventory.Transaction) *InventoryTransactionModel {
	return &InventoryTransactionModel{
		ID:           t.ID,
		KitID:        t.KitID,
		ActionType:   string(t.ActionType),
		FromLocation: t.FromLocation,
		ToLocation:   t.ToLocation,
		UserID:       t.UserID,
		Timestamp:    t.Timestamp,
	}
}
