package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/samarth/backend/internal/domain/inventory"
	"github.com/samarth/backend/internal/domain/shared"
	"github.com/samarth/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInventoryItemRepository implements inventory.ItemRepository using GORM
type GormInventoryItemRepository struct {
	db *gorm.DB
}

// NewGormInventoryItemRepository creates a new GormInventoryItemRepository
func NewGormInventoryItemRepository(db *gorm.DB) *GormInventoryItemRepository {
	return &GormInventoryItemRepository{db: db}
}

// Create inserts a kit. Kit ID, serial number and QR code uniqueness is left
// to the database so concurrent registrations cannot both succeed.
func (r *GormInventoryItemRepository) Create(ctx context.Context, item *inventory.Item) error {
	return translate(r.db.WithContext(ctx).Create(models.InventoryItemModelFromDomain(item)).Error)
}

// FindByID finds a kit by ID
func (r *GormInventoryItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	var model models.InventoryItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(), nil
}

// ExistsByKitID checks if a kit ID is registered
func (r *GormInventoryItemRepository) ExistsByKitID(ctx context.Context, kitID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.InventoryItemModel{}).
		Where("kit_id = ?", kitID).
		Count(&count).Error
	return count > 0, err
}

// List returns kits ordered by creation time
func (r *GormInventoryItemRepository) List(ctx context.Context, page shared.Page) ([]inventory.Item, error) {
	var rows []models.InventoryItemModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]inventory.Item, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items, nil
}

// Delete removes a kit by ID. Its transaction history is kept.
func (r *GormInventoryItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Delete(&models.InventoryItemModel{}, "id = ?", id))
}

// Count returns the total number of kits
func (r *GormInventoryItemRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InventoryItemModel{}).Count(&count).Error
	return count, err
}

// CountAllocated returns the number of kits linked to a batch
func (r *GormInventoryItemRepository) CountAllocated(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.InventoryItemModel{}).
		Where("batch_id IS NOT NULL").
		Count(&count).Error
	return count, err
}

// GormInventoryTransactionRepository implements inventory.TransactionRepository using GORM
type GormInventoryTransactionRepository struct {
	db *gorm.DB
}

// NewGormInventoryTransactionRepository creates a new GormInventoryTransactionRepository
func NewGormInventoryTransactionRepository(db *gorm.DB) *GormInventoryTransactionRepository {
	return &GormInventoryTransactionRepository{db: db}
}

// Append stores a new transaction
func (r *GormInventoryTransactionRepository) Append(ctx context.Context, tx *inventory.Transaction) error {
	return translate(r.db.WithContext(ctx).Create(models.InventoryTransactionModelFromDomain(tx)).Error)
}

// ListByKitID returns the history of one kit, oldest first
func (r *GormInventoryTransactionRepository) ListByKitID(ctx context.Context, kitID string) ([]inventory.Transaction, error) {
	var rows []models.InventoryTransactionModel
	if err := r.db.WithContext(ctx).
		Where("kit_id = ?", kitID).
		Order("timestamp ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	txs := make([]inventory.Transaction, len(rows))
	for i := range rows {
		txs[i] = *rows[i].ToDomain()
	}
	return txs, nil
}

// CountByKitID returns the number of transactions recorded for a kit
func (r *GormInventoryTransactionRepository) CountByKitID(ctx context.Context, kitID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.InventoryTransactionModel{}).
		Where("kit_id = ?", kitID).
		Count(&count).Error
	return count, err
}

var (
	_ inventory.ItemRepository        = (*GormInventoryItemRepository)(nil)
	_ inventory.TransactionRepository = (*GormInventoryTransactionRepository)(nil)
)
