package persistence

import (
	"context"

	"github.com/samarth/backend/internal/domain/audit"
	"github.com/samarth/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAuditRepository implements audit.Repository. It only ever inserts.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append stores a new entry
func (r *GormAuditRepository) Append(ctx context.Context, entry *audit.Log) error {
	return translate(r.db.WithContext(ctx).Create(models.AuditLogModelFromDomain(entry)).Error)
}

// Recent returns the newest entries first
func (r *GormAuditRepository) Recent(ctx context.Context, limit int) ([]audit.Log, error) {
	var rows []models.AuditLogModel
	if err := r.db.WithContext(ctx).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]audit.Log, len(rows))
	for i := range rows {
		entries[i] = *rows[i].ToDomain()
	}
	return entries, nil
}

// CountByAction returns how many entries carry the action tag
func (r *GormAuditRepository) CountByAction(ctx context.Context, action string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AuditLogModel{}).Where("action = ?", action).Count(&count).Error
	return count, err
}

var _ audit.Repository = (*GormAuditRepository)(nil)
