package persistence

import (
	"context"

	"github.com/samarth/backend/internal/domain/integration"
	"github.com/samarth/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormIntegrationLogRepository implements integration.LogRepository using GORM
type GormIntegrationLogRepository struct {
	db *gorm.DB
}

// NewGormIntegrationLogRepository creates a new GormIntegrationLogRepository
func NewGormIntegrationLogRepository(db *gorm.DB) *GormIntegrationLogRepository {
	return &GormIntegrationLogRepository{db: db}
}

// Append stores a new log row
func (r *GormIntegrationLogRepository) Append(ctx context.Context, entry *integration.Log) error {
	return translate(r.db.WithContext(ctx).Create(models.IntegrationLogModelFromDomain(entry)).Error)
}

// Recent returns the newest rows first
func (r *GormIntegrationLogRepository) Recent(ctx context.Context, limit int) ([]integration.Log, error) {
	var rows []models.IntegrationLogModel
	if err := r.db.WithContext(ctx).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]integration.Log, len(rows))
	for i := range rows {
		entries[i] = *rows[i].ToDomain()
	}
	return entries, nil
}

// CountByEndpoint counts rows for an endpoint with the given outcome
func (r *GormIntegrationLogRepository) CountByEndpoint(ctx context.Context, endpoint integration.Endpoint, status integration.Status) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.IntegrationLogModel{}).
		Where("endpoint = ? AND status = ?", string(endpoint), string(status)).
		Count(&count).Error
	return count, err
}

var _ integration.LogRepository = (*GormIntegrationLogRepository)(nil)
