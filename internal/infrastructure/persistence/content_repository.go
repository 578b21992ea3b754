package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/samarth/backend/internal/domain/content"
	"github.com/samarth/backend/internal/domain/shared"
	"github.com/samarth/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormContentRepository implements content.Repository using GORM
type GormContentRepository struct {
	db *gorm.DB
}

// NewGormContentRepository creates a new GormContentRepository
func NewGormContentRepository(db *gorm.DB) *GormContentRepository {
	return &GormContentRepository{db: db}
}

// Create inserts a new content item
func (r *GormContentRepository) Create(ctx context.Context, item *content.Item) error {
	return translate(r.db.WithContext(ctx).Create(models.ContentItemModelFromDomain(item)).Error)
}

// Update saves every column of an existing content item
func (r *GormContentRepository) Update(ctx context.Context, item *content.Item) error {
	result := r.db.WithContext(ctx).
		Model(&models.ContentItemModel{}).
		Where("id = ?", item.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(models.ContentItemModelFromDomain(item))
	return affected(result)
}

// FindByID finds a content item by ID
func (r *GormContentRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Item, error) {
	var model models.ContentItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(), nil
}

// List returns content ordered by creation time
func (r *GormContentRepository) List(ctx context.Context, page shared.Page) ([]content.Item, error) {
	var rows []models.ContentItemModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]content.Item, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items, nil
}

// Stats counts content in a single pass
func (r *GormContentRepository) Stats(ctx context.Context) (content.Stats, error) {
	var row struct {
		Total     int64
		Practical int64
		Pedagogy  int64
		Unsynced  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.ContentItemModel{}).
		Select(
			"COUNT(*) AS total, "+
				"COALESCE(SUM(CASE WHEN category = ? THEN 1 ELSE 0 END), 0) AS practical, "+
				"COALESCE(SUM(CASE WHEN category = ? THEN 1 ELSE 0 END), 0) AS pedagogy, "+
				"COALESCE(SUM(CASE WHEN ndu_reference_id IS NULL THEN 1 ELSE 0 END), 0) AS unsynced",
			content.CategoryPractical, content.CategoryPedagogy,
		).
		Scan(&row).Error
	if err != nil {
		return content.Stats{}, err
	}
	return content.Stats{
		Total:     row.Total,
		Practical: row.Practical,
		Pedagogy:  row.Pedagogy,
		Unsynced:  row.Unsynced,
	}, nil
}

var _ content.Repository = (*GormContentRepository)(nil)
