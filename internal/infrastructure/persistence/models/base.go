package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/samarth/backend/internal/domain/shared"
)

// BaseModel provides the id and timestamps shared by mutable records.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func baseFromDomain(e shared.BaseEntity) BaseModel {
	return BaseModel{ID: e.ID, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}
}

// All lists every model in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&UserModel{},
		&ProgramModel{},
		&BatchModel{},
		&ParticipantModel{},
		&AttendanceModel{},
		&InventoryItemModel{},
		&InventoryTransactionModel{},
		&ContentItemModel{},
		&AuditLogModel{},
		&IntegrationLogModel{},
	}
}
