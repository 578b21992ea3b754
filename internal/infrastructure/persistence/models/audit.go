package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/samarth/backend/internal/domain/audit"
)

// AuditLogModel is the append-only audit row. A NULL user_id marks a
// system or unauthenticated event.
type AuditLogModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    *uuid.UUID `gorm:"type:uuid;index"`
	Action    string     `gorm:"type:varchar(50);not null;index"`
	Details   string     `gorm:"type:text"`
	Timestamp time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// ToDomain converts the model to a domain audit entry
func (m *AuditLogModel) ToDomain() *audit.Log {
	return &audit.Log{
		ID:        m.ID,
		UserID:    m.UserID,
		Action:    m.Action,
		Details:   m.Details,
		Timestamp: m.Timestamp,
	}
}

// AuditLogModelFromDomain converts a domain audit entry to its model
func AuditLogModelFromDomain(l *audit.Log) *AuditLogModel {
	return &AuditLogModel{
		ID:        l.ID,
		UserID:    l.UserID,
		Action:    l.Action,
		Details:   l.Details,
		Timestamp: l.Timestamp,
	}
}
