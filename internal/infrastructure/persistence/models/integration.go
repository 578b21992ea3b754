package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/samarth/backend/internal/domain/integration"
	"gorm.io/datatypes"
)

// IntegrationLogModel records one outbound registry call. Payload and
// response are JSON columns (jsonb on postgres, text on sqlite).
type IntegrationLogModel struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Endpoint   string         `gorm:"type:varchar(30);not null;index"`
	Payload    datatypes.JSON `gorm:"not null"`
	Response   datatypes.JSON
	Status     string    `gorm:"type:varchar(10);not null"`
	Error      *string   `gorm:"type:text"`
	RetryCount int       `gorm:"not null;default:0"`
	Timestamp  time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (IntegrationLogModel) TableName() string {
	return "integration_logs"
}

// ToDomain converts the model to a domain integration log
func (m *IntegrationLogModel) ToDomain() *integration.Log {
	return &integration.Log{
		ID:         m.ID,
		Endpoint:   integration.Endpoint(m.Endpoint),
		Payload:    json.RawMessage(m.Payload),
		Response:   json.RawMessage(m.Response),
		Status:     integration.Status(m.Status),
		Error:      m.Error,
		RetryCount: m.RetryCount,
		Timestamp:  m.Timestamp,
	}
}

// IntegrationLogModelFromDomain converts a domain integration log to its model
func IntegrationLogModelFromDomain(l *integration.Log) *IntegrationLogModel {
	return &IntegrationLogModel{
		ID:         l.ID,
		Endpoint:   string(l.Endpoint),
		Payload:    datatypes.JSON(l.Payload),
		Response:   datatypes.JSON(l.Response),
		Status:     string(l.Status),
		Error:      l.Error,
		RetryCount: l.RetryCount,
		Timestamp:  l.Timestamp,
	}
}
