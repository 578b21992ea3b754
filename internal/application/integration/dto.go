package integration

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/samarth/backend/internal/domain/integration"
)

// SyncOptions carries per-call settings taken from the request
type SyncOptions struct {
	// IdempotencyKey, when set, makes a replay of the same call a conflict
	IdempotencyKey string
}

// SyncResponse is returned after a record reached the registry
type SyncResponse struct {
	Message string `json:"message"`
	NDUID   string `json:"ndu_id"`
}

// ProgressRequest is the body of a progress sync
type ProgressRequest struct {
	Data map[string]any `json:"data" binding:"required"`
}

// ProgressResponse is returned when the registry acknowledged a progress update
type ProgressResponse struct {
	Message  string         `json:"message"`
	Response map[string]any `json:"response"`
}

// LogResponse is an integration log entry in API responses
type LogResponse struct {
	ID         uuid.UUID       `json:"id"`
	Endpoint   string          `json:"endpoint"`
	Payload    json.RawMessage `json:"payload"`
	Response   json.RawMessage `json:"response"`
	Status     string          `json:"status"`
	Error      *string         `json:"error"`
	RetryCount int             `json:"retry_count"`
	Timestamp  time.Time       `json:"timestamp"`
}

// ToLogResponse converts a domain log entry
func ToLogResponse(l *integration.Log) LogResponse {
	return LogResponse{
		ID:         l.ID,
		Endpoint:   l.Endpoint.String(),
		Payload:    l.Payload,
		Response:   l.Response,
		Status:     string(l.Status),
		Error:      l.Error,
		RetryCount: l.RetryCount,
		Timestamp:  l.Timestamp,
	}
}
