package integration

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Endpoint tags the kind of record being synchronized
type Endpoint string

const (
	EndpointSyncContent  Endpoint = "SYNC_CONTENT"
	EndpointSyncTraining Endpoint = "SYNC_TRAINING"
	EndpointSyncProgress Endpoint = "SYNC_PROGRESS"
)

// String returns the string representation of Endpoint
func (e Endpoint) String() string {
	return string(e)
}

// IsValid returns true if the endpoint is known
func (e Endpoint) IsValid() bool {
	switch e {
	case EndpointSyncContent, EndpointSyncTraining, EndpointSyncProgress:
		return true
	}
	return false
}

// Status is the final outcome of a sync call
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailure Status = "FAILURE"
)

// ErrMaxRetriesExceeded is the error text recorded when every attempt failed
const ErrMaxRetriesExceeded = "Max retries exceeded"

// Log is an immutable record of one sync call. Exactly one is written per
// call, after the outcome is decided; RetryCount holds the failed attempts.
type Log struct {
	ID         uuid.UUID
	Endpoint   Endpoint
	Payload    json.RawMessage
	Response   json.RawMessage
	Status     Status
	Error      *string
	RetryCount int
	Timestamp  time.Time
}

// NewLog serializes payload and response and builds a log entry
func NewLog(endpoint Endpoint, payload, response any, status Status, errText string, retries int) (*Log, error) {
	p, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	r, err := json.Marshal(response)
	if err != nil {
		return nil, err
	}

	entry := &Log{
		ID:         uuid.New(),
		Endpoint:   endpoint,
		Payload:    p,
		Response:   r,
		Status:     status,
		RetryCount: retries,
		Timestamp:  time.Now().UTC(),
	}
	if errText != "" {
		entry.Error = &errText
	}
	return entry, nil
}

// Succeeded reports whether the call reached the registry
func (l *Log) Succeeded() bool {
	return l.Status == StatusSuccess
}
