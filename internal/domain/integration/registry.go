package integration

import (
	"context"
	"errors"
)

// ErrDeliveryFailed is returned by a Registry when one attempt did not go through
var ErrDeliveryFailed = errors.New("registry delivery failed")

// Submission is one delivery attempt to the external registry
type Submission struct {
	Endpoint Endpoint
	Payload  map[string]any
	Attempt  int
}

// Acknowledgement is the registry's reply to an accepted submission
type Acknowledgement struct {
	// ReferenceID is the external id assigned to the record, empty for progress updates
	ReferenceID string
	// Body is the raw reply recorded in the integration log
	Body map[string]any
}

// Registry is the port to the external NDU registry
type Registry interface {
	Submit(ctx context.Context, s Submission) (*Acknowledgement, error)
}
