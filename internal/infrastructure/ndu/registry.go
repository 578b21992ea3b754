// Package ndu provides an in-process stand-in for the national NDU registry.
// Delivery outcomes are pluggable per endpoint so that tests can force
// success, failure, or success on a given retry.
package ndu

import (
	"context"
	"fmt"
	"sync"

	"github.com/samarth/backend/internal/domain/integration"
	"go.uber.org/zap"
)

// MockRegistry implements integration.Registry without network calls
type MockRegistry struct {
	mu       sync.RWMutex
	outcomes map[integration.Endpoint]Outcome
	fallback Outcome
	refs     ReferenceGenerator
	logger   *zap.Logger
}

// Option configures a MockRegistry
type Option func(*MockRegistry)

// WithOutcome sets the outcome strategy for one endpoint
func WithOutcome(endpoint integration.Endpoint, o Outcome) Option {
	return func(r *MockRegistry) { r.outcomes[endpoint] = o }
}

// WithReferences overrides the reference id generator
func WithReferences(g ReferenceGenerator) Option {
	return func(r *MockRegistry) { r.refs = g }
}

// WithLogger attaches a logger
func WithLogger(l *zap.Logger) Option {
	return func(r *MockRegistry) { r.logger = l.Named("ndu") }
}

// NewMockRegistry creates a registry that accepts every submission unless
// an endpoint outcome says otherwise
func NewMockRegistry(opts ...Option) *MockRegistry {
	r := &MockRegistry{
		outcomes: make(map[integration.Endpoint]Outcome),
		fallback: AlwaysSucceed(),
		refs:     RandomReference,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetOutcome replaces the outcome strategy for an endpoint at runtime
func (r *MockRegistry) SetOutcome(endpoint integration.Endpoint, o Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[endpoint] = o
}

func (r *MockRegistry) outcome(endpoint integration.Endpoint) Outcome {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if o, ok := r.outcomes[endpoint]; ok {
		return o
	}
	return r.fallback
}

// Submit implements integration.Registry
func (r *MockRegistry) Submit(ctx context.Context, s integration.Submission) (*integration.Acknowledgement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !s.Endpoint.IsValid() {
		return nil, fmt.Errorf("unknown registry endpoint %q", s.Endpoint)
	}

	o := r.outcome(s.Endpoint)
	if !o.Succeeds(s) {
		r.logger.Debug("submission rejected",
			zap.String("endpoint", s.Endpoint.String()),
			zap.Int("attempt", s.Attempt),
			zap.String("outcome", o.Name()),
		)
		return nil, integration.ErrDeliveryFailed
	}

	return r.acknowledge(s.Endpoint), nil
}

func (r *MockRegistry) acknowledge(endpoint integration.Endpoint) *integration.Acknowledgement {
	switch endpoint {
	case integration.EndpointSyncContent:
		ref := r.nextReference(ContentPrefix)
		return &integration.Acknowledgement{
			ReferenceID: ref,
			Body: map[string]any{
				"id":      ref,
				"status":  "Synced",
				"message": "Content received successfully",
			},
		}
	case integration.EndpointSyncTraining:
		ref := r.nextReference(TrainingPrefix)
		return &integration.Acknowledgement{
			ReferenceID: ref,
			Body: map[string]any{
				"id":      ref,
				"status":  "Scheduled",
				"message": "Training program registered",
			},
		}
	default:
		return &integration.Acknowledgement{
			Body: map[string]any{
				"status":  "ACK",
				"message": "Progress Updated",
			},
		}
	}
}

func (r *MockRegistry) nextReference(prefix string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refs(prefix)
}

var _ integration.Registry = (*MockRegistry)(nil)
