package shared

import (
	"context"
	"time"
)

// IdempotencyStore claims request keys so that a replayed request is detected
type IdempotencyStore interface {
	// Claim marks a key as taken with a TTL.
	// Returns true if the key was newly claimed, false if it was already taken.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsClaimed checks whether a key is currently taken
	IsClaimed(ctx context.Context, key string) (bool, error)

	// Release frees a key so the request may be retried
	Release(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}
