package integration

import (
	"context"
)

// LogRepository is the append-only store for integration logs
type LogRepository interface {
	Append(ctx context.Context, entry *Log) error
	Recent(ctx context.Context, limit int) ([]Log, error)
	CountByEndpoint(ctx context.Context, endpoint Endpoint, status Status) (int64, error)
}
