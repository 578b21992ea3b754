package audit

import (
	"context"
)

// Repository is the append-only store for audit entries
type Repository interface {
	// Append stores a new entry
	Append(ctx context.Context, entry *Log) error

	// Recent returns the newest entries first
	Recent(ctx context.Context, limit int) ([]Log, error)

	// CountByAction returns how many entries carry the action tag
	CountByAction(ctx context.Context, action string) (int64, error)
}
