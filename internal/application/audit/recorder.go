// Package audit records who did what. Mutations write their audit row
// through the unit of work so both commit or roll back together; login
// outcomes are recorded on their own and never fail the request.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samarth/backend/internal/domain/audit"
	"go.uber.org/zap"
)

// DefaultRecentLimit is the number of entries shown when no limit is given
const DefaultRecentLimit = 5

// maxRecentLimit bounds the recent feed
const maxRecentLimit = 100

// Recorder appends audit entries and reads the recent feed
type Recorder struct {
	repo   audit.Repository
	logger *zap.Logger
}

// NewRecorder creates a Recorder over the non-transactional repository
func NewRecorder(repo audit.Repository, logger *zap.Logger) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

// Append writes one entry through repo, normally the repository of the
// current unit of work
func Append(ctx context.Context, repo audit.Repository, userID *uuid.UUID, action, details string) error {
	entry, err := audit.NewLog(userID, action, details)
	if err != nil {
		return err
	}
	if err := repo.Append(ctx, entry); err != nil {
		return fmt.Errorf("append audit %s: %w", action, err)
	}
	return nil
}

// Record writes one entry outside any unit of work
func (r *Recorder) Record(ctx context.Context, userID *uuid.UUID, action, details string) error {
	return Append(ctx, r.repo, userID, action, details)
}

// RecordBestEffort writes one entry and only logs a failure
func (r *Recorder) RecordBestEffort(ctx context.Context, userID *uuid.UUID, action, details string) {
	if err := r.Record(ctx, userID, action, details); err != nil {
		r.logger.Error("Failed to record audit entry",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// Recent returns the newest entries first
func (r *Recorder) Recent(ctx context.Context, limit int) ([]LogResponse, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	logs, err := r.repo.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]LogResponse, len(logs))
	for i := range logs {
		out[i] = ToLogResponse(&logs[i])
	}
	return out, nil
}

// LogResponse is an audit entry in API responses
type LogResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id"`
	Action    string     `json:"action"`
	Details   string     `json:"details"`
	Timestamp time.Time  `json:"timestamp"`
}

// ToLogResponse converts a domain entry
func ToLogResponse(l *audit.Log) LogResponse {
	return LogResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		Action:    l.Action,
		Details:   l.Details,
		Timestamp: l.Timestamp,
	}
}
