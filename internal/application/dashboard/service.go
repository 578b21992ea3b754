// Package dashboard aggregates the counters shown on the landing page.
package dashboard

import (
	"context"
	"fmt"

	"github.com/samarth/backend/internal/domain/audit"
	"github.com/samarth/backend/internal/domain/content"
	"github.com/samarth/backend/internal/domain/identity"
	"github.com/samarth/backend/internal/domain/inventory"
	"github.com/samarth/backend/internal/domain/training"
)

const (
	recentLogCount = 5
	timeLayout     = "15:04 02-Jan"
)

// Stats is the dashboard payload
type Stats struct {
	Inventory        int64       `json:"inventory"`
	Batches          int64       `json:"batches"`
	ContentTotal     int64       `json:"content_total"`
	ContentPractical int64       `json:"content_practical"`
	ContentPedagogy  int64       `json:"content_pedagogy"`
	PendingSyncs     int64       `json:"pending_syncs"`
	UserRole         string      `json:"user_role"`
	RecentLogs       []RecentLog `json:"recent_logs"`
}

// RecentLog is a condensed audit entry
type RecentLog struct {
	Action string `json:"action"`
	User   string `json:"user"`
	Time   string `json:"time"`
}

// Service reads counters from the repositories. It never writes.
type Service struct {
	items   inventory.ItemRepository
	batches training.BatchRepository
	content content.Repository
	audit   audit.Repository
}

// NewService creates a new dashboard Service
func NewService(items inventory.ItemRepository, batches training.BatchRepository, contentRepo content.Repository, auditRepo audit.Repository) *Service {
	return &Service{items: items, batches: batches, content: contentRepo, audit: auditRepo}
}

// Stats collects the counters for user
func (s *Service) Stats(ctx context.Context, user *identity.User) (*Stats, error) {
	kits, err := s.items.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}
	batches, err := s.batches.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count batches: %w", err)
	}
	cs, err := s.content.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("content stats: %w", err)
	}
	logs, err := s.audit.Recent(ctx, recentLogCount)
	if err != nil {
		return nil, fmt.Errorf("recent audits: %w", err)
	}

	recent := make([]RecentLog, len(logs))
	for i := range logs {
		recent[i] = RecentLog{
			Action: logs[i].Action,
			User:   logs[i].ActorLabel(),
			Time:   logs[i].Timestamp.UTC().Format(timeLayout),
		}
	}

	return &Stats{
		Inventory:        kits,
		Batches:          batches,
		ContentTotal:     cs.Total,
		ContentPractical: cs.Practical,
		ContentPedagogy:  cs.Pedagogy,
		PendingSyncs:     cs.Unsynced,
		UserRole:         user.Role.String(),
		RecentLogs:       recent,
	}, nil
}
