// Package content manages training content metadata and its review.
package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	appaudit "github.com/samarth/backend/internal/application/audit"
	"github.com/samarth/backend/internal/application/uow"
	"github.com/samarth/backend/internal/domain/audit"
	"github.com/samarth/backend/internal/domain/content"
	"github.com/samarth/backend/internal/domain/identity"
	"github.com/samarth/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var errContentNotFound = shared.NotFound("Content not found")

// Service handles content creation and review
type Service struct {
	repo   content.Repository
	txs    uow.TransactionScope
	logger *zap.Logger
}

// NewService creates a new content Service
func NewService(repo content.Repository, txs uow.TransactionScope, logger *zap.Logger) *Service {
	return &Service{repo: repo, txs: txs, logger: logger}
}

// List returns a page of content items
func (s *Service) List(ctx context.Context, offset, limit int) ([]ContentResponse, error) {
	items, err := s.repo.List(ctx, shared.NewPage(offset, limit))
	if err != nil {
		return nil, err
	}
	out := make([]ContentResponse, len(items))
	for i := range items {
		out[i] = ToContentResponse(&items[i])
	}
	return out, nil
}

// Create adds a pending content item
func (s *Service) Create(ctx context.Context, req CreateContentRequest, actor *identity.User) (*ContentResponse, error) {
	item, err := content.NewItem(content.NewItemParams{
		Title:           req.Title,
		Category:        req.Category,
		DurationMinutes: req.DurationMinutes,
		Tags:            req.Tags,
		NDUReferenceID:  req.NDUReferenceID,
		Flags: content.QualityFlags{
			HasSafetyChecklist: req.HasSafetyChecklist,
			HasTroubleshooting: req.HasTroubleshooting,
			HasAssessmentCues:  req.HasAssessmentCues,
			QualityChecked:     req.QualityChecked,
		},
	})
	if err != nil {
		return nil, err
	}

	err = s.txs.Execute(ctx, func(repos uow.Repositories) error {
		if err := repos.Content().Create(ctx, item); err != nil {
			return fmt.Errorf("create content: %w", err)
		}
		return appaudit.Append(ctx, repos.Audit(), &actor.ID, audit.ActionCreateContent, item.CreationDetail())
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Content created", zap.String("content_id", item.ID.String()))
	resp := ToContentResponse(item)
	return &resp, nil
}

// Approve marks content approved once every quality check is in place
func (s *Service) Approve(ctx context.Context, id uuid.UUID, actor *identity.User) (*ContentResponse, error) {
	return s.review(ctx, id, actor, (*content.Item).Approve)
}

// Reject marks content rejected
func (s *Service) Reject(ctx context.Context, id uuid.UUID, actor *identity.User) (*ContentResponse, error) {
	return s.review(ctx, id, actor, func(i *content.Item) error {
		i.Reject()
		return nil
	})
}

func (s *Service) review(ctx context.Context, id uuid.UUID, actor *identity.User, decide func(*content.Item) error) (*ContentResponse, error) {
	var item *content.Item
	err := s.txs.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		item, err = repos.Content().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return errContentNotFound
			}
			return err
		}
		if err := decide(item); err != nil {
			return err
		}
		if err := repos.Content().Update(ctx, item); err != nil {
			return fmt.Errorf("update content: %w", err)
		}
		return appaudit.Append(ctx, repos.Audit(), &actor.ID, audit.ActionReviewContent, item.ReviewDetail())
	})
	if err != nil {
		return nil, err
	}

	resp := ToContentResponse(item)
	return &resp, nil
}
