package content

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/samarth/backend/internal/application/uow"
	"github.com/samarth/backend/internal/domain/audit"
	"github.com/samarth/backend/internal/domain/content"
	"github.com/samarth/backend/internal/domain/identity"
	"github.com/samarth/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) Create(ctx context.Context, item *content.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockContentRepository) Update(ctx context.Context, item *content.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockContentRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.Item), args.Error(1)
}

func (m *MockContentRepository) List(ctx context.Context, page shared.Page) ([]content.Item, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]content.Item), args.Error(1)
}

func (m *MockContentRepository) Stats(ctx context.Context) (content.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(content.Stats), args.Error(1)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Append(ctx context.Context, entry *audit.Log) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockAuditRepository) Recent(ctx context.Context, limit int) ([]audit.Log, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]audit.Log), args.Error(1)
}

func (m *MockAuditRepository) CountByAction(ctx context.Context, action string) (int64, error) {
	args := m.Called(ctx, action)
	return args.Get(0).(int64), args.Error(1)
}

func newService() (*Service, *MockContentRepository, *MockAuditRepository) {
	repo := new(MockContentRepository)
	auditRepo := new(MockAuditRepository)
	txs := uow.NewNoOpTransactionScope(&uow.Set{ContentRepo: repo, AuditRepo: auditRepo})
	return NewService(repo, txs, zap.NewNop()), repo, auditRepo
}

func testActor() *identity.User {
	return &identity.User{BaseEntity: shared.NewBaseEntity(), Username: "reviewer", Role: identity.RoleSuperAdmin, Active: true}
}

func auditWith(action, details string) any {
	return mock.MatchedBy(func(l *audit.Log) bool {
		return l.Action == action && l.Details == details
	})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes category and audits", func(t *testing.T) {
		svc, repo, auditRepo := newService()
		repo.On("Create", ctx, mock.AnythingOfType("*content.Item")).Return(nil)
		auditRepo.On("Append", ctx, auditWith(audit.ActionCreateContent, "Created Content: Wiring 101")).Return(nil)

		resp, err := svc.Create(ctx, CreateContentRequest{Title: "Wiring 101", Category: "practical", DurationMinutes: 45}, testActor())
		require.NoError(t, err)
		assert.Equal(t, "Practical", resp.Category)
		assert.Equal(t, "Pending", resp.ApprovalStatus)
		repo.AssertExpectations(t)
		auditRepo.AssertExpectations(t)
	})

	t.Run("non-positive duration is invalid", func(t *testing.T) {
		svc, repo, _ := newService()
		_, err := svc.Create(ctx, CreateContentRequest{Title: "X", Category: "Pedagogy"}, testActor())
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestService_Review(t *testing.T) {
	ctx := context.Background()

	newItem := func(t *testing.T, complete bool) *content.Item {
		item, err := content.NewItem(content.NewItemParams{
			Title: "Wiring 101", Category: "Practical", DurationMinutes: 30,
			Flags: content.QualityFlags{
				HasSafetyChecklist: true,
				HasTroubleshooting: true,
				HasAssessmentCues:  true,
				QualityChecked:     complete,
			},
		})
		require.NoError(t, err)
		return item
	}

	t.Run("approves when every check is complete", func(t *testing.T) {
		svc, repo, auditRepo := newService()
		item := newItem(t, true)
		repo.On("FindByID", ctx, item.ID).Return(item, nil)
		repo.On("Update", ctx, item).Return(nil)
		auditRepo.On("Append", ctx, auditWith(audit.ActionReviewContent, "Content Wiring 101 marked Approved")).Return(nil)

		resp, err := svc.Approve(ctx, item.ID, testActor())
		require.NoError(t, err)
		assert.Equal(t, "Approved", resp.ApprovalStatus)
		auditRepo.AssertExpectations(t)
	})

	t.Run("refuses approval with a missing check", func(t *testing.T) {
		svc, repo, auditRepo := newService()
		item := newItem(t, false)
		repo.On("FindByID", ctx, item.ID).Return(item, nil)

		_, err := svc.Approve(ctx, item.ID, testActor())
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		auditRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("rejects regardless of checks", func(t *testing.T) {
		svc, repo, auditRepo := newService()
		item := newItem(t, false)
		repo.On("FindByID", ctx, item.ID).Return(item, nil)
		repo.On("Update", ctx, item).Return(nil)
		auditRepo.On("Append", ctx, auditWith(audit.ActionReviewContent, "Content Wiring 101 marked Rejected")).Return(nil)

		resp, err := svc.Reject(ctx, item.ID, testActor())
		require.NoError(t, err)
		assert.Equal(t, "Rejected", resp.ApprovalStatus)
	})

	t.Run("unknown content", func(t *testing.T) {
		svc, repo, _ := newService()
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := svc.Reject(ctx, id, testActor())
		require.ErrorIs(t, err, shared.ErrNotFound)
		assert.Equal(t, "Content not found", err.Error())
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newService()
	repo.On("List", ctx, shared.Page{Offset: 0, Limit: 100}).Return([]content.Item{}, nil)

	out, err := svc.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, out)
	repo.AssertExpectations(t)
}
