package persistence

import (
	"context"

	"github.com/samarth/backend/internal/application/uow"
	"github.com/samarth/backend/internal/domain/audit"
	"github.com/samarth/backend/internal/domain/content"
	"github.com/samarth/backend/internal/domain/identity"
	"github.com/samarth/backend/internal/domain/integration"
	"github.com/samarth/backend/internal/domain/inventory"
	"github.com/samarth/backend/internal/domain/training"
	"gorm.io/gorm"
)

// GormTransactionScope implements uow.TransactionScope using GORM transactions.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction, committing when it returns nil.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos uow.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositories{tx: tx})
	})
}

// gormRepositories builds repositories bound to one transaction handle.
type gormRepositories struct {
	tx *gorm.DB
}

func (r *gormRepositories) Users() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

func (r *gormRepositories) Items() inventory.ItemRepository {
	return NewGormInventoryItemRepository(r.tx)
}

func (r *gormRepositories) Transactions() inventory.TransactionRepository {
	return NewGormInventoryTransactionRepository(r.tx)
}

func (r *gormRepositories) Programs() training.ProgramRepository {
	return NewGormProgramRepository(r.tx)
}

func (r *gormRepositories) Batches() training.BatchRepository {
	return NewGormBatchRepository(r.tx)
}

func (r *gormRepositories) Content() content.Repository {
	return NewGormContentRepository(r.tx)
}

func (r *gormRepositories) Audit() audit.Repository {
	return NewGormAuditRepository(r.tx)
}

func (r *gormRepositories) IntegrationLogs() integration.LogRepository {
	return NewGormIntegrationLogRepository(r.tx)
}

// Repositories bundles the non-transactional repositories over db, for reads
// and for wiring services.
func Repositories(db *gorm.DB) *uow.Set {
	return &uow.Set{
		UserRepo:           NewGormUserRepository(db),
		ItemRepo:           NewGormInventoryItemRepository(db),
		TransactionRepo:    NewGormInventoryTransactionRepository(db),
		ProgramRepo:        NewGormProgramRepository(db),
		BatchRepo:          NewGormBatchRepository(db),
		ContentRepo:        NewGormContentRepository(db),
		AuditRepo:          NewGormAuditRepository(db),
		IntegrationLogRepo: NewGormIntegrationLogRepository(db),
	}
}

var (
	_ uow.TransactionScope = (*GormTransactionScope)(nil)
	_ uow.Repositories     = (*gormRepositories)(nil)
)
