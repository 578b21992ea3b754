// Package uow defines the unit-of-work boundary used by application services.
// A mutation and the audit or provenance rows that describe it are written
// through the same Repositories so they commit or roll back together.
package uow

import (
	"context"

	"github.com/samarth/backend/internal/domain/audit"
	"github.com/samarth/backend/internal/domain/content"
	"github.com/samarth/backend/internal/domain/identity"
	"github.com/samarth/backend/internal/domain/integration"
	"github.com/samarth/backend/internal/domain/inventory"
	"github.com/samarth/backend/internal/domain/training"
)

// TransactionScope runs fn inside one database transaction. A non-nil error
// from fn rolls back every write made through repos.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories gives access to every repository bound to the current transaction
type Repositories interface {
	Users() identity.UserRepository
	Items() inventory.ItemRepository
	Transactions() inventory.TransactionRepository
	Programs() training.ProgramRepository
	Batches() training.BatchRepository
	Content() content.Repository
	Audit() audit.Repository
	IntegrationLogs() integration.LogRepository
}

// Set is a plain bundle of repositories. It satisfies Repositories and is
// what NoOpTransactionScope hands to fn.
type Set struct {
	UserRepo           identity.UserRepository
	ItemRepo           inventory.ItemRepository
	TransactionRepo    inventory.TransactionRepository
	ProgramRepo        training.ProgramRepository
	BatchRepo          training.BatchRepository
	ContentRepo        content.Repository
	AuditRepo          audit.Repository
	IntegrationLogRepo integration.LogRepository
}

func (s *Set) Users() identity.UserRepository                { return s.UserRepo }
func (s *Set) Items() inventory.ItemRepository               { return s.ItemRepo }
func (s *Set) Transactions() inventory.TransactionRepository { return s.TransactionRepo }
func (s *Set) Programs() training.ProgramRepository          { return s.ProgramRepo }
func (s *Set) Batches() training.BatchRepository             { return s.BatchRepo }
func (s *Set) Content() content.Repository                   { return s.ContentRepo }
func (s *Set) Audit() audit.Repository                       { return s.AuditRepo }
func (s *Set) IntegrationLogs() integration.LogRepository    { return s.IntegrationLogRepo }

// NoOpTransactionScope calls fn directly with a fixed repository set. Nothing
// is rolled back; it exists for unit tests that use mock repositories.
type NoOpTransactionScope struct {
	repos *Set
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over repos
func NewNoOpTransactionScope(repos *Set) *NoOpTransactionScope {
	return &NoOpTransactionScope{repos: repos}
}

// Execute runs fn without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos Repositories) error) error {
	return fn(s.repos)
}

var (
	_ Repositories     = (*Set)(nil)
	_ TransactionScope = (*NoOpTransactionScope)(nil)
)
