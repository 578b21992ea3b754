package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/samarth/backend/internal/application/uow"
	"github.com/samarth/backend/internal/domain/audit"
	"github.com/samarth/backend/internal/domain/inventory"
	"github.com/samarth/backend/internal/domain/shared"
	"github.com/samarth/backend/internal/infrastructure/persistence/persistencetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormTransactionScope_Execute(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	createKit := func(repos uow.Repositories, kitID string) error {
		item := newTestItem(t, kitID)
		if err := repos.Items().Create(ctx, item); err != nil {
			return err
		}
		tx, err := inventory.NewInitialAllocation(item, userID)
		if err != nil {
			return err
		}
		if err := repos.Transactions().Append(ctx, tx); err != nil {
			return err
		}
		entry, err := audit.NewLog(&userID, audit.ActionCreateInventory, item.CreationDetail())
		if err != nil {
			return err
		}
		return repos.Audit().Append(ctx, entry)
	}

	t.Run("commits every write when fn succeeds", func(t *testing.T) {
		db := persistencetest.NewDB(t)
		scope := NewGormTransactionScope(db)

		require.NoError(t, scope.Execute(ctx, func(repos uow.Repositories) error {
			return createKit(repos, "TEST-01")
		}))

		repos := Repositories(db)
		exists, err := repos.Items().ExistsByKitID(ctx, "TEST-01")
		require.NoError(t, err)
		assert.True(t, exists)
		txCount, err := repos.Transactions().CountByKitID(ctx, "TEST-01")
		require.NoError(t, err)
		assert.Equal(t, int64(1), txCount)
		audits, err := repos.Audit().CountByAction(ctx, audit.ActionCreateInventory)
		require.NoError(t, err)
		assert.Equal(t, int64(1), audits)
	})

	t.Run("rolls back the item when a later write fails", func(t *testing.T) {
		db := persistencetest.NewDB(t)
		scope := NewGormTransactionScope(db)
		boom := errors.New("audit store unavailable")

		err := scope.Execute(ctx, func(repos uow.Repositories) error {
			if err := createKit(repos, "TEST-01"); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		repos := Repositories(db)
		count, err := repos.Items().Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
		txCount, err := repos.Transactions().CountByKitID(ctx, "TEST-01")
		require.NoError(t, err)
		assert.Zero(t, txCount)
	})

	t.Run("duplicate kit leaves no provenance rows", func(t *testing.T) {
		db := persistencetest.NewDB(t)
		scope := NewGormTransactionScope(db)
		require.NoError(t, scope.Execute(ctx, func(repos uow.Repositories) error {
			return createKit(repos, "TEST-01")
		}))

		err := scope.Execute(ctx, func(repos uow.Repositories) error {
			return createKit(repos, "TEST-01")
		})
		require.ErrorIs(t, err, shared.ErrAlreadyExists)

		repos := Repositories(db)
		txCount, err := repos.Transactions().CountByKitID(ctx, "TEST-01")
		require.NoError(t, err)
		assert.Equal(t, int64(1), txCount)
		audits, err := repos.Audit().CountByAction(ctx, audit.ActionCreateInventory)
		require.NoError(t, err)
		assert.Equal(t, int64(1), audits)
	})
}
