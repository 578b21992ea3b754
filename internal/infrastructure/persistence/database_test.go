package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/samarth/backend/internal/domain/shared"
	"github.com/samarth/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockGormDB opens GORM on the postgres dialector over a sqlmock connection
func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestSqliteDSN(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"samarth.db", "samarth.db?_foreign_keys=on"},
		{":memory:", ":memory:?_foreign_keys=on"},
		{"file:test.db?cache=shared", "file:test.db?cache=shared&_foreign_keys=on"},
		{"x.db?_foreign_keys=off", "x.db?_foreign_keys=off"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, sqliteDSN(tt.path))
		})
	}
}

func TestNewDatabase_SQLite(t *testing.T) {
	db, err := NewDatabase(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.True(t, db.IsSQLite())
	require.NoError(t, db.AutoMigrate(context.Background()))
	require.NoError(t, db.Ping(context.Background()))

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MaxOpenConnections)

	count, err := NewGormUserRepository(db.DB).Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDatabase_Ping(t *testing.T) {
	t.Run("successful ping", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()

		mock.ExpectPing()
		db := &Database{DB: gormDB, driver: "postgres"}

		assert.NoError(t, db.Ping(context.Background()))
		assert.False(t, db.IsSQLite())
	})
}

func TestDatabase_Stats(t *testing.T) {
	gormDB, _, mockDB := newMockGormDB(t)
	defer mockDB.Close()

	stats, err := (&Database{DB: gormDB}).Stats()
	assert.NoError(t, err)
	assert.Equal(t, time.Duration(0), stats.WaitDuration)
}

func TestGormUserRepository_SQL(t *testing.T) {
	t.Run("username lookup lowercases the argument", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()

		id := uuid.New()
		now := time.Now().UTC()
		rows := sqlmock.NewRows([]string{
			"id", "created_at", "updated_at", "username", "password_hash", "role", "full_name", "is_active",
		}).AddRow(id, now, now, "superadmin", "hash", "SUPER_ADMIN", "Super Administrator", true)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE LOWER\(username\) = \$1 ORDER BY "users"."id" LIMIT \$2`).
			WithArgs("superadmin", 1).
			WillReturnRows(rows)

		user, err := NewGormUserRepository(gormDB).FindByUsername(context.Background(), "  SuperAdmin ")
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "Super Administrator", user.FullName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row becomes ErrNotFound", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := NewGormUserRepository(gormDB).FindByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryItemRepository_SQL(t *testing.T) {
	t.Run("allocated count filters on batch link", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "inventory" WHERE batch_id IS NOT NULL`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := NewGormInventoryItemRepository(gormDB).CountAllocated(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(7), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete with no affected rows is not found", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM "inventory" WHERE id = \$1`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewGormInventoryItemRepository(gormDB).Delete(context.Background(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
