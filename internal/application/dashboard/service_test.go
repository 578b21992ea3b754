package dashboard

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/samarth/backend/internal/domain/audit"
	"github.com/samarth/backend/internal/domain/content"
	"github.com/samarth/backend/internal/domain/identity"
	"github.com/samarth/backend/internal/domain/inventory"
	"github.com/samarth/backend/internal/domain/training"
	"github.com/samarth/backend/internal/infrastructure/persistence"
	"github.com/samarth/backend/internal/infrastructure/persistence/persistencetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Stats(t *testing.T) {
	ctx := context.Background()
	db := persistencetest.NewDB(t)
	repos := persistence.Repositories(db)
	svc := NewService(repos.Items(), repos.Batches(), repos.Content(), repos.Audit())

	user, err := identity.NewUser("viewer", "password123", identity.RoleAdmin, "", identity.NewBcryptHasher(4))
	require.NoError(t, err)
	require.NoError(t, repos.Users().Create(ctx, user))

	t.Run("empty database", func(t *testing.T) {
		stats, err := svc.Stats(ctx, user)
		require.NoError(t, err)
		assert.Zero(t, stats.Inventory)
		assert.Zero(t, stats.ContentTotal)
		assert.Equal(t, "ADMIN", stats.UserRole)
		assert.Empty(t, stats.RecentLogs)
	})

	t.Run("counts and recent feed", func(t *testing.T) {
		for _, kit := range []string{"K1", "K2"} {
			item, err := inventory.NewItem(inventory.NewItemParams{KitID: kit, Name: "Kit", Category: "C"})
			require.NoError(t, err)
			require.NoError(t, repos.Items().Create(ctx, item))
		}

		program, err := training.NewProgram(training.NewProgramParams{Title: "P", Instructor: "I", Status: "Scheduled"})
		require.NoError(t, err)
		require.NoError(t, repos.Programs().Create(ctx, program))
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		batch, err := training.NewBatch(program.ID, "B", start, start, "L")
		require.NoError(t, err)
		require.NoError(t, repos.Batches().Create(ctx, batch))

		for _, p := range []content.NewItemParams{
			{Title: "A", Category: "practical", DurationMinutes: 10},
			{Title: "B", Category: "Pedagogy", DurationMinutes: 10, NDUReferenceID: "NDU-00000001"},
			{Title: "C", Category: "Other", DurationMinutes: 10},
		} {
			item, err := content.NewItem(p)
			require.NoError(t, err)
			require.NoError(t, repos.Content().Create(ctx, item))
		}

		for i := 0; i < 7; i++ {
			entry, err := audit.NewLog(nil, audit.ActionLoginFailure, "x")
			require.NoError(t, err)
			require.NoError(t, repos.Audit().Append(ctx, entry))
		}
		entry, err := audit.NewLog(&user.ID, audit.ActionLoginSuccess, "User logged in")
		require.NoError(t, err)
		require.NoError(t, repos.Audit().Append(ctx, entry))

		stats, err := svc.Stats(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.Inventory)
		assert.Equal(t, int64(1), stats.Batches)
		assert.Equal(t, int64(3), stats.ContentTotal)
		assert.Equal(t, int64(1), stats.ContentPractical)
		assert.Equal(t, int64(1), stats.ContentPedagogy)
		assert.Equal(t, int64(2), stats.PendingSyncs)

		require.Len(t, stats.RecentLogs, 5)
		assert.Equal(t, "LOGIN_SUCCESS", stats.RecentLogs[0].Action)
		assert.Equal(t, "User "+user.ID.String(), stats.RecentLogs[0].User)
		assert.Equal(t, "System", stats.RecentLogs[1].User)
		assert.Regexp(t, regexp.MustCompile(`^\d{2}:\d{2} \d{2}-[A-Z][a-z]{2}$`), stats.RecentLogs[0].Time)
	})
}
