package audit

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLog(t *testing.T) {
	t.Run("system entry has no actor", func(t *testing.T) {
		entry, err := NewLog(nil, ActionLoginFailure, "Failed login attempt for superadmin")

		require.NoError(t, err)
		assert.Nil(t, entry.UserID)
		assert.Equal(t, "System", entry.ActorLabel())
		assert.False(t, entry.Timestamp.IsZero())
	})

	t.Run("user entry renders id", func(t *testing.T) {
		id := uuid.MustParse("7f1c1b0e-4a36-4c2b-9a61-2d4f5e6a7b8c")
		entry, err := NewLog(&id, ActionCreateInventory, "Created Item Pi (Kit ID: TEST-01)")

		require.NoError(t, err)
		assert.Equal(t, "User 7f1c1b0e-4a36-4c2b-9a61-2d4f5e6a7b8c", entry.ActorLabel())
	})

	t.Run("rejects empty action", func(t *testing.T) {
		_, err := NewLog(nil, "", "x")
		assert.Error(t, err)
	})
}
