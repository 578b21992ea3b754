package training

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgram(t *testing.T) {
	t.Run("creates program", func(t *testing.T) {
		p, err := NewProgram(NewProgramParams{
			Title:             "Robotics Basics",
			Instructor:        "R. Das",
			Date:              "2024-03-20",
			ParticipantsCount: 25,
			Status:            "Scheduled",
		})

		require.NoError(t, err)
		assert.Equal(t, "Robotics Basics", p.Title)
		assert.False(t, p.IsSynced())
		assert.Equal(t, "Created Program Robotics Basics", p.CreationDetail())
		assert.Equal(t, "Deleted Program Robotics Basics", p.DeletionDetail())
	})

	t.Run("keeps provided reference", func(t *testing.T) {
		p, err := NewProgram(NewProgramParams{Title: "T", Instructor: "I", Status: "S", NDUMappingID: "NDU-TR-0000ABCD"})

		require.NoError(t, err)
		assert.True(t, p.IsSynced())
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := NewProgram(NewProgramParams{Instructor: "I", Status: "S"})
		assert.Error(t, err)

		_, err = NewProgram(NewProgramParams{Title: "T", Status: "S"})
		assert.Error(t, err)

		_, err = NewProgram(NewProgramParams{Title: "T", Instructor: "I"})
		assert.Error(t, err)

		_, err = NewProgram(NewProgramParams{Title: "T", Instructor: "I", Status: "S", ParticipantsCount: -2})
		assert.Error(t, err)
	})

	t.Run("assigns reference", func(t *testing.T) {
		p, err := NewProgram(NewProgramParams{Title: "T", Instructor: "I", Status: "S"})
		require.NoError(t, err)

		p.AssignReference("NDU-TR-12345678")

		require.NotNil(t, p.NDUMappingID)
		assert.Equal(t, "NDU-TR-12345678", *p.NDUMappingID)
	})
}

func TestNewBatch(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	t.Run("creates batch", func(t *testing.T) {
		b, err := NewBatch(uuid.New(), "Batch A", start, end, "Guwahati")

		require.NoError(t, err)
		assert.Equal(t, "Batch A", b.Name)
	})

	t.Run("rejects end before start", func(t *testing.T) {
		_, err := NewBatch(uuid.New(), "Batch A", end, start, "Guwahati")
		assert.Error(t, err)
	})

	t.Run("rejects missing training", func(t *testing.T) {
		_, err := NewBatch(uuid.Nil, "Batch A", start, end, "Guwahati")
		assert.Error(t, err)
	})
}

func TestNewAttendance(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	batch, err := NewBatch(uuid.New(), "Batch A", start, end, "Guwahati")
	require.NoError(t, err)
	participant, err := NewParticipant(batch.ID, "Asha", "asha@example.org", "")
	require.NoError(t, err)

	t.Run("records mark truncated to the day", func(t *testing.T) {
		a, err := NewAttendance(batch, participant, time.Date(2024, 3, 2, 14, 30, 0, 0, time.UTC), AttendancePresent)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), a.Date)
		assert.Equal(t, "Recorded attendance for Asha on 2024-03-02: PRESENT", a.Detail(participant.Name))
	})

	t.Run("rejects participant from another batch", func(t *testing.T) {
		other, err := NewParticipant(uuid.New(), "Ravi", "", "")
		require.NoError(t, err)

		_, err = NewAttendance(batch, other, start, AttendancePresent)
		assert.Error(t, err)
	})

	t.Run("rejects date outside schedule", func(t *testing.T) {
		_, err := NewAttendance(batch, participant, end.AddDate(0, 0, 1), AttendanceAbsent)
		assert.Error(t, err)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := NewAttendance(batch, participant, start, AttendanceStatus("LATE"))
		assert.Error(t, err)
	})
}
