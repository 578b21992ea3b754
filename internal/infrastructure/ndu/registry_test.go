package ndu

import (
	"context"
	"regexp"
	"testing"

	"github.com/samarth/backend/internal/domain/integration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submission(endpoint integration.Endpoint, attempt int) integration.Submission {
	return integration.Submission{Endpoint: endpoint, Payload: map[string]any{"title": "x"}, Attempt: attempt}
}

func TestMockRegistry_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("content acknowledgement", func(t *testing.T) {
		r := NewMockRegistry(WithReferences(SequenceReference("0A1B2C3D")))

		ack, err := r.Submit(ctx, submission(integration.EndpointSyncContent, 1))

		require.NoError(t, err)
		assert.Equal(t, "NDU-0A1B2C3D", ack.ReferenceID)
		assert.Equal(t, "Synced", ack.Body["status"])
		assert.Equal(t, "Content received successfully", ack.Body["message"])
		assert.Equal(t, "NDU-0A1B2C3D", ack.Body["id"])
	})

	t.Run("training acknowledgement", func(t *testing.T) {
		r := NewMockRegistry(WithReferences(SequenceReference("DEADBEEF")))

		ack, err := r.Submit(ctx, submission(integration.EndpointSyncTraining, 1))

		require.NoError(t, err)
		assert.Equal(t, "NDU-TR-DEADBEEF", ack.ReferenceID)
		assert.Equal(t, "Scheduled", ack.Body["status"])
		assert.Equal(t, "Training program registered", ack.Body["message"])
	})

	t.Run("progress acknowledgement has no reference", func(t *testing.T) {
		r := NewMockRegistry()

		ack, err := r.Submit(ctx, submission(integration.EndpointSyncProgress, 1))

		require.NoError(t, err)
		assert.Empty(t, ack.ReferenceID)
		assert.Equal(t, map[string]any{"status": "ACK", "message": "Progress Updated"}, ack.Body)
	})

	t.Run("failing endpoint", func(t *testing.T) {
		r := NewMockRegistry(WithOutcome(integration.EndpointSyncContent, AlwaysFail()))

		_, err := r.Submit(ctx, submission(integration.EndpointSyncContent, 1))
		assert.ErrorIs(t, err, integration.ErrDeliveryFailed)

		_, err = r.Submit(ctx, submission(integration.EndpointSyncTraining, 1))
		assert.NoError(t, err)
	})

	t.Run("outcome can be swapped at runtime", func(t *testing.T) {
		r := NewMockRegistry()
		r.SetOutcome(integration.EndpointSyncProgress, AlwaysFail())

		_, err := r.Submit(ctx, submission(integration.EndpointSyncProgress, 1))
		assert.ErrorIs(t, err, integration.ErrDeliveryFailed)
	})

	t.Run("unknown endpoint", func(t *testing.T) {
		_, err := NewMockRegistry().Submit(ctx, submission(integration.Endpoint("SYNC_OTHER"), 1))
		assert.Error(t, err)
		assert.NotErrorIs(t, err, integration.ErrDeliveryFailed)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := NewMockRegistry().Submit(cctx, submission(integration.EndpointSyncContent, 1))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestOutcomes(t *testing.T) {
	t.Run("succeed on attempt", func(t *testing.T) {
		o := SucceedOnAttempt(3)

		assert.False(t, o.Succeeds(submission(integration.EndpointSyncContent, 1)))
		assert.False(t, o.Succeeds(submission(integration.EndpointSyncContent, 2)))
		assert.True(t, o.Succeeds(submission(integration.EndpointSyncContent, 3)))
		assert.Equal(t, "attempt-3", o.Name())
	})

	t.Run("weighted extremes", func(t *testing.T) {
		never := Weighted(0, 1)
		always := Weighted(1, 1)
		for i := 0; i < 50; i++ {
			assert.False(t, never.Succeeds(submission(integration.EndpointSyncProgress, 1)))
			assert.True(t, always.Succeeds(submission(integration.EndpointSyncProgress, 1)))
		}
	})

	t.Run("weighted is reproducible for a seed", func(t *testing.T) {
		a := Weighted(0.5, 42)
		b := Weighted(0.5, 42)
		for i := 0; i < 20; i++ {
			s := submission(integration.EndpointSyncProgress, 1)
			assert.Equal(t, a.Succeeds(s), b.Succeeds(s))
		}
	})

	t.Run("two in three progress attempts succeed", func(t *testing.T) {
		o := Weighted(2.0/3, 7)
		const n = 3000
		ok := 0
		for i := 0; i < n; i++ {
			if o.Succeeds(submission(integration.EndpointSyncProgress, 1)) {
				ok++
			}
		}
		assert.InDelta(t, 2.0/3, float64(ok)/n, 0.05)
	})

	tests := []struct {
		name    string
		wantErr bool
		want    string
	}{
		{name: "always", want: "always"},
		{name: "weighted", want: "weighted-0.67"},
		{name: "sometimes", wantErr: true},
	}
	for _, tt := range tests {
		t.Run("from config "+tt.name, func(t *testing.T) {
			o, err := OutcomeFromConfig(tt.name, 2.0/3, 7)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, o.Name())
		})
	}
}

func TestRandomReference(t *testing.T) {
	pattern := regexp.MustCompile(`^NDU-TR-[0-9A-F]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		ref := RandomReference(TrainingPrefix)
		assert.Regexp(t, pattern, ref)
		seen[ref] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestSequenceReference(t *testing.T) {
	g := SequenceReference("00000001")

	assert.Equal(t, "NDU-00000001", g(ContentPrefix))
	assert.Regexp(t, `^NDU-[0-9A-F]{8}$`, g(ContentPrefix))
}
