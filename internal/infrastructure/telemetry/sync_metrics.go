package telemetry

import (
	"context"
	"time"

	"github.com/samarth/backend/internal/domain/integration"
	"go.opentelemetry.io/otel/metric"
)

// Sync instrument names
const (
	MetricSyncAttempts = "samarth.sync.attempts"
	MetricSyncDuration = "samarth.sync.duration"
)

// SyncMetrics counts registry delivery attempts and times whole sync calls
type SyncMetrics struct {
	attempts *Counter
	duration *Histogram
}

// NewSyncMetrics creates the sync instruments on meter
func NewSyncMetrics(meter metric.Meter) (*SyncMetrics, error) {
	attempts, err := NewCounter(meter, MetricSyncAttempts, "Registry delivery attempts", "{attempt}")
	if err != nil {
		return nil, err
	}
	duration, err := NewHistogram(meter, HistogramOpts{
		Name:        MetricSyncDuration,
		Description: "Duration of a sync call including retries",
		Unit:        "s",
		Boundaries:  []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})
	if err != nil {
		return nil, err
	}
	return &SyncMetrics{attempts: attempts, duration: duration}, nil
}

// RecordAttempt counts one delivery attempt and its outcome
func (m *SyncMetrics) RecordAttempt(ctx context.Context, endpoint integration.Endpoint, status integration.Status) {
	m.attempts.Inc(ctx, AttrEndpoint.String(endpoint.String()), AttrStatus.String(string(status)))
}

// RecordCall records how long a whole sync call took
func (m *SyncMetrics) RecordCall(ctx context.Context, endpoint integration.Endpoint, status integration.Status, d time.Duration) {
	m.duration.RecordDuration(ctx, d, AttrEndpoint.String(endpoint.String()), AttrStatus.String(string(status)))
}
