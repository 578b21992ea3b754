package telemetry

import (
	"context"
	"database/sql"
	"testing"

	"github.com/samarth/backend/internal/domain/integration"
	"github.com/samarth/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetup_Disabled(t *testing.T) {
	ctx := context.Background()

	tel, err := Setup(ctx, config.TelemetryConfig{ServiceName: "samarth-test"}, zap.NewNop())

	require.NoError(t, err)
	assert.False(t, tel.Tracer.IsEnabled())
	assert.False(t, tel.Meter.IsEnabled())
	assert.False(t, tel.Logs.IsEnabled())
	assert.False(t, tel.Profiler.IsEnabled())
	assert.Nil(t, tel.Logs.ZapCore("samarth-test", zapcore.InfoLevel))
	assert.NotNil(t, tel.Meter.Meter("test"))
	assert.NoError(t, tel.Shutdown(ctx))
	assert.NoError(t, tel.Profiler.Stop())
}

func TestSampler(t *testing.T) {
	assert.Contains(t, sampler(1).Description(), "AlwaysOnSampler")
	assert.Equal(t, "AlwaysOffSampler", sampler(0).Description())
	assert.Contains(t, sampler(0.25).Description(), "TraceIDRatioBased")
}

func newTestMeter(t *testing.T) (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return reader, provider
}

func collect(t *testing.T, reader *sdkmetric.ManualReader, name string) metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m.Data
			}
		}
	}
	t.Fatalf("metric %s not collected", name)
	return nil
}

func TestSyncMetrics(t *testing.T) {
	ctx := context.Background()
	reader, provider := newTestMeter(t)

	m, err := NewSyncMetrics(provider.Meter("test"))
	require.NoError(t, err)

	m.RecordAttempt(ctx, integration.EndpointSyncContent, integration.StatusFailure)
	m.RecordAttempt(ctx, integration.EndpointSyncContent, integration.StatusFailure)
	m.RecordAttempt(ctx, integration.EndpointSyncContent, integration.StatusSuccess)

	sum, ok := collect(t, reader, MetricSyncAttempts).(metricdata.Sum[int64])
	require.True(t, ok)

	byStatus := map[string]int64{}
	for _, dp := range sum.DataPoints {
		endpoint, _ := dp.Attributes.Value(AttrEndpoint)
		assert.Equal(t, "SYNC_CONTENT", endpoint.AsString())
		status, _ := dp.Attributes.Value(AttrStatus)
		byStatus[status.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"FAILURE": 2, "SUCCESS": 1}, byStatus)
}

func TestRegisterDBPoolMetrics(t *testing.T) {
	reader, provider := newTestMeter(t)

	reg, err := RegisterDBPoolMetrics(provider.Meter("test"), func() sql.DBStats {
		return sql.DBStats{MaxOpenConnections: 25, InUse: 3, Idle: 2, WaitCount: 7}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = reg.Unregister() })

	gauge, ok := collect(t, reader, "db.pool.connections").(metricdata.Gauge[int64])
	require.True(t, ok)
	byState := map[string]int64{}
	for _, dp := range gauge.DataPoints {
		state, _ := dp.Attributes.Value(AttrDBPoolState)
		byState[state.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"in_use": 3, "idle": 2}, byState)

	maxGauge, ok := collect(t, reader, "db.pool.connections.max").(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, maxGauge.DataPoints, 1)
	assert.Equal(t, int64(25), maxGauge.DataPoints[0].Value)
}

func TestLevelFilterCore(t *testing.T) {
	inner, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(&levelFilterCore{Core: inner, minLevel: zapcore.WarnLevel}).With(zap.String("k", "v"))

	log.Info("dropped")
	log.Warn("kept")
	log.Error("kept too")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "kept", logs.All()[0].Message)
	assert.Equal(t, "v", logs.All()[0].ContextMap()["k"])
}

func TestSanitizeLabels(t *testing.T) {
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}

	pairs := sanitizeLabels(map[string]string{
		"operation":  "sync_content",
		"endpoint":   "SYNC_CONTENT",
		"user_id":    "42",
		"empty":      "",
		" ":          "blank key",
		"long_value": string(long),
	})

	require.Len(t, pairs, 6)
	assert.Equal(t, []string{"endpoint", "SYNC_CONTENT", "long_value"}, pairs[:3])
	assert.Len(t, pairs[3], maxLabelValueLength)
	assert.Equal(t, []string{"operation", "sync_content"}, pairs[4:])
}

func TestWithProfilingLabels_RunsFunction(t *testing.T) {
	called := 0
	WithProfilingLabels(context.Background(), map[string]string{"operation": "x"}, func(context.Context) { called++ })
	WithProfilingLabels(context.Background(), nil, func(context.Context) { called++ })
	assert.Equal(t, 2, called)
}

func TestToAttribute(t *testing.T) {
	assert.Equal(t, attribute.String("a", "x"), toAttribute("a", "x"))
	assert.Equal(t, attribute.Int("a", 3), toAttribute("a", 3))
	assert.Equal(t, attribute.Bool("a", true), toAttribute("a", true))
	assert.Equal(t, attribute.String("a", "SYNC_TRAINING"), toAttribute("a", integration.EndpointSyncTraining))
}
