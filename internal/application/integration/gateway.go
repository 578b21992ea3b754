// Package integration pushes local records to the national NDU registry and
// keeps an append-only log of every call.
package integration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	appaudit "github.com/samarth/backend/internal/application/audit"
	"github.com/samarth/backend/internal/application/uow"
	"github.com/samarth/backend/internal/domain/audit"
	"github.com/samarth/backend/internal/domain/content"
	"github.com/samarth/backend/internal/domain/identity"
	"github.com/samarth/backend/internal/domain/integration"
	"github.com/samarth/backend/internal/domain/shared"
	"github.com/samarth/backend/internal/domain/training"
	"github.com/samarth/backend/internal/infrastructure/config"
	"github.com/samarth/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Messages returned to callers
const (
	MsgSynced         = "Successfully synced with NDU"
	MsgProgressSynced = "Progress synced with NDU"
)

const (
	defaultLogLimit = 50
	maxLogLimit     = 500
)

var (
	errSyncFailed         = shared.Upstream("Failed to sync with NDU")
	errProgressSyncFailed = shared.Upstream("Failed to sync progress with NDU")
	errDuplicateSync      = shared.Conflict("Duplicate sync request")
)

// exhaustedResponse is what the log records when no attempt got through
var exhaustedResponse = map[string]any{"error": "Gateway Timeout", "code": 504}

// Gateway synchronizes content, training programs and batch progress
type Gateway struct {
	registry integration.Registry
	content  content.Repository
	programs training.ProgramRepository
	batches  training.BatchRepository
	logs     integration.LogRepository
	txs      uow.TransactionScope
	cfg      config.SyncConfig
	idem     shared.IdempotencyStore
	metrics  *telemetry.SyncMetrics
	now      func() time.Time
	logger   *zap.Logger
}

// GatewayOption configures a Gateway
type GatewayOption func(*Gateway)

// WithIdempotencyStore enables Idempotency-Key handling
func WithIdempotencyStore(store shared.IdempotencyStore) GatewayOption {
	return func(g *Gateway) { g.idem = store }
}

// WithSyncMetrics records attempts and call durations
func WithSyncMetrics(m *telemetry.SyncMetrics) GatewayOption {
	return func(g *Gateway) { g.metrics = m }
}

// WithClock overrides the time source stamped into progress payloads
func WithClock(now func() time.Time) GatewayOption {
	return func(g *Gateway) { g.now = now }
}

// NewGateway creates a sync Gateway. A non-positive MaxRetries means one attempt.
func NewGateway(
	cfg config.SyncConfig,
	registry integration.Registry,
	repos uow.Repositories,
	txs uow.TransactionScope,
	logger *zap.Logger,
	opts ...GatewayOption,
) *Gateway {
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	g := &Gateway{
		registry: registry,
		content:  repos.Content(),
		programs: repos.Programs(),
		batches:  repos.Batches(),
		logs:     repos.IntegrationLogs(),
		txs:      txs,
		cfg:      cfg,
		now:      time.Now,
		logger:   logger.Named("sync"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SyncContent registers a content item and stores the NDU reference id
func (g *Gateway) SyncContent(ctx context.Context, id uuid.UUID, opts SyncOptions) (*SyncResponse, error) {
	item, err := g.content.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Content not found")
		}
		return nil, err
	}

	payload := map[string]any{
		"title":    item.Title,
		"category": item.Category,
		"duration": item.DurationMinutes,
		"source":   g.cfg.Source,
	}
	return g.syncRecord(ctx, integration.EndpointSyncContent, id, payload, opts, func(repos uow.Repositories, ref string) error {
		item.AssignReference(ref)
		return repos.Content().Update(ctx, item)
	})
}

// SyncTraining registers a training program and stores the NDU mapping id
func (g *Gateway) SyncTraining(ctx context.Context, id uuid.UUID, opts SyncOptions) (*SyncResponse, error) {
	program, err := g.programs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Training program not found")
		}
		return nil, err
	}

	payload := map[string]any{
		"program_name": program.Title,
		"instructor":   program.Instructor,
		"date":         program.Date,
		"participants": program.ParticipantsCount,
	}
	return g.syncRecord(ctx, integration.EndpointSyncTraining, id, payload, opts, func(repos uow.Repositories, ref string) error {
		program.AssignReference(ref)
		return repos.Programs().Update(ctx, program)
	})
}

// syncRecord delivers payload with retries. On success apply stores the
// reference id in the same unit of work as the SUCCESS log; on exhaustion
// only the FAILURE log is written.
func (g *Gateway) syncRecord(
	ctx context.Context,
	endpoint integration.Endpoint,
	recordID uuid.UUID,
	payload map[string]any,
	opts SyncOptions,
	apply func(repos uow.Repositories, ref string) error,
) (resp *SyncResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sync", endpoint.String(),
		attribute.String("record_id", recordID.String()))
	defer span.End()
	start := time.Now()

	release, err := g.claim(ctx, endpoint, recordID, opts)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	defer func() {
		if err != nil {
			release()
		}
	}()

	var (
		ack      *integration.Acknowledgement
		failures int
	)
	telemetry.WithProfilingLabels(ctx, map[string]string{"endpoint": endpoint.String()}, func(ctx context.Context) {
		ack, failures, err = g.deliver(ctx, endpoint, payload)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if ack == nil {
		g.finish(ctx, span, endpoint, integration.StatusFailure, start)
		entry, logErr := integration.NewLog(endpoint, payload, exhaustedResponse, integration.StatusFailure, integration.ErrMaxRetriesExceeded, failures)
		if logErr == nil {
			logErr = g.logs.Append(ctx, entry)
		}
		if logErr != nil {
			return nil, fmt.Errorf("record failed sync: %w", logErr)
		}
		g.logger.Warn("Sync failed after retries",
			zap.String("endpoint", endpoint.String()),
			zap.String("record_id", recordID.String()),
			zap.Int("attempts", failures),
		)
		return nil, errSyncFailed
	}

	err = g.txs.Execute(ctx, func(repos uow.Repositories) error {
		if err := apply(repos, ack.ReferenceID); err != nil {
			return fmt.Errorf("store reference: %w", err)
		}
		entry, err := integration.NewLog(endpoint, payload, ack.Body, integration.StatusSuccess, "", failures)
		if err != nil {
			return err
		}
		return repos.IntegrationLogs().Append(ctx, entry)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	g.finish(ctx, span, endpoint, integration.StatusSuccess, start)
	g.logger.Info("Record synced",
		zap.String("endpoint", endpoint.String()),
		zap.String("record_id", recordID.String()),
		zap.String("ndu_id", ack.ReferenceID),
		zap.Int("retries", failures),
	)
	return &SyncResponse{Message: MsgSynced, NDUID: ack.ReferenceID}, nil
}

// deliver submits up to MaxRetries times. A nil acknowledgement with a nil
// error means every attempt was refused. Errors other than a refused
// delivery abort immediately.
func (g *Gateway) deliver(ctx context.Context, endpoint integration.Endpoint, payload map[string]any) (*integration.Acknowledgement, int, error) {
	failures := 0
	for attempt := 1; attempt <= g.cfg.MaxRetries; attempt++ {
		ack, err := g.submit(ctx, endpoint, payload, attempt)
		if err == nil {
			return ack, failures, nil
		}
		if !errors.Is(err, integration.ErrDeliveryFailed) {
			return nil, failures, err
		}
		failures++
	}
	return nil, failures, nil
}

func (g *Gateway) submit(ctx context.Context, endpoint integration.Endpoint, payload map[string]any, attempt int) (*integration.Acknowledgement, error) {
	ctx, span := telemetry.StartClientSpan(ctx, "ndu.submit",
		telemetry.AttrEndpoint.String(endpoint.String()),
		attribute.Int("attempt", attempt),
	)
	defer span.End()

	ack, err := g.registry.Submit(ctx, integration.Submission{Endpoint: endpoint, Payload: payload, Attempt: attempt})
	status := integration.StatusSuccess
	if err != nil {
		status = integration.StatusFailure
		telemetry.RecordError(span, err)
	}
	if g.metrics != nil {
		g.metrics.RecordAttempt(ctx, endpoint, status)
	}
	return ack, err
}

// SyncProgress sends one progress update for a batch. The log row and the
// audit entry are committed whatever the outcome; a refused delivery is
// reported after they are stored.
func (g *Gateway) SyncProgress(ctx context.Context, batchID uuid.UUID, data map[string]any, actor *identity.User, opts SyncOptions) (resp *ProgressResponse, err error) {
	endpoint := integration.EndpointSyncProgress
	ctx, span := telemetry.StartServiceSpan(ctx, "sync", endpoint.String(),
		attribute.String("batch_id", batchID.String()))
	defer span.End()
	start := time.Now()

	exists, err := g.batches.Exists(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NotFound("Batch not found")
	}

	release, err := g.claim(ctx, endpoint, batchID, opts)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	defer func() {
		if err != nil {
			release()
		}
	}()

	payload := map[string]any{
		"type":      "BATCH_PROGRESS",
		"batch_id":  batchID.String(),
		"data":      data,
		"timestamp": g.now().UTC().Format(time.RFC3339),
	}

	status := integration.StatusSuccess
	failures := 0
	var body map[string]any
	ack, err := g.submit(ctx, endpoint, payload, 1)
	switch {
	case err == nil:
		body = ack.Body
	case errors.Is(err, integration.ErrDeliveryFailed):
		status = integration.StatusFailure
		failures = 1
		body = map[string]any{"error": "Sync Failed"}
	default:
		telemetry.RecordError(span, err)
		return nil, err
	}

	err = g.txs.Execute(ctx, func(repos uow.Repositories) error {
		entry, err := integration.NewLog(endpoint, payload, body, status, "", failures)
		if err != nil {
			return err
		}
		if err := repos.IntegrationLogs().Append(ctx, entry); err != nil {
			return err
		}
		return appaudit.Append(ctx, repos.Audit(), &actor.ID, audit.ActionSyncProgress,
			fmt.Sprintf("Synced progress for Batch %s: %s", batchID, status))
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	g.finish(ctx, span, endpoint, status, start)
	if status == integration.StatusFailure {
		g.logger.Warn("Progress sync refused", zap.String("batch_id", batchID.String()))
		return nil, errProgressSyncFailed
	}
	return &ProgressResponse{Message: MsgProgressSynced, Response: body}, nil
}

// Logs returns the newest integration log entries first
func (g *Gateway) Logs(ctx context.Context, limit int) ([]LogResponse, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	if limit > maxLogLimit {
		limit = maxLogLimit
	}
	entries, err := g.logs.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]LogResponse, len(entries))
	for i := range entries {
		out[i] = ToLogResponse(&entries[i])
	}
	return out, nil
}

// claim takes the idempotency key for this call, if any. The returned
// release frees it so a failed call can be retried with the same key.
func (g *Gateway) claim(ctx context.Context, endpoint integration.Endpoint, recordID uuid.UUID, opts SyncOptions) (func(), error) {
	if g.idem == nil || opts.IdempotencyKey == "" {
		return func() {}, nil
	}

	key := fmt.Sprintf("sync:%s:%s:%s", endpoint, recordID, opts.IdempotencyKey)
	claimed, err := g.idem.Claim(ctx, key, g.cfg.IdempotencyTTL)
	if err != nil {
		return nil, fmt.Errorf("claim idempotency key: %w", err)
	}
	if !claimed {
		return nil, errDuplicateSync
	}

	return func() {
		// The request context may already be cancelled.
		if err := g.idem.Release(context.WithoutCancel(ctx), key); err != nil {
			g.logger.Warn("Failed to release idempotency key", zap.String("key", key), zap.Error(err))
		}
	}, nil
}

func (g *Gateway) finish(ctx context.Context, span trace.Span, endpoint integration.Endpoint, status integration.Status, start time.Time) {
	span.SetAttributes(telemetry.AttrStatus.String(string(status)))
	if status == integration.StatusSuccess {
		telemetry.SetOK(span)
	} else {
		telemetry.RecordError(span, integration.ErrDeliveryFailed)
	}
	if g.metrics != nil {
		g.metrics.RecordCall(ctx, endpoint, status, time.Since(start))
	}
}
