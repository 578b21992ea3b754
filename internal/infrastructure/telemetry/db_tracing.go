package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig configures GORM span export
type DBTracingConfig struct {
	Enabled       bool
	LogFullSQL    bool // include bound variables in db.statement
	SlowThreshold time.Duration
	DBSystem      string
}

type dbContextKey string

const queryStartKey dbContextKey = "samarth.db.query_start"

// RegisterDBTracing installs the otelgorm plugin and a callback pair that
// flags slow statements and records errors on the statement span
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.SlowThreshold <= 0 {
		cfg.SlowThreshold = 200 * time.Millisecond
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBSystem)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey, time.Now())
		}
	}
	after := func(tx *gorm.DB) { annotateStatement(tx, cfg.SlowThreshold) }

	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register("samarth:before_create", before); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("samarth:before_query", before); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("samarth:before_update", before); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("samarth:before_delete", before); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register("samarth:before_raw", before); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("samarth:after_create", after); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("samarth:after_query", after); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("samarth:after_update", after); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("samarth:after_delete", after); err != nil {
		return err
	}
	if err := cb.Raw().After("gorm:raw").Register("samarth:after_raw", after); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.LogFullSQL),
		zap.Duration("slow_threshold", cfg.SlowThreshold),
		zap.String("db_system", cfg.DBSystem),
	)
	return nil
}

func annotateStatement(tx *gorm.DB, slow time.Duration) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", tx.Statement.RowsAffected))

	// Not-found and duplicate keys are answers, not failures
	if err := tx.Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, gorm.ErrDuplicatedKey) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if start, ok := ctx.Value(queryStartKey).(time.Time); ok {
		if elapsed := time.Since(start); elapsed > slow {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}
