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

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled bool
	// LogFullSQL includes query parameters in spans. Dev only, they can
	// contain guest PII.
	LogFullSQL       bool
	SlowQueryThresh  time.Duration
	DBSystem         string
	WithoutVariables bool
}

// DefaultDBTracingConfig returns the tracing defaults: disabled,
// parameters redacted, 200ms slow query threshold.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		Enabled:          false,
		LogFullSQL:       false,
		SlowQueryThresh:  200 * time.Millisecond,
		DBSystem:         "postgresql",
		WithoutVariables: true,
	}
}

// DBTracingPlugin wires otelgorm into GORM and layers slow query
// detection on top of the spans it produces.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a database tracing plugin.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	return &DBTracingPlugin{
		config: cfg,
		logger: logger,
	}
}

// RegisterOtelGorm registers the otelgorm plugin plus timing callbacks
// on the given GORM instance. No-op when tracing is disabled.
func (p *DBTracingPlugin) RegisterOtelGorm(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{
		otelgorm.WithDBName(p.config.DBSystem),
	}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}

	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	// The after hooks run once otelgorm has opened the span, so the
	// annotations land on the query span itself
	err := registerQueryHooks(db, "otel_timing", p.markStart, func(string) func(*gorm.DB) {
		return p.annotateSpan
	})
	if err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
		zap.String("db_system", p.config.DBSystem),
	)
	return nil
}

func (p *DBTracingPlugin) markStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = WithQueryStartTime(db.Statement.Context)
	}
}

// annotateSpan enriches the active query span with row counts, table
// name, errors and slow query markers.
func (p *DBTracingPlugin) annotateSpan(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}

	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}

	// Not-found is an expected outcome, not a span error
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	if startTime, ok := ctx.Value(queryStartTimeKey).(time.Time); ok {
		elapsed := time.Since(startTime)
		if elapsed > p.config.SlowQueryThresh {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
			span.AddEvent("slow_query_warning", trace.WithAttributes(
				attribute.Int64("duration_ms", elapsed.Milliseconds()),
				attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
			))
		}
	}
}

type timingContextKey string

const queryStartTimeKey timingContextKey = "otel_query_start_time"

// WithQueryStartTime stamps the context with the current time so the
// after hooks can compute query duration.
func WithQueryStartTime(ctx context.Context) context.Context {
	return context.WithValue(ctx, queryStartTimeKey, time.Now())
}

// registerQueryHooks installs before and after callbacks on every GORM
// operation type. The after factory receives the operation name so
// callers can vary behavior per operation.
func registerQueryHooks(db *gorm.DB, prefix string, before func(*gorm.DB), after func(op string) func(*gorm.DB)) error {
	cb := db.Callback()

	regs := []func() error{
		func() error {
			return cb.Create().Before("gorm:create").Register(prefix+":before_create", before)
		},
		func() error {
			return cb.Query().Before("gorm:query").Register(prefix+":before_query", before)
		},
		func() error {
			return cb.Update().Before("gorm:update").Register(prefix+":before_update", before)
		},
		func() error {
			return cb.Delete().Before("gorm:delete").Register(prefix+":before_delete", before)
		},
		func() error {
			return cb.Row().Before("gorm:row").Register(prefix+":before_row", before)
		},
		func() error {
			return cb.Raw().Before("gorm:raw").Register(prefix+":before_raw", before)
		},
		func() error {
			return cb.Create().After("gorm:create").Register(prefix+":after_create", after("create"))
		},
		func() error {
			return cb.Query().After("gorm:query").Register(prefix+":after_query", after("query"))
		},
		func() error {
			return cb.Update().After("gorm:update").Register(prefix+":after_update", after("update"))
		},
		func() error {
			return cb.Delete().After("gorm:delete").Register(prefix+":after_delete", after("delete"))
		},
		func() error {
			return cb.Row().After("gorm:row").Register(prefix+":after_row", after("row"))
		},
		func() error {
			return cb.Raw().After("gorm:raw").Register(prefix+":after_raw", after("raw"))
		},
	}

	for _, reg := range regs {
		if err := reg(); err != nil {
			return err
		}
	}
	return nil
}
