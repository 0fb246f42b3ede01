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
	Enabled         bool
	LogFullSQL      bool          // include bound query variables in spans
	SlowQueryThresh time.Duration // queries slower than this get a slow_query event
	DBSystem        string
}

// DefaultDBTracingConfig returns default configuration for database tracing.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		Enabled:         false,
		LogFullSQL:      false,
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        "postgresql",
	}
}

type queryStartKey struct{}

// RegisterDBTracing installs the otelgorm plugin plus callbacks that annotate each query span
// with the affected table, row count, errors and slow query markers.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBSystem)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	cb := db.Callback()
	before := map[string]func(string, func(*gorm.DB)) error{
		"otel_timing:before_create": cb.Create().Before("gorm:create").Register,
		"otel_timing:before_query":  cb.Query().Before("gorm:query").Register,
		"otel_timing:before_update": cb.Update().Before("gorm:update").Register,
		"otel_timing:before_delete": cb.Delete().Before("gorm:delete").Register,
		"otel_timing:before_row":    cb.Row().Before("gorm:row").Register,
		"otel_timing:before_raw":    cb.Raw().Before("gorm:raw").Register,
	}
	for name, register := range before {
		if err := register(name, markQueryStart); err != nil {
			return err
		}
	}

	// Annotation has to run while the otelgorm span is still open.
	annotate := queryAnnotator(cfg.SlowQueryThresh)
	after := map[string]func(string, func(*gorm.DB)) error{
		"otel_timing:after_create": cb.Create().After("gorm:create").Before("otel:after_create").Register,
		"otel_timing:after_query":  cb.Query().After("gorm:query").Before("otel:after_query").Register,
		"otel_timing:after_update": cb.Update().After("gorm:update").Before("otel:after_update").Register,
		"otel_timing:after_delete": cb.Delete().After("gorm:delete").Before("otel:after_delete").Register,
		"otel_timing:after_row":    cb.Row().After("gorm:row").Before("otel:after_row").Register,
		"otel_timing:after_raw":    cb.Raw().After("gorm:raw").Before("otel:after_raw").Register,
	}
	for name, register := range after {
		if err := register(name, annotate); err != nil {
			return err
		}
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.LogFullSQL),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh),
		zap.String("db_system", cfg.DBSystem),
	)
	return nil
}

func markQueryStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, time.Now())
	}
}

func queryAnnotator(slowThreshold time.Duration) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			return
		}
		span := trace.SpanFromContext(ctx)
		if !span.IsRecording() {
			return
		}

		if db.Statement.RowsAffected >= 0 {
			span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
		}
		if db.Statement.Table != "" {
			span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
		}
		if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, db.Error.Error())
			span.RecordError(db.Error)
		}

		start, ok := ctx.Value(queryStartKey{}).(time.Time)
		if !ok {
			return
		}
		if elapsed := time.Since(start); elapsed > slowThreshold {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
			span.AddEvent("slow_query_warning", trace.WithAttributes(
				attribute.Int64("duration_ms", elapsed.Milliseconds()),
				attribute.Int64("threshold_ms", slowThreshold.Milliseconds()),
			))
		}
	}
}
