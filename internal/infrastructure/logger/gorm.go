package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// GormConfig controls what the GORM adapter emits
type GormConfig struct {
	Level         gormlogger.LogLevel
	SlowThreshold time.Duration // zero disables slow query warnings
	LogNotFound   bool          // repositories map record-not-found to NOT_FOUND, so it is usually noise
}

// GormLogger adapts gorm's logger.Interface to zap.
// Query entries carry the request, owner and trace identifiers found on the context.
type GormLogger struct {
	base *zap.Logger
	cfg  GormConfig
}

// NewGormLogger creates a GORM logger writing under the "gorm" name
func NewGormLogger(zapLogger *zap.Logger, cfg GormConfig) *GormLogger {
	if zapLogger == nil {
		zapLogger = zap.NewNop()
	}
	return &GormLogger{base: zapLogger.Named("gorm"), cfg: cfg}
}

// LogMode returns a copy at the given level
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.cfg.Level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.cfg.Level >= gormlogger.Info {
		l.scoped(ctx).Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.cfg.Level >= gormlogger.Warn {
		l.scoped(ctx).Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.cfg.Level >= gormlogger.Error {
		l.scoped(ctx).Sugar().Errorf(msg, data...)
	}
}

// Trace logs one executed statement. Failures log at error, slow statements at warn,
// everything else at debug when the level is Info.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.cfg.Level <= gormlogger.Silent {
		return
	}
	if err != nil && !l.cfg.LogNotFound && errors.Is(err, gormlogger.ErrRecordNotFound) {
		return
	}

	elapsed := time.Since(begin)
	slow := l.cfg.SlowThreshold > 0 && elapsed > l.cfg.SlowThreshold
	failed := err != nil
	if !(failed && l.cfg.Level >= gormlogger.Error) &&
		!(slow && l.cfg.Level >= gormlogger.Warn) &&
		l.cfg.Level < gormlogger.Info {
		return
	}

	sql, rows := fc()
	log := l.scoped(ctx).With(
		zap.String("operation", statementKind(sql)),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	)

	switch {
	case failed && l.cfg.Level >= gormlogger.Error:
		log.Error("SQL Error", zap.Error(err))
	case slow && l.cfg.Level >= gormlogger.Warn:
		log.Warn("SLOW SQL", zap.Duration("threshold", l.cfg.SlowThreshold))
	case l.cfg.Level >= gormlogger.Info:
		log.Debug("SQL Query")
	}
}

func (l *GormLogger) scoped(ctx context.Context) *zap.Logger {
	log := l.base
	if requestID := GetRequestID(ctx); requestID != "" {
		log = log.With(zap.String("request_id", requestID))
	}
	if ownerID := GetOwnerID(ctx); ownerID != "" {
		log = log.With(zap.String("owner_id", ownerID))
	}
	return WithTraceContext(ctx, log)
}

// statementKind is the leading SQL keyword in lower case, e.g. "select"
func statementKind(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}

// MapGormLogLevel maps the application log level onto GORM's.
// debug and info both enable statement logging.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
