package storage_logger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// slowQueryThreshold - queries slower than this are logged as warnings
const slowQueryThreshold = 200 * time.Millisecond

// GormSlogLogger is a GORM logger that writes through slog.Logger.
type GormSlogLogger struct {
	logger *slog.Logger
	level  logger.LogLevel
}

// NewGormSlogLogger creates a new GormSlogLogger instance.
func NewGormSlogLogger(slog *slog.Logger) *GormSlogLogger {
	return &GormSlogLogger{
		logger: slog,
		level:  logger.Info,
	}
}

// LogMode returns a copy of the logger with the given level.
func (l *GormSlogLogger) LogMode(level logger.LogLevel) logger.Interface {
	copied := *l
	copied.level = level
	return &copied
}

func (l *GormSlogLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Info {
		l.logger.DebugContext(ctx, msg, slog.Any("data", data))
	}
}

func (l *GormSlogLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Warn {
		l.logger.WarnContext(ctx, msg, slog.Any("data", data))
	}
}

func (l *GormSlogLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Error {
		l.logger.ErrorContext(ctx, msg, slog.Any("data", data))
	}
}

// Trace logs SQL queries with their execution time, affected rows, and errors.
func (l *GormSlogLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	attrs := []any{slog.String("sql", sql), slog.Int64("rows", rows), slog.Duration("elapsed", elapsed)}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= logger.Error:
		l.logger.ErrorContext(ctx, "SQL execution error", append(attrs, slog.Any("err", err))...)
	case elapsed > slowQueryThreshold && l.level >= logger.Warn:
		l.logger.WarnContext(ctx, "Slow SQL", attrs...)
	case l.level >= logger.Info:
		l.logger.DebugContext(ctx, "SQL executed", attrs...)
	}
}
