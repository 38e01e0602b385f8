package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tasktrack/config"
	"tasktrack/internal/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

// queryLogger bridges gorm's logger interface onto slog. Queries are only
// reported when they fail or run past the slow threshold; record-not-found is
// an expected domain outcome and never logged as an error.
type queryLogger struct {
	logger        *slog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

func newQueryLogger(baseLogger *slog.Logger, cfg *config.Config) logger.Interface {
	level := logger.Warn
	slowThreshold := defaultSlowQueryThreshold
	if cfg != nil {
		if cfg.Env.Debug {
			level = logger.Info
		}
		if cfg.Postgres != nil && cfg.Postgres.SlowQueryThreshold > 0 {
			slowThreshold = cfg.Postgres.SlowQueryThreshold
		}
	}

	return &queryLogger{
		logger:        baseLogger,
		level:         level,
		slowThreshold: slowThreshold,
	}
}

func (l *queryLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *queryLogger) Info(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelInfo, logger.Info, msg, args...)
}

func (l *queryLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelWarn, logger.Warn, msg, args...)
}

func (l *queryLogger) Error(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelError, logger.Error, msg, args...)
}

func (l *queryLogger) log(ctx context.Context, slogLevel slog.Level, gormLevel logger.LogLevel, msg string, args ...any) {
	if l.logger == nil || l.level < gormLevel {
		return
	}

	l.logger.Log(ctx, slogLevel, fmt.Sprintf(msg, args...))
}

func (l *queryLogger) Trace(ctx context.Context, begin time.Time, sqlAndRowsFn func() (string, int64), err error) {
	if l.logger == nil || l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := sqlAndRowsFn()
		l.logger.LogAttrs(ctx, slog.LevelError, "Query failed",
			slog.Duration("elapsed", elapsed),
			slog.Int64("rows", rows),
			slog.String("sql", sql),
			slog.String("error", err.Error()),
		)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		sql, rows := sqlAndRowsFn()
		l.logger.LogAttrs(ctx, slog.LevelWarn, "Slow query",
			slog.Duration("elapsed", elapsed),
			slog.Duration("threshold", l.slowThreshold),
			slog.Int64("rows", rows),
			slog.String("sql", sql),
		)
	}
}
