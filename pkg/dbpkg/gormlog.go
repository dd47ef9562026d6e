package dbpkg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormLogger sends gorm's messages to the request scoped zerolog logger, or to
// the global zerolog logger when the context carries none.
type gormLogger struct {
	level                     logger.LogLevel
	slowThreshold             time.Duration
	ignoreRecordNotFoundError bool
}

func newGormLogger() logger.Interface {
	return gormLogger{
		level:                     logger.Warn,
		slowThreshold:             200 * time.Millisecond,
		ignoreRecordNotFoundError: true,
	}
}

func gormCtxLogger(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		return &log.Logger
	}

	return l
}

func (g gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	g.level = level
	return g
}

func (g gormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= logger.Info {
		gormCtxLogger(ctx).Info().Msg(fmt.Sprintf(msg, data...))
	}
}

func (g gormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= logger.Warn {
		gormCtxLogger(ctx).Warn().Msg(fmt.Sprintf(msg, data...))
	}
}

func (g gormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= logger.Error {
		gormCtxLogger(ctx).Error().Msg(fmt.Sprintf(msg, data...))
	}
}

func (g gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && g.level >= logger.Error &&
		!(g.ignoreRecordNotFoundError && errors.Is(err, gorm.ErrRecordNotFound)):
		sql, rows := fc()
		gormCtxLogger(ctx).Error().Err(err).
			Dur("elapsed", elapsed).
			Int64("rows", rows).
			Str("sql", sql).
			Msg("gorm query failed")
	case g.slowThreshold > 0 && elapsed > g.slowThreshold && g.level >= logger.Warn:
		sql, rows := fc()
		gormCtxLogger(ctx).Warn().
			Dur("elapsed", elapsed).
			Dur("threshold", g.slowThreshold).
			Int64("rows", rows).
			Str("sql", sql).
			Msg("gorm slow query")
	case g.level >= logger.Info:
		sql, rows := fc()
		gormCtxLogger(ctx).Debug().
			Dur("elapsed", elapsed).
			Int64("rows", rows).
			Str("sql", sql).
			Msg("gorm query")
	}
}
