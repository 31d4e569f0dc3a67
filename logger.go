package netcmp

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/netcmp/distance"
)

// Logger wraps slog.Logger with netcmp-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithMetric adds a metric field to the logger.
func (l *Logger) WithMetric(m distance.Metric) *Logger {
	return &Logger{
		Logger: l.Logger.With("metric", m.String()),
	}
}

// LogStage logs the start of a run stage.
func (l *Logger) LogStage(ctx context.Context, stage string, items int) {
	l.InfoContext(ctx, "stage started",
		"stage", stage,
		"items", items,
	)
}

// LogProgress logs stage progress.
func (l *Logger) LogProgress(ctx context.Context, stage string, done, total int) {
	percent := 100.0
	if total > 0 {
		percent = float64(done) / float64(total) * 100
	}
	l.InfoContext(ctx, "stage progress",
		"stage", stage,
		"done", done,
		"total", total,
		"percent", percent,
	)
}

// LogItemFailure logs one failed item of a stage.
func (l *Logger) LogItemFailure(ctx context.Context, stage, item string, attempts int, err error) {
	l.ErrorContext(ctx, "item failed",
		"stage", stage,
		"item", item,
		"attempts", attempts,
		"error", err,
	)
}

// LogOutput logs a written output matrix.
func (l *Logger) LogOutput(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "output write failed",
			"output", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "output written",
			"output", name,
		)
	}
}

// LogPurge logs removal of the run's temporary artifacts.
func (l *Logger) LogPurge(ctx context.Context, removed int, err error) {
	if err != nil {
		l.WarnContext(ctx, "cache purge failed",
			"removed", removed,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "cache purged",
			"removed", removed,
		)
	}
}

// LogRun logs the outcome of a run.
func (l *Logger) LogRun(ctx context.Context, entities int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "run failed",
			"entities", entities,
			"duration", duration,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "run completed",
			"entities", entities,
			"duration", duration,
		)
	}
}
