package tcgaexplorer

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with tcgaExplorer-specific context.
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
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithCohort adds a cohort field to the logger.
func (l *Logger) WithCohort(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("cohort", name),
	}
}

// LogLoad logs the outcome of loading a cohort.
func (l *Logger) LogLoad(ctx context.Context, samples, genes int, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "load completed",
		"samples", samples,
		"genes", genes,
		"duration", d,
	)
}

// LogMatrix logs the outcome of a pairwise matrix computation.
func (l *Logger) LogMatrix(ctx context.Context, metric string, n int, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "matrix failed",
			"metric", metric,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "matrix completed",
		"metric", metric,
		"n", n,
		"duration", d,
	)
}

// LogClustering logs the outcome of a clustering run.
func (l *Logger) LogClustering(ctx context.Context, algorithm string, k int, sizes []int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "clustering failed",
			"algorithm", algorithm,
			"k", k,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "clustering completed",
		"algorithm", algorithm,
		"k", k,
		"sizes", sizes,
	)
}

// LogExport logs a written result.
func (l *Logger) LogExport(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "export failed",
			"name", name,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "export completed",
		"name", name,
	)
}

// LogRun logs a recorded run.
func (l *Logger) LogRun(ctx context.Context, version uint64, err error) {
	if err != nil {
		l.WarnContext(ctx, "run record failed",
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "run recorded",
		"version", version,
	)
}
