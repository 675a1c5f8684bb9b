package genemanifest

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with manifest-specific helpers.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// OrNoop returns l, or a NoopLogger when l is nil.
func OrNoop(l *Logger) *Logger {
	if l == nil {
		return NoopLogger()
	}
	return l
}

// With returns a Logger carrying the given attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// LogProgress logs cumulative ingestion counters.
func (l *Logger) LogProgress(ctx context.Context, lines, valid, invalid int, elapsed time.Duration) {
	rate := 0.0
	if s := elapsed.Seconds(); s > 0 {
		rate = float64(lines) / s
	}
	l.InfoContext(ctx, "ingestion progress",
		"lines", lines,
		"valid", valid,
		"invalid", invalid,
		"lines_per_sec", int64(rate),
	)
}

// LogInvalidLine logs a line that could not be extracted.
func (l *Logger) LogInvalidLine(ctx context.Context, lineNum int, raw string) {
	l.WarnContext(ctx, "could not extract fields",
		"line", lineNum,
		"raw", raw,
	)
}

// LogLoad logs the outcome of loading a table into the store.
func (l *Logger) LogLoad(ctx context.Context, table, path string, columns []string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"table", table,
			"path", path,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "table loaded",
		"table", table,
		"path", path,
		"columns", columns,
	)
}

// LogQuery logs a predicate query.
func (l *Logger) LogQuery(ctx context.Context, table string, filters, results int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "query failed",
			"table", table,
			"filters", filters,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "query completed",
		"table", table,
		"filters", filters,
		"results", results,
	)
}

// LogFetch logs a remote object download into the cache.
func (l *Logger) LogFetch(ctx context.Context, bucket, key string, bytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "fetch failed",
			"bucket", bucket,
			"key", key,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "object fetched",
		"bucket", bucket,
		"key", key,
		"bytes", bytes,
	)
}
