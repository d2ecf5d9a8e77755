package crewpram

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with search-specific helpers.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithProcessors adds a processors field to the logger.
func (l *Logger) WithProcessors(p int) *Logger {
	return &Logger{
		Logger: l.Logger.With("processors", p),
	}
}

// WithSize adds a sequence size field to the logger.
func (l *Logger) WithSize(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("size", n),
	}
}

// LogStage logs one completed stage.
func (l *Logger) LogStage(ctx context.Context, s Stage) {
	l.DebugContext(ctx, "stage completed",
		"stage", s.Number,
		"budget", s.Budget,
		"step", s.Step,
		"low", s.Window.Low,
		"high", s.Window.High,
		"next_low", s.Next.Low,
		"next_high", s.Next.High,
		"comparisons", s.Comparisons,
		"found", s.Found,
	)
}

// LogSearch logs a finished search.
func (l *Logger) LogSearch(ctx context.Context, target int, r Result, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"target", target,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "search completed",
		"target", target,
		"position", r.Position,
		"stages", r.Stages,
		"budget", r.Budget,
		"comparisons", r.Comparisons,
	)
}
