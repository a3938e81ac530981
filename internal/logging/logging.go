package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// New returns a logger with a text handler writing to STDERR. Telemetry owns
// STDOUT, so diagnostics stay on the error stream. The level is read from
// SEALSIM_LOG_LEVEL (debug, info, warn, error); unset or unknown means info.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: levelFromEnv(),
	}))
}

// ForRun returns a logger carrying the simulation run id on every record.
func ForRun(runID string) *slog.Logger {
	return New().With("run_id", runID)
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("SEALSIM_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type ctxKey struct{}

// NewContext returns a copy of ctx with the logger stored.
func NewContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves a logger from ctx or returns slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
