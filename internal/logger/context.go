package logger

import (
	"context"
	"log/slog"
	"time"
)

type contextKey string

const (
	runIDContextKey contextKey = "runID"

	// RunIDLogField is the log attribute carrying the run ID.
	RunIDLogField = "run_id"
)

// WithRunID returns a context carrying the ID of the current deployment run.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDContextKey, runID)
}

// GetRunID extracts the run ID from the context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(runIDContextKey).(string); ok {
		return runID
	}

	return ""
}

// DeriveRequestLogger returns a logger enriched with the run-scoped fields available in
// the provided context.
func DeriveRequestLogger(ctx context.Context, base *slog.Logger) *slog.Logger {
	if base == nil {
		base = slog.Default()
	}

	if runID := GetRunID(ctx); runID != "" {
		return base.With(RunIDLogField, runID)
	}

	return base
}

// GetDeadlineInfo returns logging attributes for context deadline information.
// Returns the absolute deadline time and remaining duration if set, or "none" if no deadline.
func GetDeadlineInfo(ctx context.Context) []any {
	deadline, ok := ctx.Deadline()
	if !ok {
		return []any{"deadline", "none", "deadline_remaining", "none"}
	}

	remaining := time.Until(deadline)
	return []any{
		"deadline", deadline.Format(time.RFC3339),
		"deadline_remaining", remaining.String(),
	}
}
