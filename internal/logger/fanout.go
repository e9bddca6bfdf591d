package logger

import (
	"context"
	"errors"
	"log/slog"
)

// FanoutHandler sends every record to each of its handlers that accepts the level.
type FanoutHandler []slog.Handler

// NewFanoutHandler combines handlers into one.
func NewFanoutHandler(handlers ...slog.Handler) FanoutHandler {
	return FanoutHandler(handlers)
}

// Enabled reports whether any handler accepts the level.
func (h FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle passes a copy of the record to each enabled handler and joins their errors.
func (h FanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, handler := range h {
		if !handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := handler.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WithAttrs returns a FanoutHandler whose handlers all carry attrs.
func (h FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(FanoutHandler, len(h))
	for i, handler := range h {
		out[i] = handler.WithAttrs(attrs)
	}
	return out
}

// WithGroup returns a FanoutHandler whose handlers all open the group.
func (h FanoutHandler) WithGroup(name string) slog.Handler {
	out := make(FanoutHandler, len(h))
	for i, handler := range h {
		out[i] = handler.WithGroup(name)
	}
	return out
}
