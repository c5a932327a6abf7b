// Package ctxlog provides a context key for safely passing a slog.Logger
// instance through context.Context, and replays engine diagnostics into
// that logger.
package ctxlog

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/cogroup/internal/diag"
)

// key is an unexported type to prevent collisions with context keys from other packages.
type key struct{}

// loggerKey is the key for the slog.Logger in a context.Context.
var loggerKey = key{}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the slog.Logger from a context. If no logger is
// found, it returns a logger that discards everything.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return discard
}

func level(l diag.Level) slog.Level {
	switch l {
	case diag.LevelDebug:
		return slog.LevelDebug
	case diag.LevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// Replay writes events to the context logger, one record per event, tagged
// with the event's stage.
func Replay(ctx context.Context, events []diag.Event) {
	logger := FromContext(ctx)
	for _, ev := range events {
		args := append([]any{"stage", ev.Stage}, ev.Attrs...)
		logger.Log(ctx, level(ev.Level), ev.Message, args...)
	}
}
