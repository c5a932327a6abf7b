package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vk/cogroup/internal/diag"
)

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))

	// Without a logger nothing panics and nothing is written.
	FromContext(context.Background()).Error("dropped")
}

func TestReplay(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx := WithLogger(context.Background(), logger)

	ev := diag.For("refine")
	ev.Debug("hidden")
	ev.Warn("No metadata found for samples in group.", "group", 2)
	Replay(ctx, ev.List())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "stage=refine")
	assert.Contains(t, out, "group=2")
}
