package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvents(t *testing.T) {
	ev := For("refine")
	ev.Debug("skipped", "variable", "Age")
	ev.Warn("no metadata rows", "group", 3)
	ev.Info("done")

	list := ev.List()
	require.Len(t, list, 3)
	assert.Equal(t, "refine", list[0].Stage)
	assert.Equal(t, []any{"variable", "Age"}, list[0].Attrs)
	assert.Equal(t, LevelWarn, list[1].Level)

	counts := Count(list)
	assert.Equal(t, 1, counts[LevelDebug])
	assert.Equal(t, 1, counts[LevelWarn])
	assert.Equal(t, 1, counts[LevelInfo])

	assert.Len(t, Filter(list, LevelInfo), 2)
	assert.Len(t, Filter(list, LevelWarn), 1)
}

func TestAppendKeepsStage(t *testing.T) {
	other := For("balance")
	other.Warn("small")

	ev := For("pipeline")
	ev.Append(other.List()...)
	require.Len(t, ev.List(), 1)
	assert.Equal(t, "balance", ev.List()[0].Stage)
}
