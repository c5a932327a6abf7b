package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/cogroup/internal/sample"
)

func TestGraphBasics(t *testing.T) {
	g := NewGraph()
	g.AddNode("a")
	g.AddNode("a") // idempotent
	assert.Len(t, g.Nodes(), 1)

	require.NoError(t, g.AddEdge("c", "a"))
	require.NoError(t, g.AddEdge("b", "a"))
	require.NoError(t, g.AddEdge("a", "b")) // duplicate, same edge

	assert.Equal(t, []sample.ID{"a", "b", "c"}, g.Nodes())
	assert.Equal(t, []sample.ID{"b", "c"}, g.Neighbors("a"))
	assert.Equal(t, 2, g.Degree("a"))
	assert.Equal(t, 2, g.EdgeCount())
	assert.True(t, g.HasNode("c"))
	assert.False(t, g.HasNode("d"))

	err := g.AddEdge("a", "a")
	assert.ErrorContains(t, err, "self-referential edge")
}

func TestComponents(t *testing.T) {
	t.Run("uncapped", func(t *testing.T) {
		g := NewGraph()
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("x", "y"))
		g.AddNode("z")

		comps := g.Components(0)
		assert.Equal(t, [][]sample.ID{{"a", "b", "c"}, {"x", "y"}, {"z"}}, comps)
	})

	t.Run("capped growth seeds later components", func(t *testing.T) {
		// Star around "a": a-b, a-c, a-d, a-e.
		g := NewGraph()
		for _, leaf := range []sample.ID{"b", "c", "d", "e"} {
			require.NoError(t, g.AddEdge("a", leaf))
		}

		comps := g.Components(3)
		// a takes the first two neighbours in order; d and e are left behind
		// and, having no other links, become singletons.
		assert.Equal(t, [][]sample.ID{{"a", "b", "c"}, {"d"}, {"e"}}, comps)
	})

	t.Run("overflow neighbours form their own component", func(t *testing.T) {
		g := NewGraph()
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("c", "d"))
		require.NoError(t, g.AddEdge("d", "e"))

		comps := g.Components(2)
		assert.Equal(t, [][]sample.ID{{"a", "b"}, {"c", "d"}, {"e"}}, comps)
	})

	t.Run("deterministic regardless of insertion order", func(t *testing.T) {
		edges := [][2]sample.ID{{"s3", "s1"}, {"s2", "s4"}, {"s1", "s2"}, {"s5", "s4"}}
		g1 := NewGraph()
		for _, e := range edges {
			require.NoError(t, g1.AddEdge(e[0], e[1]))
		}
		g2 := NewGraph()
		for i := len(edges) - 1; i >= 0; i-- {
			require.NoError(t, g2.AddEdge(edges[i][1], edges[i][0]))
		}
		assert.Equal(t, g1.Components(3), g2.Components(3))
	})
}
