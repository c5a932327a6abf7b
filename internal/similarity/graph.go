package similarity

import (
	"fmt"

	"github.com/vk/cogroup/internal/sample"
)

// Graph is an undirected, unweighted sample graph. The zero value is not
// usable; call NewGraph.
type Graph struct {
	adj map[sample.ID]map[sample.ID]struct{}
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{adj: make(map[sample.ID]map[sample.ID]struct{})}
}

// AddNode adds id to the graph. Adding an existing node does nothing.
func (g *Graph) AddNode(id sample.ID) {
	if _, ok := g.adj[id]; ok {
		return
	}
	g.adj[id] = make(map[sample.ID]struct{})
}

// AddEdge links a and b, adding either node if needed.
func (g *Graph) AddEdge(a, b sample.ID) error {
	if a == b {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", a, b)
	}
	g.AddNode(a)
	g.AddNode(b)
	g.adj[a][b] = struct{}{}
	g.adj[b][a] = struct{}{}
	return nil
}

// HasNode reports whether id is in the graph.
func (g *Graph) HasNode(id sample.ID) bool {
	_, ok := g.adj[id]
	return ok
}

// Nodes returns every node in lexicographic order.
func (g *Graph) Nodes() []sample.ID {
	ids := make([]sample.ID, 0, len(g.adj))
	for id := range g.adj {
		ids = append(ids, id)
	}
	return sample.SortIDs(ids)
}

// Neighbors returns the neighbours of id in lexicographic order.
func (g *Graph) Neighbors(id sample.ID) []sample.ID {
	set := g.adj[id]
	ids := make([]sample.ID, 0, len(set))
	for n := range set {
		ids = append(ids, n)
	}
	return sample.SortIDs(ids)
}

// Degree is the number of neighbours of id.
func (g *Graph) Degree(id sample.ID) int {
	return len(g.adj[id])
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, set := range g.adj {
		total += len(set)
	}
	return total / 2
}

// Components discovers connected components, capping each at maxSize
// members (maxSize < 1 means uncapped). Members of a component are listed in
// discovery order.
//
// Time:   O(V log V + E log E) due to sorted iteration.
// Memory: O(V).
func (g *Graph) Components(maxSize int) [][]sample.ID {
	visited := make(map[sample.ID]bool, len(g.adj))
	var comps [][]sample.ID

	for _, seed := range g.Nodes() {
		if visited[seed] {
			continue
		}
		visited[seed] = true
		comp := []sample.ID{seed}

		// comp doubles as the BFS queue.
		for qi := 0; qi < len(comp); qi++ {
			for _, n := range g.Neighbors(comp[qi]) {
				if maxSize > 0 && len(comp) >= maxSize {
					break
				}
				if !visited[n] {
					visited[n] = true
					comp = append(comp, n)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}
