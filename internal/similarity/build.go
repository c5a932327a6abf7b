package similarity

import (
	"errors"
	"fmt"
	"math"

	"github.com/vk/cogroup/internal/diag"
	"github.com/vk/cogroup/internal/sample"
)

// Stage is the diagnostics tag of this package.
const Stage = "similarity"

const (
	BasisSimilar   = "k-mer similarity"
	BasisNoSimilar = "no similar samples"
)

var (
	// ErrNoSimilarityData is returned for an empty similarity table.
	ErrNoSimilarityData = errors.New("similarity: no pairwise similarity data")
	// ErrInvalidEdge is returned for an edge with an empty sample ID or a
	// similarity outside [0,1]. A NaN similarity is not invalid; it marks a
	// pair that was never measured.
	ErrInvalidEdge = errors.New("similarity: invalid edge")
)

// Options controls graph construction.
type Options struct {
	// Threshold is the minimum similarity for an edge to link two samples.
	Threshold float64
	// MaxGroupSize caps the size of a discovered component.
	MaxGroupSize int
}

// Samples returns every sample named by edges, in lexicographic order.
func Samples(edges []sample.SimilarityEdge) []sample.ID {
	seen := make(map[sample.ID]struct{}, len(edges))
	var ids []sample.ID
	for _, e := range edges {
		for _, id := range [2]sample.ID{e.A, e.B} {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	return sample.SortIDs(ids)
}

// NewThresholdGraph builds the graph of all samples in edges, linked only by
// edges whose similarity is at least threshold. Every sample becomes a node,
// so samples without a qualifying edge end up isolated. Unmeasured (NaN)
// edges never link.
func NewThresholdGraph(edges []sample.SimilarityEdge, threshold float64) (*Graph, int, error) {
	g := NewGraph()
	kept := 0
	for i, e := range edges {
		if err := validateEdge(e); err != nil {
			return nil, 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		g.AddNode(e.A)
		g.AddNode(e.B)
		if e.A == e.B || math.IsNaN(e.Similarity) || e.Similarity < threshold {
			continue
		}
		if err := g.AddEdge(e.A, e.B); err != nil {
			return nil, 0, err
		}
		kept++
	}
	return g, kept, nil
}

func validateEdge(e sample.SimilarityEdge) error {
	if e.A == "" || e.B == "" {
		return fmt.Errorf("%w: empty sample id", ErrInvalidEdge)
	}
	if e.Similarity < 0 || e.Similarity > 1 {
		return fmt.Errorf("%w: similarity %v for %s-%s is outside [0,1]", ErrInvalidEdge, e.Similarity, e.A, e.B)
	}
	return nil
}

// Build turns the similarity table into candidate groups. Components of one
// sample become Individual groups, larger components become CoAssembly
// groups.
func Build(edges []sample.SimilarityEdge, opts Options) ([]sample.Group, []diag.Event, error) {
	ev := diag.For(Stage)
	if len(edges) == 0 {
		return nil, nil, ErrNoSimilarityData
	}

	g, kept, err := NewThresholdGraph(edges, opts.Threshold)
	if err != nil {
		return nil, nil, err
	}
	for _, e := range edges {
		switch {
		case e.A == e.B:
			ev.Debug("Ignoring self-similarity row.", "sample", e.A)
		case math.IsNaN(e.Similarity):
			ev.Debug("Similarity not measured, samples kept unlinked.", "sample1", e.A, "sample2", e.B)
		}
	}

	nodes := g.Nodes()
	if kept == 0 {
		ev.Info("No high similarity pairs found, recommending individual assemblies.",
			"threshold", opts.Threshold, "samples", len(nodes))
		groups := make([]sample.Group, 0, len(nodes))
		for _, id := range nodes {
			groups = append(groups, sample.Single(id, BasisNoSimilar))
		}
		return groups, ev.List(), nil
	}

	var groups []sample.Group
	coassembly := 0
	for _, comp := range g.Components(opts.MaxGroupSize) {
		if len(comp) == 1 {
			groups = append(groups, sample.Single(comp[0], BasisNoSimilar))
			continue
		}
		coassembly++
		groups = append(groups, sample.Group{
			Samples:  comp,
			Strategy: sample.CoAssembly,
			Basis:    BasisSimilar,
		})
	}

	ev.Info("Created k-mer based groups.",
		"threshold", opts.Threshold,
		"edges_kept", kept,
		"edges_total", len(edges),
		"groups", len(groups),
		"co_assembly_groups", coassembly,
	)
	return groups, ev.List(), nil
}
