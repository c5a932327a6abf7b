package refine

import (
	"context"
	"strings"

	"github.com/vk/cogroup/internal/diag"
	"github.com/vk/cogroup/internal/sample"
	"golang.org/x/sync/errgroup"
)

// Stage is the diagnostics tag of this package.
const Stage = "refine"

const (
	basisConsistent = "k-mer similarity + consistent "
	basisSplit      = "variable-based split: "
)

// Options controls the consistency checks.
type Options struct {
	// CategoricalCutoff is the largest distinct-value count at which a
	// variable is treated as categorical regardless of its declared kind.
	CategoricalCutoff int
	// CVThreshold is the coefficient of variation above which a continuous
	// variable splits a group.
	CVThreshold float64
	// Workers bounds how many groups are checked concurrently. Values below
	// one mean unbounded.
	Workers int
}

// DefaultOptions returns the stock thresholds.
func DefaultOptions() Options {
	return Options{CategoricalCutoff: 10, CVThreshold: 0.3}
}

type outcome struct {
	groups []sample.Group
	events []diag.Event
}

// Refine checks every co-assembly group against vars. A nil metadata table or
// an empty variable list skips the stage. The returned groups are in input
// order, with split groups expanded in place.
func Refine(ctx context.Context, groups []sample.Group, md sample.Metadata, vars []sample.Variable, opts Options) ([]sample.Group, []diag.Event, error) {
	ev := diag.For(Stage)
	if md == nil || len(vars) == 0 {
		ev.Warn("No important variables or metadata available, keeping k-mer based groups.",
			"has_metadata", md != nil, "variables", len(vars))
		return cloneAll(groups), ev.List(), nil
	}

	present := make([]sample.Variable, 0, len(vars))
	for _, v := range vars {
		if !md.HasColumn(v.Name) {
			ev.Debug("Important variable not in metadata, skipping.", "variable", v.Name)
			continue
		}
		present = append(present, v)
	}
	ev.Info("Refining groups using variables.", "variables", sample.Names(present))

	results := make([]outcome, len(groups))
	eg, egCtx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		eg.SetLimit(opts.Workers)
	}
	for i, g := range groups {
		i, g := i, g
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			results[i] = refineGroup(i, g, md, present, opts)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	var out []sample.Group
	for _, r := range results {
		out = append(out, r.groups...)
		ev.Append(r.events...)
	}
	ev.Info("Refined groups.", "groups_in", len(groups), "groups_out", len(out))
	return out, ev.List(), nil
}

func refineGroup(index int, g sample.Group, md sample.Metadata, vars []sample.Variable, opts Options) outcome {
	ev := diag.For(Stage)
	if g.Strategy != sample.CoAssembly || g.Size() <= 1 {
		return outcome{groups: []sample.Group{g.Clone()}}
	}

	rows := md.Rows(g.Samples)
	if len(rows) == 0 {
		ev.Warn("No metadata found for samples in group.", "group", index, "samples", g.Samples)
		return outcome{groups: []sample.Group{g.Clone()}, events: ev.List()}
	}

	var reasons, consistent []string
	for _, v := range vars {
		c := checkVariable(v, rows, opts)
		switch {
		case !c.checked:
			continue
		case c.flagged:
			reasons = append(reasons, c.reason)
		default:
			consistent = append(consistent, c.variable)
		}
	}

	if len(reasons) > 0 {
		reason := strings.Join(reasons, "; ")
		ev.Info("Splitting group.", "group", index, "reason", reason)
		split := make([]sample.Group, 0, g.Size())
		for _, id := range g.Samples {
			split = append(split, sample.Single(id, basisSplit+reason))
		}
		return outcome{groups: split, events: ev.List()}
	}

	kept := g.Clone()
	if len(consistent) > 0 {
		kept.Basis = basisConsistent + strings.Join(consistent, ", ")
	}
	return outcome{groups: []sample.Group{kept}, events: ev.List()}
}

func cloneAll(groups []sample.Group) []sample.Group {
	out := make([]sample.Group, len(groups))
	for i, g := range groups {
		out[i] = g.Clone()
	}
	return out
}
