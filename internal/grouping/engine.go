package grouping

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vk/cogroup/internal/balance"
	"github.com/vk/cogroup/internal/diag"
	"github.com/vk/cogroup/internal/estimate"
	"github.com/vk/cogroup/internal/refine"
	"github.com/vk/cogroup/internal/sample"
	"github.com/vk/cogroup/internal/similarity"
)

// ErrPartitionViolated means the output groups do not cover the input
// samples exactly once.
var ErrPartitionViolated = errors.New("grouping: partition invariant violated")

// Options carries the settings of every stage.
type Options struct {
	Similarity similarity.Options
	Refine     refine.Options
	Balance    balance.Options
	Estimate   estimate.Options
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		Similarity: similarity.Options{Threshold: 0.8, MaxGroupSize: 8},
		Refine:     refine.DefaultOptions(),
		Balance:    balance.Options{MinGroupSize: 2, TargetGroupSize: 4, MaxGroupSize: 8},
		Estimate:   estimate.DefaultOptions(),
	}
}

// Input is everything the engine consumes. Metadata and Variables are
// optional.
type Input struct {
	Edges     []sample.SimilarityEdge
	Metadata  sample.Metadata
	Variables []sample.Variable
}

// StageTiming records how long a stage took.
type StageTiming struct {
	Stage    string
	Duration time.Duration
}

// Result is the output of a pipeline run.
type Result struct {
	RunID   string
	Groups  []sample.Group
	Summary Summary
	Events  []diag.Event
	Stages  []StageTiming
}

// Engine runs the grouping pipeline.
type Engine struct {
	opts Options
	now  func() time.Time
}

// New creates an engine with opts.
func New(opts Options) *Engine {
	return &Engine{opts: opts, now: time.Now}
}

// Options returns the engine configuration.
func (e *Engine) Options() Options { return e.opts }

type stageFunc func(context.Context, []sample.Group) ([]sample.Group, []diag.Event, error)

// Run executes all stages over in.
func (e *Engine) Run(ctx context.Context, in Input) (*Result, error) {
	res := &Result{RunID: uuid.NewString()}
	samples := similarity.Samples(in.Edges)

	stages := []struct {
		name string
		fn   stageFunc
	}{
		{similarity.Stage, func(_ context.Context, _ []sample.Group) ([]sample.Group, []diag.Event, error) {
			return similarity.Build(in.Edges, e.opts.Similarity)
		}},
		{refine.Stage, func(ctx context.Context, g []sample.Group) ([]sample.Group, []diag.Event, error) {
			return refine.Refine(ctx, g, in.Metadata, in.Variables, e.opts.Refine)
		}},
		{balance.Stage, func(_ context.Context, g []sample.Group) ([]sample.Group, []diag.Event, error) {
			return balance.Balance(g, e.opts.Balance)
		}},
		{estimate.Stage, func(_ context.Context, g []sample.Group) ([]sample.Group, []diag.Event, error) {
			return estimate.Estimate(g, e.opts.Estimate)
		}},
	}

	var groups []sample.Group
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := e.now()
		next, events, err := st.fn(ctx, groups)
		if err != nil {
			return nil, fmt.Errorf("%s stage: %w", st.name, err)
		}
		res.Stages = append(res.Stages, StageTiming{Stage: st.name, Duration: e.now().Sub(start)})
		res.Events = append(res.Events, events...)
		groups = next
	}

	if err := sample.CheckPartition(samples, groups); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPartitionViolated, err)
	}

	res.Groups = groups
	res.Summary = Summarize(groups)
	res.Summary.RunID = res.RunID
	return res, nil
}
