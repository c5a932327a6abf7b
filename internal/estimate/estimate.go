// Package estimate annotates groups with coarse memory, time and read-count
// estimates. The numbers come from clamped linear heuristics per strategy,
// not from measured assembler profiles.
package estimate

import (
	"errors"
	"fmt"
	"math"

	"github.com/vk/cogroup/internal/diag"
	"github.com/vk/cogroup/internal/sample"
)

// Stage is the diagnostics tag of this package.
const Stage = "estimate"

// DefaultAvgReadsPerSample is used when no read depth is configured.
const DefaultAvgReadsPerSample int64 = 10_000_000

var ErrInvalidProfile = errors.New("estimate: invalid resource profile")

// Profile is the heuristic for one strategy. Memory is reads divided by
// MemoryReadsPerGB, clamped to [MemoryMinGB, MemoryMaxGB]; time works the
// same way.
type Profile struct {
	MemoryReadsPerGB float64
	MemoryMinGB      float64
	MemoryMaxGB      float64
	TimeReadsPerHour float64
	TimeMinHours     float64
	TimeMaxHours     float64
}

// Validate rejects non-positive divisors and inverted bounds.
func (p Profile) Validate() error {
	switch {
	case p.MemoryReadsPerGB <= 0 || p.TimeReadsPerHour <= 0:
		return fmt.Errorf("%w: divisors must be positive", ErrInvalidProfile)
	case p.MemoryMinGB > p.MemoryMaxGB:
		return fmt.Errorf("%w: memory min %v > max %v", ErrInvalidProfile, p.MemoryMinGB, p.MemoryMaxGB)
	case p.TimeMinHours > p.TimeMaxHours:
		return fmt.Errorf("%w: time min %v > max %v", ErrInvalidProfile, p.TimeMinHours, p.TimeMaxHours)
	}
	return nil
}

// Options configures the estimator.
type Options struct {
	AvgReadsPerSample int64
	Profiles          map[sample.Strategy]Profile
}

// DefaultProfiles returns the stock heuristics.
func DefaultProfiles() map[sample.Strategy]Profile {
	return map[sample.Strategy]Profile{
		sample.Individual: {
			MemoryReadsPerGB: 5_000_000, MemoryMinGB: 4, MemoryMaxGB: 8,
			TimeReadsPerHour: 10_000_000, TimeMinHours: 1, TimeMaxHours: 4,
		},
		sample.CoAssembly: {
			MemoryReadsPerGB: 2_000_000, MemoryMinGB: 16, MemoryMaxGB: 64,
			TimeReadsPerHour: 5_000_000, TimeMinHours: 2, TimeMaxHours: 12,
		},
	}
}

// DefaultOptions returns the stock read depth and profiles.
func DefaultOptions() Options {
	return Options{AvgReadsPerSample: DefaultAvgReadsPerSample, Profiles: DefaultProfiles()}
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, x))
}

// Resources computes the estimate for n samples under p.
func (p Profile) Resources(n int, avgReads int64) (memoryGB, timeHours int, reads int64) {
	reads = int64(n) * avgReads
	r := float64(reads)
	memoryGB = int(clamp(r/p.MemoryReadsPerGB, p.MemoryMinGB, p.MemoryMaxGB))
	timeHours = int(clamp(r/p.TimeReadsPerHour, p.TimeMinHours, p.TimeMaxHours))
	return memoryGB, timeHours, reads
}

// Estimate returns copies of groups with their estimates filled in.
func Estimate(groups []sample.Group, opts Options) ([]sample.Group, []diag.Event, error) {
	if opts.AvgReadsPerSample <= 0 {
		return nil, nil, fmt.Errorf("estimate: avg reads per sample must be positive, got %d", opts.AvgReadsPerSample)
	}
	profiles := opts.Profiles
	if profiles == nil {
		profiles = DefaultProfiles()
	}
	for s, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", s, err)
		}
	}

	ev := diag.For(Stage)
	out := make([]sample.Group, len(groups))
	for i, g := range groups {
		p, ok := profiles[g.Strategy]
		if !ok {
			return nil, nil, fmt.Errorf("%w: no profile for strategy %s", ErrInvalidProfile, g.Strategy)
		}
		c := g.Clone()
		c.EstimatedMemoryGB, c.EstimatedTimeHours, c.EstimatedReads = p.Resources(c.Size(), opts.AvgReadsPerSample)
		out[i] = c
	}
	ev.Info("Estimated computational requirements.", "groups", len(out), "avg_reads_per_sample", opts.AvgReadsPerSample)
	return out, ev.List(), nil
}
