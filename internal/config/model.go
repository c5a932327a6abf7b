package config

import (
	"maps"
	"runtime"

	"github.com/vk/cogroup/internal/balance"
	"github.com/vk/cogroup/internal/estimate"
	"github.com/vk/cogroup/internal/grouping"
	"github.com/vk/cogroup/internal/refine"
	"github.com/vk/cogroup/internal/sample"
	"github.com/vk/cogroup/internal/similarity"
)

// Model is the complete, format-agnostic application configuration.
type Model struct {
	Grouping  Grouping
	Refine    Refine
	Balance   Balance
	Resources Resources
	Inputs    Inputs
	Output    Output
}

// Grouping configures the similarity graph.
type Grouping struct {
	SimilarityThreshold float64 `validate:"gte=0,lte=1"`
	MaxGroupSize        int     `validate:"gte=1"`
}

// Refine configures the metadata consistency checks.
type Refine struct {
	CategoricalCutoff int     `validate:"gte=0"`
	CVThreshold       float64 `validate:"gt=0"`
	Workers           int     `validate:"gte=0"`
}

// Balance configures group size balancing. MaxGroupSize is shared with
// Grouping.
type Balance struct {
	MinGroupSize    int    `validate:"gte=1"`
	TargetGroupSize int    `validate:"gtefield=MinGroupSize"`
	Remainder       string `validate:"oneof=clamp last"`
}

// Profile is one strategy's resource heuristic.
type Profile struct {
	MemoryReadsPerGB float64 `validate:"gt=0"`
	MemoryMinGB      float64 `validate:"gte=0"`
	MemoryMaxGB      float64 `validate:"gtefield=MemoryMinGB"`
	TimeReadsPerHour float64 `validate:"gt=0"`
	TimeMinHours     float64 `validate:"gte=0"`
	TimeMaxHours     float64 `validate:"gtefield=TimeMinHours"`
}

// Resources configures the estimator. Profiles are keyed by strategy name.
type Resources struct {
	AvgReadsPerSample int64              `validate:"gt=0"`
	Profiles          map[string]Profile `validate:"required,dive,keys,oneof=individual co-assembly,endkeys"`
}

// Inputs locates the upstream tables.
type Inputs struct {
	SimilarityDir string
	VariableDir   string
	MetadataPath  string
	PValueMax     float64 `validate:"gte=0,lte=1"`
	EffectSizeMin float64 `validate:"gte=0"`
}

// Output controls where and how results are written.
type Output struct {
	Dir         string `validate:"required"`
	Format      string `validate:"oneof=json yaml all"`
	MetricsFile string
}

// Default returns the compiled-in configuration.
func Default() *Model {
	profiles := make(map[string]Profile)
	for s, p := range estimate.DefaultProfiles() {
		profiles[s.String()] = Profile(p)
	}
	return &Model{
		Grouping: Grouping{SimilarityThreshold: 0.8, MaxGroupSize: 8},
		Refine: Refine{
			CategoricalCutoff: 10,
			CVThreshold:       0.3,
			Workers:           runtime.NumCPU(),
		},
		Balance: Balance{MinGroupSize: 2, TargetGroupSize: 4, Remainder: balance.RemainderClamp.String()},
		Resources: Resources{
			AvgReadsPerSample: estimate.DefaultAvgReadsPerSample,
			Profiles:          profiles,
		},
		Inputs: Inputs{
			SimilarityDir: "results/similarity_analysis",
			VariableDir:   "results/variable_analysis",
			MetadataPath:  "examples/metadata_template.csv",
			PValueMax:     0.05,
			EffectSizeMin: 0.1,
		},
		Output: Output{Dir: "results/coassembly_groups", Format: "json"},
	}
}

// Clone returns a deep copy of m.
func (m *Model) Clone() *Model {
	out := *m
	out.Resources.Profiles = maps.Clone(m.Resources.Profiles)
	return &out
}

// EngineOptions converts the model into pipeline options. The model must
// have passed Validate.
func (m *Model) EngineOptions() grouping.Options {
	remainder, _ := balance.ParseRemainderPolicy(m.Balance.Remainder)

	profiles := make(map[sample.Strategy]estimate.Profile, len(m.Resources.Profiles))
	for name, p := range m.Resources.Profiles {
		if s, err := sample.ParseStrategy(name); err == nil {
			profiles[s] = estimate.Profile(p)
		}
	}

	return grouping.Options{
		Similarity: similarity.Options{
			Threshold:    m.Grouping.SimilarityThreshold,
			MaxGroupSize: m.Grouping.MaxGroupSize,
		},
		Refine: refine.Options{
			CategoricalCutoff: m.Refine.CategoricalCutoff,
			CVThreshold:       m.Refine.CVThreshold,
			Workers:           m.Refine.Workers,
		},
		Balance: balance.Options{
			MinGroupSize:    m.Balance.MinGroupSize,
			TargetGroupSize: m.Balance.TargetGroupSize,
			MaxGroupSize:    m.Grouping.MaxGroupSize,
			Remainder:       remainder,
		},
		Estimate: estimate.Options{
			AvgReadsPerSample: m.Resources.AvgReadsPerSample,
			Profiles:          profiles,
		},
	}
}
