package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Grouping  *groupingBlock  `hcl:"grouping,block"`
	Refine    *refineBlock    `hcl:"refine,block"`
	Balance   *balanceBlock   `hcl:"balance,block"`
	Resources *resourcesBlock `hcl:"resources,block"`
	Inputs    *inputsBlock    `hcl:"inputs,block"`
	Output    *outputBlock    `hcl:"output,block"`
	Remain    hcl.Body        `hcl:",remain"`
}

type groupingBlock struct {
	SimilarityThreshold *float64 `hcl:"similarity_threshold,optional"`
	MaxGroupSize        *int     `hcl:"max_group_size,optional"`
}

type refineBlock struct {
	CategoricalCutoff *int     `hcl:"categorical_cutoff,optional"`
	CVThreshold       *float64 `hcl:"cv_threshold,optional"`
	Workers           *int     `hcl:"workers,optional"`
}

type balanceBlock struct {
	MinGroupSize    *int    `hcl:"min_group_size,optional"`
	TargetGroupSize *int    `hcl:"target_group_size,optional"`
	Remainder       *string `hcl:"remainder,optional"`
}

type profileBlock struct {
	Strategy         string   `hcl:"strategy,label"`
	MemoryReadsPerGB *float64 `hcl:"memory_reads_per_gb,optional"`
	MemoryMinGB      *float64 `hcl:"memory_min_gb,optional"`
	MemoryMaxGB      *float64 `hcl:"memory_max_gb,optional"`
	TimeReadsPerHour *float64 `hcl:"time_reads_per_hour,optional"`
	TimeMinHours     *float64 `hcl:"time_min_hours,optional"`
	TimeMaxHours     *float64 `hcl:"time_max_hours,optional"`
}

type resourcesBlock struct {
	AvgReadsPerSample *int64          `hcl:"avg_reads_per_sample,optional"`
	Profiles          []*profileBlock `hcl:"profile,block"`
}

type inputsBlock struct {
	SimilarityDir *string  `hcl:"similarity_dir,optional"`
	VariableDir   *string  `hcl:"variable_dir,optional"`
	Metadata      *string  `hcl:"metadata,optional"`
	PValueMax     *float64 `hcl:"p_value_max,optional"`
	EffectSizeMin *float64 `hcl:"effect_size_min,optional"`
}

type outputBlock struct {
	Dir         *string `hcl:"dir,optional"`
	Format      *string `hcl:"format,optional"`
	MetricsFile *string `hcl:"metrics_file,optional"`
}
