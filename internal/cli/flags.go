package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vk/cogroup/internal/config"
)

// EnvPrefix prefixes the environment variable of every flag, so that
// --max-group-size is also read from COGROUP_MAX_GROUP_SIZE.
const EnvPrefix = "COGROUP"

type override struct {
	flag  string
	usage string
	apply func(v *viper.Viper, key string, m *config.Model)
}

// overrides lists the model fields reachable from flags and environment.
// Flag defaults are the compiled defaults and only serve as help text.
var overrides = []override{
	{"similarity-dir", "Directory containing pairwise_similarities.csv.", func(v *viper.Viper, k string, m *config.Model) {
		m.Inputs.SimilarityDir = v.GetString(k)
	}},
	{"variable-dir", "Directory containing permanova_results.csv.", func(v *viper.Viper, k string, m *config.Model) {
		m.Inputs.VariableDir = v.GetString(k)
	}},
	{"metadata", "Sample metadata CSV.", func(v *viper.Viper, k string, m *config.Model) {
		m.Inputs.MetadataPath = v.GetString(k)
	}},
	{"p-value-max", "Largest PERMANOVA p-value of an important variable.", func(v *viper.Viper, k string, m *config.Model) {
		m.Inputs.PValueMax = v.GetFloat64(k)
	}},
	{"effect-size-min", "Smallest PERMANOVA R² of an important variable.", func(v *viper.Viper, k string, m *config.Model) {
		m.Inputs.EffectSizeMin = v.GetFloat64(k)
	}},
	{"similarity-threshold", "Minimum similarity for two samples to be linked.", func(v *viper.Viper, k string, m *config.Model) {
		m.Grouping.SimilarityThreshold = v.GetFloat64(k)
	}},
	{"max-group-size", "Maximum samples per co-assembly group.", func(v *viper.Viper, k string, m *config.Model) {
		m.Grouping.MaxGroupSize = v.GetInt(k)
	}},
	{"min-group-size", "Minimum samples per split sub-group.", func(v *viper.Viper, k string, m *config.Model) {
		m.Balance.MinGroupSize = v.GetInt(k)
	}},
	{"target-group-size", "Preferred samples per split sub-group.", func(v *viper.Viper, k string, m *config.Model) {
		m.Balance.TargetGroupSize = v.GetInt(k)
	}},
	{"remainder", "Placement of split remainders: 'clamp' or 'last'.", func(v *viper.Viper, k string, m *config.Model) {
		m.Balance.Remainder = v.GetString(k)
	}},
	{"categorical-cutoff", "Largest distinct-value count at which a variable is tested as categorical.", func(v *viper.Viper, k string, m *config.Model) {
		m.Refine.CategoricalCutoff = v.GetInt(k)
	}},
	{"cv-threshold", "Coefficient of variation above which a continuous variable splits a group.", func(v *viper.Viper, k string, m *config.Model) {
		m.Refine.CVThreshold = v.GetFloat64(k)
	}},
	{"workers", "Groups refined concurrently.", func(v *viper.Viper, k string, m *config.Model) {
		m.Refine.Workers = v.GetInt(k)
	}},
	{"avg-reads-per-sample", "Assumed read count of one sample.", func(v *viper.Viper, k string, m *config.Model) {
		m.Resources.AvgReadsPerSample = v.GetInt64(k)
	}},
	{"output-dir", "Directory for the reports.", func(v *viper.Viper, k string, m *config.Model) {
		m.Output.Dir = v.GetString(k)
	}},
	{"format", "Machine-readable report format: 'json', 'yaml' or 'all'.", func(v *viper.Viper, k string, m *config.Model) {
		m.Output.Format = v.GetString(k)
	}},
	{"metrics-file", "Write Prometheus textfile metrics to this path.", func(v *viper.Viper, k string, m *config.Model) {
		m.Output.MetricsFile = v.GetString(k)
	}},
}

// registerGroupFlags declares one flag per override, typed after the
// default model.
func registerGroupFlags(cmd *cobra.Command) {
	d := config.Default()
	f := cmd.Flags()
	defaults := map[string]any{
		"similarity-dir":       d.Inputs.SimilarityDir,
		"variable-dir":         d.Inputs.VariableDir,
		"metadata":             d.Inputs.MetadataPath,
		"p-value-max":          d.Inputs.PValueMax,
		"effect-size-min":      d.Inputs.EffectSizeMin,
		"similarity-threshold": d.Grouping.SimilarityThreshold,
		"max-group-size":       d.Grouping.MaxGroupSize,
		"min-group-size":       d.Balance.MinGroupSize,
		"target-group-size":    d.Balance.TargetGroupSize,
		"remainder":            d.Balance.Remainder,
		"categorical-cutoff":   d.Refine.CategoricalCutoff,
		"cv-threshold":         d.Refine.CVThreshold,
		"workers":              d.Refine.Workers,
		"avg-reads-per-sample": d.Resources.AvgReadsPerSample,
		"output-dir":           d.Output.Dir,
		"format":               d.Output.Format,
		"metrics-file":         d.Output.MetricsFile,
	}
	for _, o := range overrides {
		switch def := defaults[o.flag].(type) {
		case string:
			f.String(o.flag, def, o.usage)
		case float64:
			f.Float64(o.flag, def, o.usage)
		case int:
			f.Int(o.flag, def, o.usage)
		case int64:
			f.Int64(o.flag, def, o.usage)
		}
	}
}

// newViper binds the command's flags and the COGROUP_* environment.
func newViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	return v, nil
}

// applyOverrides copies every explicitly set flag or variable into m.
func applyOverrides(v *viper.Viper, m *config.Model) error {
	for _, o := range overrides {
		if v.IsSet(o.flag) {
			o.apply(v, o.flag, m)
		}
	}
	return nil
}
