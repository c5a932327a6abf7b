// This file overlays decoded HCL blocks onto the format-agnostic
// config.Model. Only attributes present in the file are applied.

package hcl

import (
	"fmt"

	"github.com/vk/cogroup/internal/config"
	"github.com/vk/cogroup/internal/sample"
)

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func (l *Loader) apply(m *config.Model, root *fileRoot) error {
	if b := root.Grouping; b != nil {
		set(&m.Grouping.SimilarityThreshold, b.SimilarityThreshold)
		set(&m.Grouping.MaxGroupSize, b.MaxGroupSize)
	}
	if b := root.Refine; b != nil {
		set(&m.Refine.CategoricalCutoff, b.CategoricalCutoff)
		set(&m.Refine.CVThreshold, b.CVThreshold)
		set(&m.Refine.Workers, b.Workers)
	}
	if b := root.Balance; b != nil {
		set(&m.Balance.MinGroupSize, b.MinGroupSize)
		set(&m.Balance.TargetGroupSize, b.TargetGroupSize)
		set(&m.Balance.Remainder, b.Remainder)
	}
	if b := root.Resources; b != nil {
		set(&m.Resources.AvgReadsPerSample, b.AvgReadsPerSample)
		for _, pb := range b.Profiles {
			if err := l.applyProfile(m, pb); err != nil {
				return err
			}
		}
	}
	if b := root.Inputs; b != nil {
		set(&m.Inputs.SimilarityDir, b.SimilarityDir)
		set(&m.Inputs.VariableDir, b.VariableDir)
		set(&m.Inputs.MetadataPath, b.Metadata)
		set(&m.Inputs.PValueMax, b.PValueMax)
		set(&m.Inputs.EffectSizeMin, b.EffectSizeMin)
	}
	if b := root.Output; b != nil {
		set(&m.Output.Dir, b.Dir)
		set(&m.Output.Format, b.Format)
		set(&m.Output.MetricsFile, b.MetricsFile)
	}
	return nil
}

// applyProfile merges one profile block into the profile of its strategy.
func (l *Loader) applyProfile(m *config.Model, pb *profileBlock) error {
	strategy, err := sample.ParseStrategy(pb.Strategy)
	if err != nil {
		return fmt.Errorf("profile %q: %w", pb.Strategy, err)
	}
	name := strategy.String()
	p := m.Resources.Profiles[name]
	set(&p.MemoryReadsPerGB, pb.MemoryReadsPerGB)
	set(&p.MemoryMinGB, pb.MemoryMinGB)
	set(&p.MemoryMaxGB, pb.MemoryMaxGB)
	set(&p.TimeReadsPerHour, pb.TimeReadsPerHour)
	set(&p.TimeMinHours, pb.TimeMinHours)
	set(&p.TimeMaxHours, pb.TimeMaxHours)
	if m.Resources.Profiles == nil {
		m.Resources.Profiles = make(map[string]config.Profile)
	}
	m.Resources.Profiles[name] = p
	return nil
}
