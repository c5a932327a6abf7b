package grouping

import "github.com/vk/cogroup/internal/sample"

// Summary aggregates a set of groups for reports.
type Summary struct {
	RunID                   string `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	TotalGroups             int    `json:"total_groups" yaml:"total_groups"`
	IndividualAssemblies    int    `json:"individual_assemblies" yaml:"individual_assemblies"`
	CoAssemblies            int    `json:"co_assemblies" yaml:"co_assemblies"`
	TotalSamples            int    `json:"total_samples" yaml:"total_samples"`
	LargestGroupSize        int    `json:"largest_group_size" yaml:"largest_group_size"`
	EstimatedTotalMemoryGB  int    `json:"estimated_total_memory_gb" yaml:"estimated_total_memory_gb"`
	EstimatedTotalTimeHours int    `json:"estimated_total_time_hours" yaml:"estimated_total_time_hours"`
	EstimatedTotalReads     int64  `json:"estimated_total_reads" yaml:"estimated_total_reads"`
	MaxMemoryGB             int    `json:"max_memory_gb" yaml:"max_memory_gb"`
	MaxTimeHours            int    `json:"max_time_hours" yaml:"max_time_hours"`
}

// Summarize computes counts, totals and maxima over groups.
func Summarize(groups []sample.Group) Summary {
	var s Summary
	s.TotalGroups = len(groups)
	for _, g := range groups {
		switch g.Strategy {
		case sample.Individual:
			s.IndividualAssemblies++
		case sample.CoAssembly:
			s.CoAssemblies++
		}
		s.TotalSamples += g.Size()
		s.LargestGroupSize = max(s.LargestGroupSize, g.Size())
		s.EstimatedTotalMemoryGB += g.EstimatedMemoryGB
		s.EstimatedTotalTimeHours += g.EstimatedTimeHours
		s.EstimatedTotalReads += g.EstimatedReads
		s.MaxMemoryGB = max(s.MaxMemoryGB, g.EstimatedMemoryGB)
		s.MaxTimeHours = max(s.MaxTimeHours, g.EstimatedTimeHours)
	}
	return s
}
