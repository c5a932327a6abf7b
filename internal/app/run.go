package app

import (
	"context"
	"fmt"
	"io"

	"github.com/vk/cogroup/internal/ctxlog"
	"github.com/vk/cogroup/internal/diag"
	"github.com/vk/cogroup/internal/grouping"
	"github.com/vk/cogroup/internal/metrics"
	"github.com/vk/cogroup/internal/report"
	"github.com/vk/cogroup/internal/tables"
)

// Run loads the inputs, runs the grouping pipeline and writes its outputs.
func (a *App) Run(ctx context.Context) (*grouping.Result, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")
	cfg := a.config

	a.logger.Info("Loading similarity data.", "dir", cfg.Inputs.SimilarityDir)
	edges, err := tables.LoadSimilarity(cfg.Inputs.SimilarityDir)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Loaded pairwise comparisons.", "count", len(edges))

	var loadEvents []diag.Event
	names, events, err := tables.LoadImportantVariables(cfg.Inputs.VariableDir, tables.Significance{
		PValueMax:     cfg.Inputs.PValueMax,
		EffectSizeMin: cfg.Inputs.EffectSizeMin,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load variable analysis: %w", err)
	}
	loadEvents = append(loadEvents, events...)

	md, events, err := tables.LoadMetadata(cfg.Inputs.MetadataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load metadata: %w", err)
	}
	loadEvents = append(loadEvents, events...)
	ctxlog.Replay(ctx, loadEvents)

	res, err := a.engine.Run(ctx, grouping.Input{
		Edges:     edges,
		Metadata:  md,
		Variables: tables.Variables(names, md),
	})
	if err != nil {
		return nil, err
	}
	ctxlog.Replay(ctx, res.Events)
	for _, st := range res.Stages {
		a.logger.Debug("Stage finished.", "stage", st.Stage, "duration", st.Duration)
	}

	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	written, err := report.Write(cfg.Output.Dir, res.Groups, res.Summary, format)
	if err != nil {
		return nil, err
	}
	for _, path := range written {
		a.logger.Info("Report written.", "path", path)
	}

	if cfg.Output.MetricsFile != "" {
		collector := metrics.NewCollector()
		collector.Observe(res, append(loadEvents, res.Events...), a.now())
		if err := collector.WriteFile(cfg.Output.MetricsFile); err != nil {
			return nil, err
		}
		a.logger.Info("Metrics written.", "path", cfg.Output.MetricsFile)
	}

	s := res.Summary
	a.logger.Info("Co-assembly group creation completed.",
		"run_id", res.RunID,
		"total_groups", s.TotalGroups,
		"individual_assemblies", s.IndividualAssemblies,
		"co_assemblies", s.CoAssemblies,
		"total_samples", s.TotalSamples,
		"estimated_total_memory_gb", s.EstimatedTotalMemoryGB,
		"estimated_total_time_hours", s.EstimatedTotalTimeHours,
	)
	a.logger.Debug("App.Run method finished.")
	return res, nil
}

// Summarize re-reads a groups file and prints its text summary to w.
func (a *App) Summarize(path string, w io.Writer) error {
	a.logger.Debug("Summarizing groups file.", "path", path)
	groups, err := report.ReadGroups(path)
	if err != nil {
		return err
	}
	return report.WriteText(w, groups, grouping.Summarize(groups))
}
