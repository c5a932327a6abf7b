// Package metrics exports run metrics in the Prometheus text exposition
// format, suitable for the node-exporter textfile collector.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vk/cogroup/internal/diag"
	"github.com/vk/cogroup/internal/grouping"
	"github.com/vk/cogroup/internal/sample"
)

// Namespace prefixes every metric name.
const Namespace = "cogroup"

// Collector holds the gauges for one run. Each Collector owns its registry,
// so several can coexist in one process.
type Collector struct {
	registry *prometheus.Registry

	Groups        *prometheus.GaugeVec
	Samples       prometheus.Gauge
	MemoryGB      prometheus.Gauge
	TimeHours     prometheus.Gauge
	StageDuration *prometheus.GaugeVec
	Diagnostics   *prometheus.GaugeVec
	LastRun       prometheus.Gauge
}

// NewCollector creates and registers the run gauges.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		Groups: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "groups",
			Help:      "Number of assembly groups by strategy.",
		}, []string{"strategy"}),
		Samples: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "samples",
			Help:      "Number of samples placed into groups.",
		}),
		MemoryGB: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "estimated_memory_gb_total",
			Help:      "Sum of estimated assembly memory over all groups.",
		}),
		TimeHours: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "estimated_time_hours_total",
			Help:      "Sum of estimated assembly time over all groups.",
		}),
		StageDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time of each pipeline stage.",
		}, []string{"stage"}),
		Diagnostics: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "diagnostics",
			Help:      "Number of diagnostics emitted by level.",
		}, []string{"level"}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last completed run.",
		}),
	}

	c.registry.MustRegister(
		c.Groups,
		c.Samples,
		c.MemoryGB,
		c.TimeHours,
		c.StageDuration,
		c.Diagnostics,
		c.LastRun,
	)
	return c
}

// Observe records a finished run. events may include diagnostics produced
// outside the engine, such as table loading warnings.
func (c *Collector) Observe(res *grouping.Result, events []diag.Event, at time.Time) {
	s := res.Summary
	c.Groups.WithLabelValues(sample.Individual.String()).Set(float64(s.IndividualAssemblies))
	c.Groups.WithLabelValues(sample.CoAssembly.String()).Set(float64(s.CoAssemblies))
	c.Samples.Set(float64(s.TotalSamples))
	c.MemoryGB.Set(float64(s.EstimatedTotalMemoryGB))
	c.TimeHours.Set(float64(s.EstimatedTotalTimeHours))

	for _, st := range res.Stages {
		c.StageDuration.WithLabelValues(st.Stage).Set(st.Duration.Seconds())
	}

	counts := diag.Count(events)
	for _, level := range []diag.Level{diag.LevelDebug, diag.LevelInfo, diag.LevelWarn} {
		c.Diagnostics.WithLabelValues(level.String()).Set(float64(counts[level]))
	}

	c.LastRun.Set(float64(at.Unix()))
}

// WriteFile writes the gathered metrics to path, creating its directory.
// The file is written to a temporary name and renamed into place.
func (c *Collector) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create metrics directory: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics file %s: %w", path, err)
	}
	return nil
}
