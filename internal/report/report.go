// Package report writes the grouping results to disk and reads them back.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/cogroup/internal/grouping"
	"github.com/vk/cogroup/internal/sample"
	"gopkg.in/yaml.v3"
)

// File names inside the output directory.
const (
	GroupsJSON  = "coassembly_groups.json"
	GroupsYAML  = "coassembly_groups.yaml"
	SummaryJSON = "assembly_summary.json"
	SummaryYAML = "assembly_summary.yaml"
	SummaryText = "assembly_summary.txt"
)

// Format selects the machine-readable encodings to write. The text summary
// is always written.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatAll  Format = "all"
)

// ErrUnknownFormat is returned for a Format outside json, yaml and all.
var ErrUnknownFormat = errors.New("report: unknown format")

// ParseFormat validates s as a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatAll:
		return f, nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
	}
}

func (f Format) json() bool { return f == FormatJSON || f == FormatAll }
func (f Format) yaml() bool { return f == FormatYAML || f == FormatAll }

// Write stores groups and summary under dir and returns the written paths
// in write order.
func Write(dir string, groups []sample.Group, summary grouping.Summary, format Format) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	if groups == nil {
		groups = []sample.Group{}
	}

	type output struct {
		name   string
		enable bool
		encode func(io.Writer) error
	}
	outputs := []output{
		{GroupsJSON, format.json(), func(w io.Writer) error { return writeJSON(w, groups) }},
		{SummaryJSON, format.json(), func(w io.Writer) error { return writeJSON(w, summary) }},
		{GroupsYAML, format.yaml(), func(w io.Writer) error { return writeYAML(w, groups) }},
		{SummaryYAML, format.yaml(), func(w io.Writer) error { return writeYAML(w, summary) }},
		{SummaryText, true, func(w io.Writer) error { return WriteText(w, groups, summary) }},
	}

	var written []string
	for _, o := range outputs {
		if !o.enable {
			continue
		}
		path := filepath.Join(dir, o.name)
		if err := writeFile(path, o.encode); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeFile(path string, encode func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	if err := encode(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// WriteText renders the human-readable summary.
func WriteText(w io.Writer, groups []sample.Group, summary grouping.Summary) error {
	var b strings.Builder
	b.WriteString("Strategic Co-assembly Groups Summary\n")
	b.WriteString("====================================\n\n")
	if summary.RunID != "" {
		fmt.Fprintf(&b, "Run ID: %s\n", summary.RunID)
	}
	fmt.Fprintf(&b, "Total groups: %d\n", summary.TotalGroups)
	fmt.Fprintf(&b, "Individual assemblies: %d\n", summary.IndividualAssemblies)
	fmt.Fprintf(&b, "Co-assemblies: %d\n", summary.CoAssemblies)
	fmt.Fprintf(&b, "Total samples: %d\n", summary.TotalSamples)
	fmt.Fprintf(&b, "Largest group size: %d\n", summary.LargestGroupSize)
	fmt.Fprintf(&b, "Estimated total memory: %d GB\n", summary.EstimatedTotalMemoryGB)
	fmt.Fprintf(&b, "Estimated total time: %d hours\n\n", summary.EstimatedTotalTimeHours)

	b.WriteString("Group Details:\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")
	for i, g := range groups {
		basis := g.Basis
		if basis == "" {
			basis = "not specified"
		}
		fmt.Fprintf(&b, "Group %03d: %s\n", i+1, g.Strategy)
		fmt.Fprintf(&b, "  Samples (%d): %s\n", g.Size(), strings.Join(sample.Strings(g.Samples), ", "))
		fmt.Fprintf(&b, "  Basis: %s\n", basis)
		fmt.Fprintf(&b, "  Memory: %d GB\n", g.EstimatedMemoryGB)
		fmt.Fprintf(&b, "  Time: %d hours\n\n", g.EstimatedTimeHours)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// ReadGroups loads a groups file written by Write. Files ending in .yaml or
// .yml are decoded as YAML, everything else as JSON. Every group is
// validated.
func ReadGroups(path string) ([]sample.Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read groups file: %w", err)
	}

	var groups []sample.Group
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &groups)
	default:
		err = json.Unmarshal(data, &groups)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	for i, g := range groups {
		if err := g.Validate(); err != nil {
			return nil, fmt.Errorf("%s: group %d: %w", path, i+1, err)
		}
	}
	return groups, nil
}
