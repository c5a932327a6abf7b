package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/cogroup/internal/grouping"
	"github.com/vk/cogroup/internal/sample"
)

func fixtureGroups() []sample.Group {
	return []sample.Group{
		{
			Samples:            []sample.ID{"S1", "S2", "S3"},
			Strategy:           sample.CoAssembly,
			Basis:              "k-mer similarity + consistent Location",
			EstimatedMemoryGB:  16,
			EstimatedTimeHours: 6,
			EstimatedReads:     30_000_000,
		},
		{
			Samples:            []sample.ID{"S4"},
			Strategy:           sample.Individual,
			Basis:              "no similar samples",
			EstimatedMemoryGB:  4,
			EstimatedTimeHours: 1,
			EstimatedReads:     10_000_000,
		},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatJSON, "json": FormatJSON, "YAML": FormatYAML, " all ": FormatAll} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWrite(t *testing.T) {
	groups := fixtureGroups()
	summary := grouping.Summarize(groups)

	testCases := []struct {
		format Format
		want   []string
	}{
		{FormatJSON, []string{GroupsJSON, SummaryJSON, SummaryText}},
		{FormatYAML, []string{GroupsYAML, SummaryYAML, SummaryText}},
		{FormatAll, []string{GroupsJSON, SummaryJSON, GroupsYAML, SummaryYAML, SummaryText}},
	}

	for _, tc := range testCases {
		t.Run(string(tc.format), func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "out")
			written, err := Write(dir, groups, summary, tc.format)
			require.NoError(t, err)

			var names []string
			for _, p := range written {
				names = append(names, filepath.Base(p))
				assert.FileExists(t, p)
			}
			assert.Equal(t, tc.want, names)
		})
	}
}

func TestWrite_JSONShape(t *testing.T) {
	dir := t.TempDir()
	groups := fixtureGroups()
	_, err := Write(dir, groups, grouping.Summarize(groups), FormatJSON)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, GroupsJSON))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"strategy": "co-assembly"`)
	assert.Contains(t, string(data), `"estimated_memory_gb": 16`)

	data, err = os.ReadFile(filepath.Join(dir, SummaryJSON))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"total_groups": 2,
		"individual_assemblies": 1,
		"co_assemblies": 1,
		"total_samples": 4,
		"largest_group_size": 3,
		"estimated_total_memory_gb": 20,
		"estimated_total_time_hours": 7,
		"estimated_total_reads": 40000000,
		"max_memory_gb": 16,
		"max_time_hours": 6
	}`, string(data))
}

func TestWrite_EmptyGroupsIsArray(t *testing.T) {
	dir := t.TempDir()
	_, err := Write(dir, nil, grouping.Summary{}, FormatJSON)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, GroupsJSON))
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestWriteText(t *testing.T) {
	groups := fixtureGroups()
	groups[1].Basis = ""
	summary := grouping.Summarize(groups)
	summary.RunID = "run-1"

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, groups, summary))
	out := buf.String()

	assert.Contains(t, out, "Strategic Co-assembly Groups Summary\n====")
	assert.Contains(t, out, "Run ID: run-1\n")
	assert.Contains(t, out, "Total groups: 2\n")
	assert.Contains(t, out, "Estimated total memory: 20 GB\n")
	assert.Contains(t, out, "Group 001: co-assembly\n  Samples (3): S1, S2, S3\n")
	assert.Contains(t, out, "Group 002: individual\n")
	assert.Contains(t, out, "  Basis: not specified\n")
	assert.Contains(t, out, "  Time: 1 hours\n\n")
}

func TestReadGroups_RoundTrip(t *testing.T) {
	groups := fixtureGroups()
	dir := t.TempDir()
	_, err := Write(dir, groups, grouping.Summarize(groups), FormatAll)
	require.NoError(t, err)

	for _, name := range []string{GroupsJSON, GroupsYAML} {
		got, err := ReadGroups(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Equal(t, groups, got, name)
	}
}

func TestReadGroups_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadGroups(filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "failed to read groups file")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"samples": ["S1"], "strategy": "hybrid"}]`), 0o644))
	_, err = ReadGroups(bad)
	assert.ErrorContains(t, err, "failed to decode")

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`[{"samples": [], "strategy": "individual"}]`), 0o644))
	_, err = ReadGroups(empty)
	assert.ErrorContains(t, err, "group 1")
}
