package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/cogroup/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_OverlaysOnlyPresentAttributes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cogroup.hcl", `
grouping {
  similarity_threshold = 0.75
}

balance {
  remainder = "last"
}

output {
  format = "all"
}
`)

	base := config.Default()
	got, err := NewLoader().Load(context.Background(), base, path)
	require.NoError(t, err)

	assert.Equal(t, 0.75, got.Grouping.SimilarityThreshold)
	assert.Equal(t, base.Grouping.MaxGroupSize, got.Grouping.MaxGroupSize)
	assert.Equal(t, "last", got.Balance.Remainder)
	assert.Equal(t, base.Balance.TargetGroupSize, got.Balance.TargetGroupSize)
	assert.Equal(t, "all", got.Output.Format)
	assert.Equal(t, base.Output.Dir, got.Output.Dir)

	// The base model is not modified.
	assert.Equal(t, 0.8, base.Grouping.SimilarityThreshold)
}

func TestLoad_Functions(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "workers.hcl", `
refine {
  workers = max(1, cpus - 1)
}
`)

	l := &Loader{evalCtx: newEvalContext(4)}
	got, err := l.Load(context.Background(), config.Default(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Refine.Workers)

	l = &Loader{evalCtx: newEvalContext(1)}
	got, err = l.Load(context.Background(), config.Default(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Refine.Workers)
}

func TestLoad_ProfileMerge(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "resources.hcl", `
resources {
  avg_reads_per_sample = 5000000

  profile "coassembly" {
    memory_max_gb = 1024
  }
}
`)

	base := config.Default()
	got, err := NewLoader().Load(context.Background(), base, path)
	require.NoError(t, err)

	assert.Equal(t, int64(5_000_000), got.Resources.AvgReadsPerSample)
	co := got.Resources.Profiles["co-assembly"]
	assert.Equal(t, 1024.0, co.MemoryMaxGB)
	assert.Equal(t, base.Resources.Profiles["co-assembly"].MemoryMinGB, co.MemoryMinGB)
	assert.Equal(t, base.Resources.Profiles["individual"], got.Resources.Profiles["individual"])
	assert.Equal(t, 64.0, base.Resources.Profiles["co-assembly"].MemoryMaxGB)
}

func TestLoad_DirectoryFilesApplyInOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "10-base.hcl", `grouping { max_group_size = 6 }`)
	writeFile(t, dir, "20-override.hcl", `grouping { max_group_size = 10 }`)
	writeFile(t, dir, "README.md", `not config`)

	got, err := NewLoader().Load(context.Background(), config.Default(), dir)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Grouping.MaxGroupSize)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name    string
		path    string
		wantErr string
	}{
		{
			name:    "missing path",
			path:    filepath.Join(dir, "nope.hcl"),
			wantErr: "error accessing config path",
		},
		{
			name:    "wrong extension",
			path:    writeFile(t, dir, "config.yaml", "grouping: {}"),
			wantErr: "does not have the .hcl extension",
		},
		{
			name:    "syntax error",
			path:    writeFile(t, dir, "broken.hcl", "grouping {"),
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "type mismatch",
			path:    writeFile(t, dir, "types.hcl", `grouping { max_group_size = "big" }`),
			wantErr: "failed to decode HCL file",
		},
		{
			name:    "unknown strategy",
			path:    writeFile(t, dir, "profile.hcl", "resources {\n  profile \"hybrid\" {\n  }\n}\n"),
			wantErr: `profile "hybrid"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader().Load(context.Background(), config.Default(), tc.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
