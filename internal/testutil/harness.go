package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/cogroup/internal/app"
	"github.com/vk/cogroup/internal/config"
	"github.com/vk/cogroup/internal/grouping"
	"github.com/vk/cogroup/internal/hcl"
)

// Fixture file locations relative to the harness root.
const (
	SimilarityDir = "similarity"
	VariableDir   = "variables"
	MetadataFile  = "metadata.csv"
	OutputDir     = "out"
	MetricsFile   = "out/cogroup.prom"
	ConfigFile    = "cogroup.hcl"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	Result    *grouping.Result
	Root      string
}

// Path resolves a harness-relative path.
func (r *HarnessResult) Path(rel string) string {
	return filepath.Join(r.Root, rel)
}

// RunIntegrationTest provides a standardized harness for running integration tests
// using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files)
}

// RunIntegrationTestWithContext writes files under a temporary root and runs
// the full application against them. Inputs and outputs are pointed at the
// fixture layout described by the constants of this package; a ConfigFile
// entry in files is loaded as HCL before those paths are applied.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()

	root := t.TempDir()
	WriteFiles(t, root, files)

	appConfig := &app.Config{
		LogLevel:  "debug",
		LogFormat: "text",
		Override: func(m *config.Model) error {
			m.Inputs.SimilarityDir = filepath.Join(root, SimilarityDir)
			m.Inputs.VariableDir = filepath.Join(root, VariableDir)
			m.Inputs.MetadataPath = filepath.Join(root, MetadataFile)
			m.Output.Dir = filepath.Join(root, OutputDir)
			m.Output.MetricsFile = filepath.Join(root, MetricsFile)
			return nil
		},
	}
	if _, ok := files[ConfigFile]; ok {
		appConfig.ConfigPaths = []string{filepath.Join(root, ConfigFile)}
	}

	logBuffer := &SafeBuffer{}
	result := &HarnessResult{Root: root}

	testApp, err := app.NewApp(logBuffer, appConfig, hcl.NewLoader())
	if err != nil {
		result.Err = err
	} else {
		result.App = testApp
		result.Result, result.Err = testApp.Run(ctx)
	}

	if os.Getenv("COGROUP_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}
	result.LogOutput = logBuffer.String()
	return result
}

// WriteFiles writes every name/content pair below root, creating directories.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(Unindent(content)), 0o644))
	}
}
