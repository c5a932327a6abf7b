package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertStageRan checks the log output within a HarnessResult to confirm
// that a pipeline stage has completed.
func AssertStageRan(t *testing.T, result *HarnessResult, stage string) {
	t.Helper()

	expected := fmt.Sprintf("msg=\"Stage finished.\" stage=%s", stage)
	require.True(t,
		strings.Contains(result.LogOutput, expected),
		"expected log output for stage %q was not found in logs", stage,
	)
}

// AssertLogged checks that a record with the given level and message was
// written.
func AssertLogged(t *testing.T, result *HarnessResult, level, msg string) {
	t.Helper()

	expected := fmt.Sprintf("level=%s msg=%q", level, msg)
	require.True(t,
		strings.Contains(result.LogOutput, expected),
		"expected %s record %q was not found in logs", level, msg,
	)
}
