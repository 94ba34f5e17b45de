package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertValue checks the value of a stat in the live registry after a run.
func AssertValue(t *testing.T, result *HarnessResult, name string, want float64) {
	t.Helper()
	require.NotNil(t, result.App, "no app in result")
	reg := result.App.Registry()
	require.NotNil(t, reg, "graph was never built")

	s, ok := reg.Lookup(name)
	require.True(t, ok, "stat %q not found", name)
	require.InDelta(t, want, s.Value(), 1e-9, "unexpected value for stat %q", name)
}

// AssertValues checks several stats at once.
func AssertValues(t *testing.T, result *HarnessResult, want map[string]float64) {
	t.Helper()
	for name, v := range want {
		AssertValue(t, result, name, v)
	}
}

// AssertOutputLine checks that the printed output contains line verbatim.
func AssertOutputLine(t *testing.T, result *HarnessResult, line string) {
	t.Helper()
	for _, l := range strings.Split(result.Output, "\n") {
		if l == line {
			return
		}
	}
	require.Failf(t, "output line missing", "want line %q in output:\n%s", line, result.Output)
}
