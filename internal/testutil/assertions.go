package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/circuitgo/internal/circuit"
)

// RequireValues asserts that the named pass of a successful run resolved
// every wire in want to the given value.
func RequireValues(t *testing.T, result *HarnessResult, pass string, want map[string]circuit.Signal) {
	t.Helper()
	require.NoError(t, result.Err)
	require.NotNil(t, result.Report)

	for _, p := range result.Report.Passes {
		if p.Name != pass {
			continue
		}
		for wire, v := range want {
			got, ok := p.Value(wire)
			require.True(t, ok, "wire '%s' missing from %s pass", wire, pass)
			require.Equal(t, v, got, "wire '%s' in %s pass", wire, pass)
		}
		return
	}
	require.Failf(t, "pass not found", "no %s pass in report", pass)
}
