package integration_tests

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/vk/circuitgo/internal/app"
	"github.com/vk/circuitgo/internal/circuit"
	"github.com/vk/circuitgo/internal/cli"
	"github.com/vk/circuitgo/internal/config"
)

func signal(v circuit.Signal) *circuit.Signal { return &v }

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		args           []string
		expectExit     bool
		expectErr      bool
		expectedConfig *app.Config
		checkOutput    func(t *testing.T, output string)
	}{
		{
			name: "Happy Path with all flags",
			args: []string{
				"-circuit", "/test/input.txt",
				"--run=/test/run.hcl",
				"-target", "a",
				"-target=d",
				"-override", "b=@a",
				"-override=c=3176",
				"--invalidate=dependents",
				"--format=yaml",
				"--verify",
				"--metrics",
				"--log-level=debug",
				"--log-format=json",
			},
			expectedConfig: &app.Config{
				CircuitPath: "/test/input.txt",
				RunPath:     "/test/run.hcl",
				Targets:     []string{"a", "d"},
				Overrides: []config.Override{
					{Wire: "b", From: "a"},
					{Wire: "c", Value: signal(3176)},
				},
				Invalidate: config.InvalidateDependents,
				Format:     app.FormatYAML,
				Verify:     true,
				Metrics:    true,
				LogLevel:   "debug",
				LogFormat:  "json",
			},
		},
		{
			name: "Shorthand flag and defaults",
			args: []string{"-c", "/short/input.txt"},
			expectedConfig: &app.Config{
				CircuitPath: "/short/input.txt",
				Format:      app.FormatText,
				LogLevel:    "warn",
				LogFormat:   "text",
			},
		},
		{
			name: "Positional argument for path",
			args: []string{"/positional/input.txt"},
			expectedConfig: &app.Config{
				CircuitPath: "/positional/input.txt",
				Format:      app.FormatText,
				LogLevel:    "warn",
				LogFormat:   "text",
			},
		},
		{
			name: "Run file alone is enough",
			args: []string{"-run", "/runs"},
			expectedConfig: &app.Config{
				RunPath:   "/runs",
				Format:    app.FormatText,
				LogLevel:  "warn",
				LogFormat: "text",
			},
		},
		{
			name:       "Help flag triggers clean exit",
			args:       []string{"-h"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.True(t, strings.Contains(output, "Usage:"), "Expected help text to be printed")
			},
		},
		{
			name:       "No path triggers clean exit with usage",
			args:       []string{},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.True(t, strings.Contains(output, "Usage:"), "Expected help text to be printed")
			},
		},
		{
			name:      "Invalid log level returns an error",
			args:      []string{"--log-level=foo", "/path"},
			expectErr: true,
		},
		{
			name:      "Invalid log format returns an error",
			args:      []string{"--log-format=yaml", "/path"},
			expectErr: true,
		},
		{
			name:      "Invalid output format returns an error",
			args:      []string{"--format=xml", "/path"},
			expectErr: true,
		},
		{
			name:      "Invalid invalidation strategy returns an error",
			args:      []string{"--invalidate=some", "/path"},
			expectErr: true,
		},
		{
			name:      "Malformed override returns an error",
			args:      []string{"-override", "b", "/path"},
			expectErr: true,
		},
		{
			name:      "Override value out of range returns an error",
			args:      []string{"-override", "b=65536", "/path"},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			out := &bytes.Buffer{}

			// --- Act ---
			appConfig, shouldExit, err := cli.Parse(tc.args, out)

			// --- Assert ---
			if tc.expectErr {
				require.Error(t, err)
				var exitErr *cli.ExitError
				require.ErrorAs(t, err, &exitErr, "Expected error to be of type ExitError")
				require.Equal(t, 2, exitErr.Code)
				return // End test here if an error is expected
			}
			require.NoError(t, err)

			require.Equal(t, tc.expectExit, shouldExit)

			if tc.expectedConfig != nil {
				if diff := cmp.Diff(tc.expectedConfig, appConfig, cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("Config mismatch (-want +got):\n%s", diff)
				}
			}

			if tc.checkOutput != nil {
				tc.checkOutput(t, out.String())
			}
		})
	}
}
