package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ghodss/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/circuitgo/internal/circuit"
	"github.com/vk/circuitgo/internal/config"
	"github.com/vk/circuitgo/internal/evaluator"
	"github.com/vk/circuitgo/internal/hcl_adapter"
)

const canonicalCircuit = `123 -> x
456 -> y
x AND y -> d
x OR y -> e
x LSHIFT 2 -> f
y RSHIFT 2 -> g
NOT x -> h
NOT y -> i
`

// rewireCircuit has a chain b -> c -> a and an unrelated wire z.
const rewireCircuit = `123 -> b
b LSHIFT 1 -> c
c OR 1 -> a
456 -> y
NOT y -> z
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func newTestApp(t *testing.T, cfg Config) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	c, err := NewConfig(cfg)
	require.NoError(t, err)

	out, logs := &bytes.Buffer{}, &bytes.Buffer{}
	a, err := NewApp(out, logs, c, hcl_adapter.NewLoader())
	require.NoError(t, err)
	t.Cleanup(func() {
		if os.Getenv("CIRCUITGO_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return a, out, logs
}

func TestNewConfig(t *testing.T) {
	_, err := NewConfig(Config{})
	assert.Error(t, err)

	_, err = NewConfig(Config{CircuitPath: "c.txt", Format: "xml"})
	assert.ErrorContains(t, err, "invalid format")

	_, err = NewConfig(Config{CircuitPath: "c.txt", Overrides: []config.Override{{Wire: "b"}}})
	assert.ErrorContains(t, err, "exactly one of value or from")

	cfg, err := NewConfig(Config{RunPath: "run.hcl"})
	require.NoError(t, err)
	assert.Equal(t, FormatText, cfg.Format)
}

func TestEvaluate_Canonical(t *testing.T) {
	path := writeTemp(t, "input.txt", canonicalCircuit)
	a, _, _ := newTestApp(t, Config{
		CircuitPath: path,
		Targets:     []string{"d", "e", "f", "g", "h", "i", "x", "y"},
	})

	report, err := a.Evaluate(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Passes, 1)

	want := map[string]circuit.Signal{
		"d": 72, "e": 507, "f": 492, "g": 114,
		"h": 65412, "i": 65079, "x": 123, "y": 456,
	}
	pass := report.Passes[0]
	assert.Equal(t, PassInitial, pass.Name)
	for wire, v := range want {
		got, ok := pass.Value(wire)
		require.True(t, ok, wire)
		assert.Equal(t, v, got, wire)
	}
}

func TestNewApp_DefaultTarget(t *testing.T) {
	path := writeTemp(t, "input.txt", rewireCircuit)
	a, _, _ := newTestApp(t, Config{CircuitPath: path})
	assert.Equal(t, []string{DefaultTarget}, a.Model().Targets)
}

func TestEvaluate_Rewire(t *testing.T) {
	testCases := []struct {
		name       string
		invalidate string
		metrics    []string
	}{
		{
			name:       "clear all",
			invalidate: config.InvalidateAll,
			metrics: []string{
				`circuit_gate_evaluations_total{gate="direct"} 4`,
				`circuit_gate_evaluations_total{gate="not"} 2`,
				`circuit_cache_hits_total 1`,
				`circuit_cache_invalidations_total 5`,
			},
		},
		{
			name:       "dependents only",
			invalidate: config.InvalidateDependents,
			metrics: []string{
				`circuit_gate_evaluations_total{gate="direct"} 3`,
				`circuit_gate_evaluations_total{gate="not"} 1`,
				`circuit_cache_hits_total 2`,
				`circuit_cache_invalidations_total 3`,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTemp(t, "input.txt", rewireCircuit)
			a, _, _ := newTestApp(t, Config{
				CircuitPath: path,
				Targets:     []string{"a", "z"},
				Overrides:   []config.Override{{Wire: "b", From: "a"}},
				Invalidate:  tc.invalidate,
			})

			report, err := a.Evaluate(context.Background())
			require.NoError(t, err)
			require.Len(t, report.Passes, 2)

			initial, rewired := report.Passes[0], report.Passes[1]
			assert.Equal(t, []WireValue{{"a", 247}, {"z", 65079}}, initial.Values)
			assert.Equal(t, PassRewired, rewired.Name)
			assert.Equal(t, []AppliedOverride{{Wire: "b", Value: 247, From: "a"}}, rewired.Overrides)
			assert.Equal(t, []WireValue{{"a", 495}, {"z", 65079}}, rewired.Values)

			var buf bytes.Buffer
			require.NoError(t, a.Metrics().WriteText(&buf))
			for _, m := range tc.metrics {
				assert.Contains(t, buf.String(), m)
			}
			assert.Contains(t, buf.String(), "circuit_overrides_total 1")
		})
	}
}

func TestEvaluate_OverrideSourcesReadInitialState(t *testing.T) {
	path := writeTemp(t, "input.txt", "1 -> p\n2 -> q\np OR q -> a\n")
	a, _, _ := newTestApp(t, Config{
		CircuitPath: path,
		Targets:     []string{"a"},
		Overrides: []config.Override{
			{Wire: "p", From: "q"},
			{Wire: "q", From: "p"},
		},
	})

	report, err := a.Evaluate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []AppliedOverride{
		{Wire: "p", Value: 2, From: "q"},
		{Wire: "q", Value: 1, From: "p"},
	}, report.Passes[1].Overrides)
}

func TestEvaluate_Errors(t *testing.T) {
	t.Run("missing circuit file", func(t *testing.T) {
		a, _, _ := newTestApp(t, Config{CircuitPath: filepath.Join(t.TempDir(), "nope.txt")})
		_, err := a.Evaluate(context.Background())
		assert.ErrorContains(t, err, "failed to open circuit")
	})

	t.Run("syntax error", func(t *testing.T) {
		path := writeTemp(t, "input.txt", "123 -> x\nx XOR y -> a\n")
		a, _, _ := newTestApp(t, Config{CircuitPath: path})
		_, err := a.Evaluate(context.Background())
		assert.ErrorContains(t, err, "failed to build circuit")
		assert.ErrorContains(t, err, "line 2")
	})

	t.Run("unknown target", func(t *testing.T) {
		path := writeTemp(t, "input.txt", "123 -> x\n")
		a, _, _ := newTestApp(t, Config{CircuitPath: path, Targets: []string{"ghost"}})
		_, err := a.Evaluate(context.Background())
		assert.ErrorIs(t, err, evaluator.ErrUnknownIdentifier)
	})

	t.Run("cycle", func(t *testing.T) {
		path := writeTemp(t, "input.txt", "b -> a\na -> b\n")
		a, _, logs := newTestApp(t, Config{CircuitPath: path})
		_, err := a.Evaluate(context.Background())
		assert.ErrorIs(t, err, evaluator.ErrCycleDetected)
		assert.Contains(t, logs.String(), "Circuit contains a cycle.")
	})

	t.Run("override of undefined wire", func(t *testing.T) {
		path := writeTemp(t, "input.txt", "123 -> a\n")
		v := circuit.Signal(1)
		a, _, _ := newTestApp(t, Config{
			CircuitPath: path,
			Overrides:   []config.Override{{Wire: "ghost", Value: &v}},
		})
		_, err := a.Evaluate(context.Background())
		assert.ErrorIs(t, err, evaluator.ErrUnknownIdentifier)
		assert.ErrorContains(t, err, "failed to override 'ghost'")
	})

	t.Run("override source undefined", func(t *testing.T) {
		path := writeTemp(t, "input.txt", "123 -> a\n")
		a, _, _ := newTestApp(t, Config{
			CircuitPath: path,
			Overrides:   []config.Override{{Wire: "a", From: "ghost"}},
		})
		_, err := a.Evaluate(context.Background())
		assert.ErrorIs(t, err, evaluator.ErrUnknownIdentifier)
	})
}

func TestEvaluate_DanglingWireIsLoggedNotFatal(t *testing.T) {
	path := writeTemp(t, "input.txt", "123 -> a\nghost AND a -> b\n")
	a, _, logs := newTestApp(t, Config{CircuitPath: path})

	report, err := a.Evaluate(context.Background())
	require.NoError(t, err)
	v, _ := report.Passes[0].Value("a")
	assert.Equal(t, circuit.Signal(123), v)
	assert.Contains(t, logs.String(), "Wire reads undefined wires.")
}

func TestEvaluate_Verify(t *testing.T) {
	path := writeTemp(t, "input.txt", canonicalCircuit+"d OR h -> a\n")
	v := circuit.Signal(0xffff)
	a, _, _ := newTestApp(t, Config{
		CircuitPath: path,
		Targets:     []string{"a", "f", "g", "42"},
		Overrides:   []config.Override{{Wire: "x", Value: &v}},
		Verify:      true,
	})

	report, err := a.Evaluate(context.Background())
	require.NoError(t, err)
	for _, p := range report.Passes {
		assert.True(t, p.Verified, p.Name)
	}
	lit, _ := report.Passes[0].Value("42")
	assert.Equal(t, circuit.Signal(42), lit)
}

func TestVerifyPass_Mismatch(t *testing.T) {
	g := circuit.NewGraph()
	g.Set("a", circuit.Direct{In: circuit.Literal(7)})
	pass := &Pass{Name: PassInitial, Values: []WireValue{{"a", 8}}}

	err := verifyPass(context.Background(), g, pass)
	assert.ErrorIs(t, err, ErrVerification)
	assert.False(t, pass.Verified)
}

func TestRun_RunFileAndFormats(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "input.txt"), []byte(rewireCircuit), 0644))
	runPath := filepath.Join(dir, "run.hcl")
	require.NoError(t, os.WriteFile(runPath, []byte(`
circuit = "input.txt"
targets = ["a"]

override "b" {
  from = "a"
}
`), 0644))

	t.Run("json", func(t *testing.T) {
		a, out, _ := newTestApp(t, Config{RunPath: runPath, Format: FormatJSON})
		require.NoError(t, a.Run(context.Background()))

		var report Report
		require.NoError(t, json.Unmarshal(out.Bytes(), &report))
		require.Len(t, report.Passes, 2)
		v, _ := report.Passes[1].Value("a")
		assert.Equal(t, circuit.Signal(495), v)
		assert.Equal(t, filepath.Join(dir, "input.txt"), report.Circuit)
	})

	t.Run("yaml", func(t *testing.T) {
		a, out, _ := newTestApp(t, Config{RunPath: runPath, Format: FormatYAML})
		require.NoError(t, a.Run(context.Background()))

		var report Report
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &report))
		require.Len(t, report.Passes, 2)
		assert.Equal(t, []AppliedOverride{{Wire: "b", Value: 247, From: "a"}}, report.Passes[1].Overrides)
	})

	t.Run("text with metrics", func(t *testing.T) {
		a, out, _ := newTestApp(t, Config{RunPath: runPath, Metrics: true})
		require.NoError(t, a.Run(context.Background()))

		assert.Contains(t, out.String(), "override from a")
		assert.Contains(t, out.String(), "495")
		assert.Contains(t, out.String(), "# TYPE circuit_gate_evaluations_total counter")
	})

	t.Run("cli targets replace run file targets", func(t *testing.T) {
		a, _, _ := newTestApp(t, Config{RunPath: runPath, Targets: []string{"c"}})
		assert.Equal(t, []string{"c"}, a.Model().Targets)
	})
}

func TestNewApp_RunFileErrors(t *testing.T) {
	cfg, err := NewConfig(Config{RunPath: filepath.Join(t.TempDir(), "missing.hcl")})
	require.NoError(t, err)
	_, err = NewApp(&bytes.Buffer{}, &bytes.Buffer{}, cfg, hcl_adapter.NewLoader())
	assert.ErrorContains(t, err, "failed to load run configuration")

	runPath := writeTemp(t, "run.hcl", `targets = ["a"]`)
	cfg, err = NewConfig(Config{RunPath: runPath})
	require.NoError(t, err)
	_, err = NewApp(&bytes.Buffer{}, &bytes.Buffer{}, cfg, hcl_adapter.NewLoader())
	assert.ErrorContains(t, err, "circuit path is required")
}

func TestVerifyPass_OverriddenWiresAreFreeInputs(t *testing.T) {
	// a and b form a loop in the circuit as written; overriding b breaks it.
	g := circuit.NewGraph()
	g.Set("a", circuit.Or{A: circuit.Reference("b"), B: circuit.Literal(1)})
	g.Set("b", circuit.Direct{In: circuit.Reference("a")})
	g.Set("k", circuit.Direct{In: circuit.Literal(9)})

	pass := &Pass{
		Name:      PassRewired,
		Overrides: []AppliedOverride{{Wire: "b", Value: 6}},
		Values:    []WireValue{{"a", 7}, {"b", 6}, {"k", 9}},
	}
	require.NoError(t, verifyPass(context.Background(), g, pass))
	assert.True(t, pass.Verified)

	wrong := &Pass{
		Name:      PassRewired,
		Overrides: []AppliedOverride{{Wire: "b", Value: 6}},
		Values:    []WireValue{{"a", 6}},
	}
	assert.ErrorIs(t, verifyPass(context.Background(), g, wrong), ErrVerification)

	unbroken := &Pass{Name: PassInitial, Values: []WireValue{{"a", 7}}}
	assert.ErrorIs(t, verifyPass(context.Background(), g, unbroken), evaluator.ErrCycleDetected)
}

func TestEvaluate_VerifyRewiredFeedback(t *testing.T) {
	path := writeTemp(t, "input.txt", rewireCircuit)
	a, _, logs := newTestApp(t, Config{
		CircuitPath: path,
		Targets:     []string{"a", "c", "z"},
		Overrides:   []config.Override{{Wire: "b", From: "a"}},
		Invalidate:  config.InvalidateDependents,
		Verify:      true,
	})

	report, err := a.Evaluate(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Passes, 2)
	assert.True(t, report.Passes[1].Verified)
	assert.Contains(t, logs.String(), "free_inputs=1")
}
