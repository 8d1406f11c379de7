package app

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/vk/circuitgo/internal/builder"
	"github.com/vk/circuitgo/internal/circuit"
	"github.com/vk/circuitgo/internal/config"
	"github.com/vk/circuitgo/internal/ctxlog"
	"github.com/vk/circuitgo/internal/dag"
	"github.com/vk/circuitgo/internal/evaluator"
	"github.com/vk/circuitgo/internal/wireid"
)

// Pass names used in reports.
const (
	PassInitial = "initial"
	PassRewired = "rewired"
)

// Run evaluates the configured circuit and writes the report, followed by
// the evaluator metrics when they were requested.
func (a *App) Run(ctx context.Context) error {
	report, err := a.Evaluate(ctx)
	if err != nil {
		return err
	}

	if err := report.Render(a.outW, a.config.Format); err != nil {
		return fmt.Errorf("failed to render results: %w", err)
	}
	if a.config.Metrics {
		if err := a.collector.WriteText(a.outW); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

// Evaluate builds the circuit and runs the resolution passes. The initial
// pass resolves every target on the circuit as written. When overrides are
// configured they are applied, the cache is invalidated and a second pass
// resolves the targets again.
func (a *App) Evaluate(ctx context.Context) (*Report, error) {
	ctx = ctxlog.With(ctxlog.WithLogger(ctx, a.logger), "circuit", a.model.CircuitPath)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Evaluate started.")

	graph, err := loadCircuit(a.model.CircuitPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("Circuit built.", "wires", graph.Len())

	deps := preflight(ctx, graph)

	e := evaluator.New(graph, evaluator.WithLogger(logger), evaluator.WithHook(a.collector))
	report := &Report{Circuit: a.model.CircuitPath}

	initial, err := a.resolvePass(ctx, e, graph, PassInitial, nil)
	if err != nil {
		return nil, err
	}
	report.Passes = append(report.Passes, *initial)

	if len(a.model.Overrides) == 0 {
		logger.Debug("No overrides configured, single pass complete.")
		return report, nil
	}

	applied, err := a.rewire(ctx, e, deps)
	if err != nil {
		return nil, err
	}

	rewired, err := a.resolvePass(ctx, e, graph, PassRewired, applied)
	if err != nil {
		return nil, err
	}
	report.Passes = append(report.Passes, *rewired)

	logger.Debug("App.Evaluate finished.", "passes", len(report.Passes))
	return report, nil
}

func loadCircuit(path string) (*circuit.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open circuit: %w", err)
	}
	defer f.Close()

	graph, err := builder.BuildReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to build circuit %s: %w", path, err)
	}
	return graph, nil
}

// preflight indexes the circuit and logs structural problems. Neither a
// dangling reference nor a cycle is fatal here: only a target that reaches
// one fails, and the evaluator reports that precisely.
func preflight(ctx context.Context, graph *circuit.Graph) *dag.Graph {
	logger := ctxlog.FromContext(ctx)
	deps := dag.FromCircuit(graph)

	dangling := deps.Dangling()
	wires := make([]wireid.Identifier, 0, len(dangling))
	for id := range dangling {
		wires = append(wires, id)
	}
	sort.Slice(wires, func(i, j int) bool { return wires[i] < wires[j] })
	for _, id := range wires {
		logger.Warn("Wire reads undefined wires.", "wire", id.String(), "undefined", dangling[id])
	}

	if err := deps.DetectCycles(); err != nil {
		logger.Warn("Circuit contains a cycle.", "error", err)
	}
	return deps
}

// resolvePass resolves every target. The circuit as written is kept for
// verification; the evaluator owns its own, possibly rewired, copy.
func (a *App) resolvePass(ctx context.Context, e *evaluator.Evaluator, circuitGraph *circuit.Graph, name string, applied []AppliedOverride) (*Pass, error) {
	logger := ctxlog.FromContext(ctx)
	pass := &Pass{Name: name, Overrides: applied}

	for _, target := range a.model.Targets {
		v, err := e.Resolve(target)
		if err != nil {
			return nil, fmt.Errorf("%s pass: failed to resolve '%s': %w", name, target, err)
		}
		pass.Values = append(pass.Values, WireValue{Wire: target, Value: v})
		logger.Info("Wire resolved.", "pass", name, "wire", target, "value", uint16(v))
	}

	if a.config.Verify {
		if err := verifyPass(ctx, circuitGraph, pass); err != nil {
			return nil, err
		}
	}
	return pass, nil
}

// rewire applies the configured overrides and invalidates the cache. Every
// source value is taken before the first override is applied, so each
// override reads the circuit as it was in the initial pass.
func (a *App) rewire(ctx context.Context, e *evaluator.Evaluator, deps *dag.Graph) ([]AppliedOverride, error) {
	logger := ctxlog.FromContext(ctx)

	applied := make([]AppliedOverride, 0, len(a.model.Overrides))
	for _, o := range a.model.Overrides {
		ao := AppliedOverride{Wire: o.Wire, From: o.From}
		if o.Value != nil {
			ao.Value = *o.Value
		} else {
			v, err := e.Resolve(o.From)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve source of override %s: %w", o, err)
			}
			ao.Value = v
		}
		applied = append(applied, ao)
	}

	wires := make([]wireid.Identifier, 0, len(applied))
	for _, ao := range applied {
		if err := e.Override(ao.Wire, ao.Value); err != nil {
			return nil, fmt.Errorf("failed to override '%s': %w", ao.Wire, err)
		}
		wires = append(wires, wireid.Identifier(ao.Wire))
		logger.Info("Wire overridden.", "wire", ao.Wire, "value", uint16(ao.Value), "from", ao.From)
	}

	switch a.model.Invalidate {
	case config.InvalidateDependents:
		stale := deps.TransitiveDependents(wires...)
		e.Forget(stale...)
		logger.Debug("Invalidated dependents of overridden wires.", "stale", len(stale), "cached", e.CacheLen())
	default:
		e.ClearCache()
		logger.Debug("Invalidated the whole cache.")
	}
	return applied, nil
}
