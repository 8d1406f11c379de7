package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/circuitgo/internal/aig"
	"github.com/vk/circuitgo/internal/circuit"
	"github.com/vk/circuitgo/internal/ctxlog"
	"github.com/vk/circuitgo/internal/wireid"
)

// ErrVerification is returned when the evaluator and the bit-level netlist
// disagree on a value.
var ErrVerification = errors.New("verification failed")

// verifyPass recomputes every wire target of the pass on an and-inverter
// netlist compiled from the circuit as written. Wires overridden before the
// pass become free netlist inputs driven with their override values, so the
// check does not depend on the evaluator's rewired graph. Literal targets
// are skipped.
func verifyPass(ctx context.Context, g *circuit.Graph, pass *Pass) error {
	logger := ctxlog.FromContext(ctx)

	targets := make([]wireid.Identifier, 0, len(pass.Values))
	for _, wv := range pass.Values {
		if id, err := wireid.Parse(wv.Wire); err == nil {
			targets = append(targets, id)
		}
	}

	inputs := make([]wireid.Identifier, 0, len(pass.Overrides))
	values := make(map[wireid.Identifier]circuit.Signal, len(pass.Overrides))
	for _, o := range pass.Overrides {
		id := wireid.Identifier(o.Wire)
		inputs = append(inputs, id)
		values[id] = o.Value
	}

	net, err := aig.Compile(g, targets, inputs...)
	if err != nil {
		return fmt.Errorf("%s pass: failed to compile netlist: %w", pass.Name, err)
	}

	var asg *aig.Assignment
	folded := 0
	for _, wv := range pass.Values {
		id, err := wireid.Parse(wv.Wire)
		if err != nil {
			continue
		}

		got, ok := net.Constant(id)
		if ok {
			folded++
		} else {
			if asg == nil {
				if asg, err = net.Eval(values); err != nil {
					return fmt.Errorf("%s pass: failed to evaluate netlist: %w", pass.Name, err)
				}
			}
			if got, err = asg.Value(id); err != nil {
				return fmt.Errorf("%s pass: %w", pass.Name, err)
			}
		}

		if got != wv.Value {
			return fmt.Errorf("%w: %s pass: wire '%s' resolved to %d, netlist computes %d",
				ErrVerification, pass.Name, wv.Wire, wv.Value, got)
		}
	}

	pass.Verified = true
	logger.Debug("Pass verified against netlist.",
		"pass", pass.Name,
		"targets", len(targets),
		"free_inputs", len(inputs),
		"folded", folded,
		"nodes", net.Len(),
	)
	return nil
}
