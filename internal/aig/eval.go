package aig

import (
	"fmt"

	"github.com/go-air/gini/z"
	"github.com/vk/circuitgo/internal/circuit"
	"github.com/vk/circuitgo/internal/wireid"
)

// Assignment is the result of evaluating a Netlist for one set of inputs.
type Assignment struct {
	net *Netlist
	vs  []bool
}

// Eval evaluates the netlist with the given values for its free inputs.
// Every input wire named at compile time must be given a value.
func (n *Netlist) Eval(inputs map[wireid.Identifier]circuit.Signal) (*Assignment, error) {
	vs := make([]bool, n.c.Len())
	// The constant node is variable 1; its positive literal is true.
	vs[n.c.T.Var()] = true

	for id, w := range n.inputs {
		v, ok := inputs[id]
		if !ok {
			return nil, fmt.Errorf("missing value for input wire %q", id)
		}
		for i, m := range w {
			vs[m.Var()] = v&(1<<i) != 0
		}
	}
	n.c.Eval(vs)
	return &Assignment{net: n, vs: vs}, nil
}

// Value returns the value of a compiled wire under the assignment.
func (a *Assignment) Value(id wireid.Identifier) (circuit.Signal, error) {
	w, ok := a.net.wires[id]
	if !ok {
		return 0, fmt.Errorf("wire %q was not compiled", id)
	}
	var v circuit.Signal
	for i, m := range w {
		if a.bit(m) {
			v |= 1 << i
		}
	}
	return v, nil
}

func (a *Assignment) bit(m z.Lit) bool {
	b := a.vs[m.Var()]
	if !m.IsPos() {
		return !b
	}
	return b
}
