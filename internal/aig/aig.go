package aig

import (
	"fmt"

	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"github.com/vk/circuitgo/internal/circuit"
	"github.com/vk/circuitgo/internal/evaluator"
	"github.com/vk/circuitgo/internal/wireid"
)

// word holds one literal per bit, least significant bit first.
type word [circuit.SignalBits]z.Lit

// Netlist is a compiled network.
type Netlist struct {
	c      *logic.C
	wires  map[wireid.Identifier]word
	inputs map[wireid.Identifier]word
}

type compiler struct {
	graph      *circuit.Graph
	net        *Netlist
	inProgress map[wireid.Identifier]struct{}
	path       []wireid.Identifier
}

// Compile builds the cones of the target wires. Wires listed in inputs are
// not expanded: each becomes sixteen free circuit inputs whose values are
// supplied to Eval. Input wires need not be defined in g.
//
// Compile reports undefined wires and cycles with the same error types as
// the evaluator.
func Compile(g *circuit.Graph, targets []wireid.Identifier, inputs ...wireid.Identifier) (*Netlist, error) {
	n := &Netlist{
		c:      logic.NewCCap(16 * (g.Len() + 1)),
		wires:  make(map[wireid.Identifier]word),
		inputs: make(map[wireid.Identifier]word, len(inputs)),
	}
	for _, id := range inputs {
		if _, ok := n.inputs[id]; ok {
			continue
		}
		var w word
		for i := range w {
			w[i] = n.c.Lit()
		}
		n.inputs[id] = w
		n.wires[id] = w
	}

	cp := &compiler{graph: g, net: n, inProgress: make(map[wireid.Identifier]struct{})}
	for _, id := range targets {
		if _, err := cp.wire(id, ""); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (cp *compiler) operand(op circuit.Operand, from wireid.Identifier) (word, error) {
	if op.IsLiteral() {
		return cp.constant(op.Value()), nil
	}
	return cp.wire(op.Ref(), from)
}

func (cp *compiler) constant(v circuit.Signal) word {
	var w word
	for i := range w {
		if v&(1<<i) != 0 {
			w[i] = cp.net.c.T
		} else {
			w[i] = cp.net.c.F
		}
	}
	return w
}

func (cp *compiler) wire(id, from wireid.Identifier) (word, error) {
	if w, ok := cp.net.wires[id]; ok {
		return w, nil
	}
	if _, busy := cp.inProgress[id]; busy {
		path := append([]wireid.Identifier(nil), cp.path...)
		for i, p := range path {
			if p == id {
				path = path[i:]
				break
			}
		}
		return word{}, &evaluator.CycleError{ID: id, Path: append(path, id)}
	}
	gate, ok := cp.graph.Gate(id)
	if !ok {
		return word{}, &evaluator.UnknownIdentifierError{ID: id, ReferencedBy: from}
	}

	cp.inProgress[id] = struct{}{}
	cp.path = append(cp.path, id)
	defer func() {
		delete(cp.inProgress, id)
		cp.path = cp.path[:len(cp.path)-1]
	}()

	ops := gate.Operands()
	in := make([]word, len(ops))
	for i, op := range ops {
		w, err := cp.operand(op, id)
		if err != nil {
			return word{}, err
		}
		in[i] = w
	}

	out, err := cp.gate(gate, in)
	if err != nil {
		return word{}, err
	}
	cp.net.wires[id] = out
	return out, nil
}

func (cp *compiler) gate(gate circuit.Gate, in []word) (word, error) {
	c := cp.net.c
	var out word
	switch g := gate.(type) {
	case circuit.Direct:
		out = in[0]
	case circuit.And:
		for i := range out {
			out[i] = c.And(in[0][i], in[1][i])
		}
	case circuit.Or:
		for i := range out {
			out[i] = c.Or(in[0][i], in[1][i])
		}
	case circuit.Not:
		for i := range out {
			out[i] = in[0][i].Not()
		}
	case circuit.ShiftLeft:
		k := int(g.Shift)
		for i := range out {
			if i >= k {
				out[i] = in[0][i-k]
			} else {
				out[i] = c.F
			}
		}
	case circuit.ShiftRight:
		k := int(g.Shift)
		for i := range out {
			if i+k < len(out) {
				out[i] = in[0][i+k]
			} else {
				out[i] = c.F
			}
		}
	default:
		return word{}, fmt.Errorf("unsupported gate %T", gate)
	}
	return out, nil
}

// Len returns the number of nodes in the underlying circuit, constants and
// inputs included.
func (n *Netlist) Len() int {
	return n.c.Len()
}

// Constant returns the value of a compiled wire when it does not depend on
// any free input.
func (n *Netlist) Constant(id wireid.Identifier) (circuit.Signal, bool) {
	w, ok := n.wires[id]
	if !ok {
		return 0, false
	}
	var v circuit.Signal
	for i, m := range w {
		switch m {
		case n.c.T:
			v |= 1 << i
		case n.c.F:
		default:
			return 0, false
		}
	}
	return v, true
}
