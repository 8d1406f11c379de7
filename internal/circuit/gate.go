package circuit

import (
	"fmt"

	"github.com/vk/circuitgo/internal/wireid"
)

// Gate is the operation that drives a wire. Implementations are the six
// variants below; the set is closed.
type Gate interface {
	// Operands returns the gate inputs in left-to-right source order.
	Operands() []Operand
	// Apply computes the gate output from the resolved operand values, which
	// must be given in the order returned by Operands.
	Apply(in []Signal) Signal
	// String renders the gate expression in source syntax.
	String() string

	isGate()
}

// Direct passes its input through unchanged.
type Direct struct{ In Operand }

// And is the bitwise conjunction of A and B.
type And struct{ A, B Operand }

// Or is the bitwise disjunction of A and B.
type Or struct{ A, B Operand }

// ShiftLeft shifts In left by Shift bits, dropping bits above bit 15.
type ShiftLeft struct {
	In    Operand
	Shift uint8
}

// ShiftRight shifts In right by Shift bits, filling with zeros.
type ShiftRight struct {
	In    Operand
	Shift uint8
}

// Not is the bitwise complement of In.
type Not struct{ In Operand }

func (Direct) isGate()     {}
func (And) isGate()        {}
func (Or) isGate()         {}
func (ShiftLeft) isGate()  {}
func (ShiftRight) isGate() {}
func (Not) isGate()        {}

func (g Direct) Operands() []Operand     { return []Operand{g.In} }
func (g And) Operands() []Operand        { return []Operand{g.A, g.B} }
func (g Or) Operands() []Operand         { return []Operand{g.A, g.B} }
func (g ShiftLeft) Operands() []Operand  { return []Operand{g.In} }
func (g ShiftRight) Operands() []Operand { return []Operand{g.In} }
func (g Not) Operands() []Operand        { return []Operand{g.In} }

func (Direct) Apply(in []Signal) Signal { return in[0] }
func (And) Apply(in []Signal) Signal    { return in[0] & in[1] }
func (Or) Apply(in []Signal) Signal     { return in[0] | in[1] }

// Apply relies on uint16 arithmetic for the mod 2^16 truncation.
func (g ShiftLeft) Apply(in []Signal) Signal  { return in[0] << g.Shift }
func (g ShiftRight) Apply(in []Signal) Signal { return in[0] >> g.Shift }
func (Not) Apply(in []Signal) Signal          { return ^in[0] }

func (g Direct) String() string     { return g.In.String() }
func (g And) String() string        { return fmt.Sprintf("%s AND %s", g.A, g.B) }
func (g Or) String() string         { return fmt.Sprintf("%s OR %s", g.A, g.B) }
func (g ShiftLeft) String() string  { return fmt.Sprintf("%s LSHIFT %d", g.In, g.Shift) }
func (g ShiftRight) String() string { return fmt.Sprintf("%s RSHIFT %d", g.In, g.Shift) }
func (g Not) String() string        { return fmt.Sprintf("NOT %s", g.In) }

// Refs returns the wires a gate reads, in operand order. A wire read twice
// appears twice.
func Refs(g Gate) []wireid.Identifier {
	var refs []wireid.Identifier
	for _, op := range g.Operands() {
		if !op.IsLiteral() {
			refs = append(refs, op.Ref())
		}
	}
	return refs
}
