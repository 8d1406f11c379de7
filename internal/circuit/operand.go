package circuit

import "github.com/vk/circuitgo/internal/wireid"

// Operand is one input of a gate: either a literal Signal or a reference to
// another wire. The zero value is the literal 0.
type Operand struct {
	value Signal
	ref   wireid.Identifier
	isRef bool
}

// Literal returns an operand that always yields v.
func Literal(v Signal) Operand {
	return Operand{value: v}
}

// Reference returns an operand that yields the value of wire id.
func Reference(id wireid.Identifier) Operand {
	return Operand{ref: id, isRef: true}
}

// IsLiteral reports whether the operand is a literal.
func (o Operand) IsLiteral() bool {
	return !o.isRef
}

// Value returns the literal value. It is 0 for references.
func (o Operand) Value() Signal {
	return o.value
}

// Ref returns the referenced wire. It is empty for literals.
func (o Operand) Ref() wireid.Identifier {
	return o.ref
}

// String renders the operand the way it is written in source text.
func (o Operand) String() string {
	if o.isRef {
		return o.ref.String()
	}
	return o.value.String()
}
