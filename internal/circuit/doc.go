// Package circuit holds the data model of a combinational logic network:
// 16-bit signals, operands, the gate variants that drive each wire and the
// Graph that maps wire identifiers to their gates.
//
// A Graph is a plain mapping. It does not know the topological order of its
// wires and does not reject cycles; resolving values and defending against
// cyclic definitions is the job of the evaluator package.
package circuit
