// Package aig compiles a logic network into a bit-level and-inverter graph
// using the gini logic package, sixteen circuit literals per wire.
//
// The compiled form is independent of the evaluator and serves two uses: it
// cross-checks values produced by word-level resolution, and with free input
// wires it evaluates the same network for many input assignments without
// rebuilding or re-resolving anything. Wires whose cone contains no free
// input fold to constants while compiling.
package aig
