// Package app contains the core application logic. It wires the circuit
// builder, the evaluator and its observers together, runs the resolution
// passes described by a run configuration and renders the results,
// decoupled from any specific entrypoint like a CLI.
package app
