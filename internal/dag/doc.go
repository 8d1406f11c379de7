// Package dag keeps the wire-level dependency structure of a logic network:
// for each wire, the wires it reads (dependencies) and the wires that read it
// (dependents).
//
// The evaluator keeps no reverse-dependency index. Callers that want to
// invalidate only the cache entries a mutation made stale build one here with
// FromCircuit, which also backs the static checks run before any value is
// resolved.
package dag
