// Package nodestore defines the interface for the resolution cache: the
// store of signal values already computed for wires of a network.
//
// # Why Node Store Exists
//
// The node store isolates **mutable resolution state** (which wires already
// have a value) from the **graph** (which gate drives each wire). The graph
// only changes on an explicit override; the store fills up as wires are
// resolved and is emptied by the caller whenever the graph changes.
//
// # Lifecycle and Usage
//
// The node store is:
//  1. **Created** empty, alongside the evaluator that owns it
//  2. **Filled** monotonically as the evaluator resolves wires
//  3. **Cleared** (fully, or entry by entry) by the caller after a mutation
//  4. **Discarded** with the evaluator
//
// The invariant callers rely on: a stored value reflects the graph as of the
// most recent clear of that entry.
package nodestore

import (
	"github.com/vk/circuitgo/internal/circuit"
	"github.com/vk/circuitgo/internal/wireid"
)

// Store is the interface for the memoized signal values of a network.
//
// Implementations are owned by a single evaluator and need not be safe for
// concurrent use.
type Store interface {
	// Get returns the stored value of id and whether one is present.
	Get(id wireid.Identifier) (circuit.Signal, bool)

	// Set records the resolved value of id, replacing any previous value.
	Set(id wireid.Identifier, value circuit.Signal)

	// Delete drops the stored values of the given wires. Missing entries are
	// ignored.
	Delete(ids ...wireid.Identifier)

	// Clear drops every stored value.
	Clear()

	// Len returns the number of stored values.
	Len() int
}
