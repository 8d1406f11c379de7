package dag

import (
	"sync"

	"github.com/vk/circuitgo/internal/wireid"
)

// Graph is a collection of wires and their dependencies. All operations on
// the graph are concurrency-safe.
type Graph struct {
	// mutex protects the nodes and dangling maps during concurrent access.
	mutex sync.RWMutex
	// nodes stores all defined wires, keyed by identifier.
	nodes map[wireid.Identifier]*node
	// dangling maps a defined wire to the undefined wires its gate reads.
	dangling map[wireid.Identifier][]wireid.Identifier
}

// node represents a single wire. It is un-exported to enforce interaction
// with the graph via the public API, not by direct struct manipulation.
type node struct {
	// id is the wire identifier.
	id wireid.Identifier
	// deps holds the set of wires this wire reads (predecessors).
	deps map[wireid.Identifier]*node
	// dependents holds the set of wires that read this wire (successors).
	dependents map[wireid.Identifier]*node
}
