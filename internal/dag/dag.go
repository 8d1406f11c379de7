package dag

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vk/circuitgo/internal/wireid"
)

// ErrCycle is wrapped by the error DetectCycles returns.
var ErrCycle = errors.New("cycle detected")

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[wireid.Identifier]*node),
		dangling: make(map[wireid.Identifier][]wireid.Identifier),
	}
}

// AddNode adds a wire to the graph. If the wire already exists, the function
// does nothing.
func (g *Graph) AddNode(id wireid.Identifier) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[id]; ok {
		return
	}

	g.nodes[id] = &node{
		id:         id,
		deps:       make(map[wireid.Identifier]*node),
		dependents: make(map[wireid.Identifier]*node),
	}
}

// AddEdge records that toID reads fromID. Both wires must exist. A wire may
// read itself; such a self-loop is reported by DetectCycles.
func (g *Graph) AddEdge(fromID, toID wireid.Identifier) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}

	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	toNode.deps[fromID] = fromNode
	fromNode.dependents[toID] = toNode

	return nil
}

// Len returns the number of wires in the graph.
func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.nodes)
}

// Dependencies returns the wires the given wire reads, in lexical order.
func (g *Graph) Dependencies(id wireid.Identifier) ([]wireid.Identifier, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedKeys(n.deps), nil
}

// Dependents returns the wires that read the given wire, in lexical order.
func (g *Graph) Dependents(id wireid.Identifier) ([]wireid.Identifier, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedKeys(n.dependents), nil
}

// TransitiveDependents returns the given wires together with every wire that
// reads any of them, directly or indirectly, in lexical order. These are
// exactly the cache entries a change to the given wires can make stale.
// Unknown wires are ignored.
func (g *Graph) TransitiveDependents(ids ...wireid.Identifier) []wireid.Identifier {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	seen := make(map[wireid.Identifier]*node)
	queue := make([]*node, 0, len(ids))
	for _, id := range ids {
		if n, ok := g.nodes[id]; ok {
			if _, dup := seen[id]; !dup {
				seen[id] = n
				queue = append(queue, n)
			}
		}
	}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for id, dep := range n.dependents {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = dep
			queue = append(queue, dep)
		}
	}
	return sortedKeys(seen)
}

// Dangling returns, for each wire whose gate reads undefined wires, the
// undefined wires it reads.
func (g *Graph) Dangling() map[wireid.Identifier][]wireid.Identifier {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	out := make(map[wireid.Identifier][]wireid.Identifier, len(g.dangling))
	for id, missing := range g.dangling {
		out[id] = append([]wireid.Identifier(nil), missing...)
	}
	return out
}

// DetectCycles checks the graph for any cycles. It returns a non-nil error
// wrapping ErrCycle if one is found, naming the first wire involved. Wires
// are visited in lexical order so the result is stable.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// Use classic depth-first search with three sets of nodes:
	// permanent: nodes that have been fully visited and are not part of a cycle.
	// temporary: nodes currently in the recursion stack for the current traversal.
	// unvisited: all other nodes.
	permanent := make(map[wireid.Identifier]bool)
	temporary := make(map[wireid.Identifier]bool)

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.id] {
			return nil
		}
		if temporary[n.id] {
			return fmt.Errorf("%w involving wire '%s'", ErrCycle, n.id)
		}

		temporary[n.id] = true

		for _, id := range sortedKeys(n.dependents) {
			if err := visit(n.dependents[id]); err != nil {
				return err
			}
		}

		delete(temporary, n.id)
		permanent[n.id] = true

		return nil
	}

	for _, id := range sortedKeys(g.nodes) {
		if err := visit(g.nodes[id]); err != nil {
			return err
		}
	}

	return nil
}

func sortedKeys(m map[wireid.Identifier]*node) []wireid.Identifier {
	keys := make([]wireid.Identifier, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
