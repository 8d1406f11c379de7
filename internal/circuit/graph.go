package circuit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vk/circuitgo/internal/wireid"
)

// Graph maps each defined wire to the gate that drives it. It is not safe
// for concurrent mutation; callers that need independent copies use Clone.
type Graph struct {
	gates map[wireid.Identifier]Gate
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{gates: make(map[wireid.Identifier]Gate)}
}

// Set defines id as driven by gate, replacing any previous definition.
func (g *Graph) Set(id wireid.Identifier, gate Gate) {
	g.gates[id] = gate
}

// Gate returns the gate driving id.
func (g *Graph) Gate(id wireid.Identifier) (Gate, bool) {
	gate, ok := g.gates[id]
	return gate, ok
}

// Has reports whether id is defined.
func (g *Graph) Has(id wireid.Identifier) bool {
	_, ok := g.gates[id]
	return ok
}

// Len returns the number of defined wires.
func (g *Graph) Len() int {
	return len(g.gates)
}

// Names returns all defined wires in lexical order.
func (g *Graph) Names() []wireid.Identifier {
	names := make([]wireid.Identifier, 0, len(g.gates))
	for id := range g.gates {
		names = append(names, id)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Clone returns an independent copy. Gates are values, so sharing them is safe.
func (g *Graph) Clone() *Graph {
	c := &Graph{gates: make(map[wireid.Identifier]Gate, len(g.gates))}
	for id, gate := range g.gates {
		c.gates[id] = gate
	}
	return c
}

// String renders the graph as gate-definition text, one line per wire in
// lexical order.
func (g *Graph) String() string {
	var sb strings.Builder
	for _, id := range g.Names() {
		fmt.Fprintf(&sb, "%s -> %s\n", g.gates[id], id)
	}
	return sb.String()
}
