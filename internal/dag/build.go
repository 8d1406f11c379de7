package dag

import (
	"github.com/vk/circuitgo/internal/circuit"
	"github.com/vk/circuitgo/internal/wireid"
)

// FromCircuit indexes the dependencies of every wire in c. References to
// undefined wires do not become edges; they are recorded and reported by
// Dangling.
func FromCircuit(c *circuit.Graph) *Graph {
	g := New()
	names := c.Names()
	for _, id := range names {
		g.AddNode(id)
	}
	for _, id := range names {
		gate, _ := c.Gate(id)
		for _, ref := range circuit.Refs(gate) {
			if !c.Has(ref) {
				g.addDangling(id, ref)
				continue
			}
			// Both ends exist, so AddEdge cannot fail.
			_ = g.AddEdge(ref, id)
		}
	}
	return g
}

func (g *Graph) addDangling(from, missing wireid.Identifier) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	for _, m := range g.dangling[from] {
		if m == missing {
			return
		}
	}
	g.dangling[from] = append(g.dangling[from], missing)
}
