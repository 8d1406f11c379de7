package evaluator

import (
	"fmt"
	"log/slog"

	"github.com/vk/circuitgo/internal/circuit"
	"github.com/vk/circuitgo/internal/inmemorystore"
	"github.com/vk/circuitgo/internal/nodestore"
	"github.com/vk/circuitgo/internal/wireid"
)

// Evaluator resolves wire values over a graph it owns exclusively.
type Evaluator struct {
	graph  *circuit.Graph
	store  nodestore.Store
	logger *slog.Logger
	hook   Hook

	// inProgress holds the wires currently on the resolution stack; path
	// keeps the same wires in stack order for cycle reporting.
	inProgress map[wireid.Identifier]struct{}
	path       []wireid.Identifier
}

// New creates an evaluator over a private copy of graph, so later changes to
// graph are not observed and overrides do not leak back to the caller.
func New(graph *circuit.Graph, opts ...Option) *Evaluator {
	e := &Evaluator{
		graph:      graph.Clone(),
		inProgress: make(map[wireid.Identifier]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = inmemorystore.New()
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	if e.hook == nil {
		e.hook = NopHook{}
	}
	return e
}

// Resolve returns the value of name. A name made of decimal digits is a
// literal and is returned as is, without touching the cache. Any other name
// must be a defined wire.
func (e *Evaluator) Resolve(name string) (circuit.Signal, error) {
	value, id, literal, err := wireid.Classify(name, circuit.SignalBits)
	if err != nil {
		if literal {
			e.hook.Failed(err)
			return 0, fmt.Errorf("cannot resolve %q: %w", name, err)
		}
		// Not a valid identifier, so it cannot name a wire.
		id = wireid.Identifier(name)
	}
	if literal {
		return circuit.Signal(value), nil
	}

	v, err := e.resolveWire(id, "")
	if err != nil {
		e.logger.Debug("Resolution failed.", "wire", id.String(), "error", err)
		e.hook.Failed(err)
		return 0, err
	}
	return v, nil
}

// ResolveAll resolves each name in order and stops at the first failure.
func (e *Evaluator) ResolveAll(names ...string) (map[string]circuit.Signal, error) {
	out := make(map[string]circuit.Signal, len(names))
	for _, name := range names {
		v, err := e.Resolve(name)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

func (e *Evaluator) resolveOperand(op circuit.Operand, from wireid.Identifier) (circuit.Signal, error) {
	if op.IsLiteral() {
		return op.Value(), nil
	}
	return e.resolveWire(op.Ref(), from)
}

func (e *Evaluator) resolveWire(id, from wireid.Identifier) (circuit.Signal, error) {
	if v, ok := e.store.Get(id); ok {
		e.hook.CacheHit(id)
		return v, nil
	}
	if _, busy := e.inProgress[id]; busy {
		return 0, e.cycleError(id)
	}
	gate, ok := e.graph.Gate(id)
	if !ok {
		return 0, &UnknownIdentifierError{ID: id, ReferencedBy: from}
	}

	e.inProgress[id] = struct{}{}
	e.path = append(e.path, id)
	defer func() {
		delete(e.inProgress, id)
		e.path = e.path[:len(e.path)-1]
	}()

	ops := gate.Operands()
	in := make([]circuit.Signal, len(ops))
	for i, op := range ops {
		v, err := e.resolveOperand(op, id)
		if err != nil {
			return 0, err
		}
		in[i] = v
	}

	v := gate.Apply(in)
	e.store.Set(id, v)
	e.hook.GateEvaluated(id, gate, v)
	e.logger.Debug("Wire resolved.", "wire", id.String(), "gate", gate.String(), "value", uint16(v))
	return v, nil
}

func (e *Evaluator) cycleError(id wireid.Identifier) *CycleError {
	start := 0
	for i, p := range e.path {
		if p == id {
			start = i
			break
		}
	}
	path := make([]wireid.Identifier, 0, len(e.path)-start+1)
	path = append(path, e.path[start:]...)
	path = append(path, id)
	return &CycleError{ID: id, Path: path}
}

// Override replaces the gate of an existing wire with the literal value. It
// fails with *UnknownIdentifierError when name is not defined; overrides
// never introduce new wires.
//
// The cache is left as is. Values cached before the override may be stale
// until the caller clears them.
func (e *Evaluator) Override(name string, value circuit.Signal) error {
	id := wireid.Identifier(name)
	if !e.graph.Has(id) {
		return &UnknownIdentifierError{ID: id}
	}
	e.graph.Set(id, circuit.Direct{In: circuit.Literal(value)})
	e.hook.Overridden(id, value)
	e.logger.Debug("Wire overridden.", "wire", name, "value", uint16(value))
	return nil
}

// ClearCache drops every cached value. The graph is not affected.
func (e *Evaluator) ClearCache() {
	n := e.store.Len()
	e.store.Clear()
	e.hook.CacheCleared(n)
	e.logger.Debug("Resolution cache cleared.", "dropped", n)
}

// Forget drops the cached values of the given wires only. It is the
// selective alternative to ClearCache for callers that know which entries a
// mutation made stale.
func (e *Evaluator) Forget(ids ...wireid.Identifier) {
	before := e.store.Len()
	e.store.Delete(ids...)
	dropped := before - e.store.Len()
	e.hook.CacheCleared(dropped)
	e.logger.Debug("Resolution cache entries dropped.", "requested", len(ids), "dropped", dropped)
}

// Cached returns the cached value of a wire without resolving it.
func (e *Evaluator) Cached(name string) (circuit.Signal, bool) {
	return e.store.Get(wireid.Identifier(name))
}

// CacheLen returns the number of cached wires.
func (e *Evaluator) CacheLen() int {
	return e.store.Len()
}

// Graph returns a copy of the graph as currently defined, overrides included.
func (e *Evaluator) Graph() *circuit.Graph {
	return e.graph.Clone()
}
