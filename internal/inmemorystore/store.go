package inmemorystore

import (
	"github.com/vk/circuitgo/internal/circuit"
	"github.com/vk/circuitgo/internal/nodestore"
	"github.com/vk/circuitgo/internal/wireid"
)

// Store is an in-memory implementation of nodestore.Store.
type Store struct {
	values map[wireid.Identifier]circuit.Signal
}

var _ nodestore.Store = (*Store)(nil)

// New creates a new, empty in-memory store.
func New() *Store {
	return &Store{values: make(map[wireid.Identifier]circuit.Signal)}
}

// Get retrieves the stored value of a wire.
func (s *Store) Get(id wireid.Identifier) (circuit.Signal, bool) {
	v, ok := s.values[id]
	return v, ok
}

// Set records the value of a wire.
func (s *Store) Set(id wireid.Identifier, value circuit.Signal) {
	s.values[id] = value
}

// Delete drops the values of the given wires.
func (s *Store) Delete(ids ...wireid.Identifier) {
	for _, id := range ids {
		delete(s.values, id)
	}
}

// Clear drops all values.
func (s *Store) Clear() {
	clear(s.values)
}

// Len returns the number of stored values.
func (s *Store) Len() int {
	return len(s.values)
}
