package inmemorystore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vk/circuitgo/internal/circuit"
)

func TestSetAndGet(t *testing.T) {
	s := New()

	// Get a value that hasn't been stored yet
	_, ok := s.Get("a")
	assert.False(t, ok)

	s.Set("a", 42)
	v, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, circuit.Signal(42), v)

	// Overwrite
	s.Set("a", 0)
	v, ok = s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, circuit.Signal(0), v, "zero is a real value, not absence")
	assert.Equal(t, 1, s.Len())
}

func TestDelete(t *testing.T) {
	s := New()
	s.Set("a", 1)
	s.Set("b", 2)
	s.Set("c", 3)

	s.Delete("a", "c", "missing")

	_, ok := s.Get("a")
	assert.False(t, ok)
	_, ok = s.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 1, s.Len())
}

func TestClear(t *testing.T) {
	s := New()
	s.Set("a", 1)
	s.Set("b", 2)

	s.Clear()
	assert.Equal(t, 0, s.Len())
	_, ok := s.Get("b")
	assert.False(t, ok)

	// The store stays usable after a clear.
	s.Set("b", 5)
	v, _ := s.Get("b")
	assert.Equal(t, circuit.Signal(5), v)
}
