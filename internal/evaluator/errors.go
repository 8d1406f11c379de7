package evaluator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/circuitgo/internal/wireid"
)

var (
	// ErrUnknownIdentifier is matched by every *UnknownIdentifierError.
	ErrUnknownIdentifier = errors.New("unknown identifier")
	// ErrCycleDetected is matched by every *CycleError.
	ErrCycleDetected = errors.New("cycle detected")
)

// UnknownIdentifierError reports a wire that has no defining gate.
type UnknownIdentifierError struct {
	// ID is the undefined wire.
	ID wireid.Identifier
	// ReferencedBy is the wire whose gate reads ID. It is empty when ID was
	// requested directly.
	ReferencedBy wireid.Identifier
}

func (e *UnknownIdentifierError) Error() string {
	if e.ReferencedBy == "" {
		return fmt.Sprintf("unknown identifier %q", e.ID)
	}
	return fmt.Sprintf("unknown identifier %q (referenced by %q)", e.ID, e.ReferencedBy)
}

func (e *UnknownIdentifierError) Is(target error) bool {
	return target == ErrUnknownIdentifier
}

// CycleError reports a wire that transitively depends on itself.
type CycleError struct {
	// ID is the wire whose resolution was re-entered.
	ID wireid.Identifier
	// Path is the dependency chain from ID back to ID.
	Path []wireid.Identifier
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Path))
	for i, id := range e.Path {
		parts[i] = id.String()
	}
	return fmt.Sprintf("cycle detected involving wire %q: %s", e.ID, strings.Join(parts, " -> "))
}

func (e *CycleError) Is(target error) bool {
	return target == ErrCycleDetected
}
