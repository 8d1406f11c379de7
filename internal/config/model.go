package config

import (
	"errors"
	"fmt"

	"github.com/vk/circuitgo/internal/circuit"
)

// Invalidation strategies applied after overrides.
const (
	// InvalidateAll clears the whole resolution cache.
	InvalidateAll = "all"
	// InvalidateDependents drops only the overridden wires and everything
	// downstream of them.
	InvalidateDependents = "dependents"
)

// Model is the unified, format-agnostic representation of a run.
type Model struct {
	// CircuitPath is the gate-definition file.
	CircuitPath string
	// Targets are the wires reported after each pass.
	Targets []string
	// Overrides are applied in order between the first and second pass.
	Overrides []Override
	// Invalidate is InvalidateAll, InvalidateDependents or empty (all).
	Invalidate string
}

// Override replaces a wire with a literal before the second pass. Exactly
// one of Value and From is set.
type Override struct {
	// Wire is the wire being replaced.
	Wire string
	// Value is the literal to drive the wire with.
	Value *circuit.Signal
	// From names a wire (or literal) whose first-pass value is used.
	From string
}

// Validate checks the override is well-formed.
func (o Override) Validate() error {
	if o.Wire == "" {
		return errors.New("override wire cannot be empty")
	}
	if (o.Value == nil) == (o.From == "") {
		return fmt.Errorf("override %q must set exactly one of value or from", o.Wire)
	}
	return nil
}

func (o Override) String() string {
	if o.Value != nil {
		return fmt.Sprintf("%s=%d", o.Wire, *o.Value)
	}
	return fmt.Sprintf("%s=@%s", o.Wire, o.From)
}

// Validate checks the whole model.
func (m *Model) Validate() error {
	if m.CircuitPath == "" {
		return errors.New("circuit path is required")
	}
	if len(m.Targets) == 0 {
		return errors.New("at least one target wire is required")
	}
	switch m.Invalidate {
	case "", InvalidateAll, InvalidateDependents:
	default:
		return fmt.Errorf("invalid invalidation strategy %q: must be %q or %q", m.Invalidate, InvalidateAll, InvalidateDependents)
	}
	for _, o := range m.Overrides {
		if err := o.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Merge overlays other onto m. Scalar fields of other win when set; targets
// of other replace those of m when non-empty; overrides are appended.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	if other.CircuitPath != "" {
		m.CircuitPath = other.CircuitPath
	}
	if len(other.Targets) > 0 {
		m.Targets = append([]string(nil), other.Targets...)
	}
	if other.Invalidate != "" {
		m.Invalidate = other.Invalidate
	}
	m.Overrides = append(m.Overrides, other.Overrides...)
}
