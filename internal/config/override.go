package config

import (
	"fmt"
	"strings"

	"github.com/vk/circuitgo/internal/circuit"
	"github.com/vk/circuitgo/internal/wireid"
)

// ParseOverride parses the command-line override syntax: `wire=value` for a
// literal or `wire=@source` to use the first-pass value of another wire.
func ParseOverride(spec string) (Override, error) {
	wire, rhs, ok := strings.Cut(spec, "=")
	wire = strings.TrimSpace(wire)
	rhs = strings.TrimSpace(rhs)
	if !ok || wire == "" || rhs == "" {
		return Override{}, fmt.Errorf("invalid override %q: expected wire=value or wire=@source", spec)
	}
	if _, err := wireid.Parse(wire); err != nil {
		return Override{}, fmt.Errorf("invalid override %q: %w", spec, err)
	}

	if src, isRef := strings.CutPrefix(rhs, "@"); isRef {
		if src == "" {
			return Override{}, fmt.Errorf("invalid override %q: empty source wire", spec)
		}
		return Override{Wire: wire, From: src}, nil
	}

	value, _, literal, err := wireid.Classify(rhs, circuit.SignalBits)
	if !literal {
		return Override{}, fmt.Errorf("invalid override %q: value must be an unsigned 16-bit literal or @wire", spec)
	}
	if err != nil {
		return Override{}, fmt.Errorf("invalid override %q: %w", spec, err)
	}
	v := circuit.Signal(value)
	return Override{Wire: wire, Value: &v}, nil
}
