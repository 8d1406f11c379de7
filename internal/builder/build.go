package builder

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vk/circuitgo/internal/circuit"
	"github.com/vk/circuitgo/internal/wireid"
)

const arrow = "->"

// MaxLineLength is the longest definition line BuildReader accepts, in bytes.
const MaxLineLength = 1 << 20

// Build parses text into a graph.
func Build(text string) (*circuit.Graph, error) {
	return BuildReader(strings.NewReader(text))
}

// BuildReader parses definitions from r into a graph. Reading stops at the
// first malformed line.
func BuildReader(r io.Reader) (*circuit.Graph, error) {
	graph := circuit.NewGraph()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLength)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		id, gate, err := parseLine(line)
		if err != nil {
			err.Line = lineNo
			return nil, err
		}
		graph.Set(id, gate)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &SyntaxError{
				Line:   lineNo + 1,
				Reason: fmt.Sprintf("line exceeds %d bytes", MaxLineLength),
				Err:    err,
			}
		}
		return nil, fmt.Errorf("failed to read definitions: %w", err)
	}
	return graph, nil
}

// ParseLine parses a single definition line.
func ParseLine(line string) (wireid.Identifier, circuit.Gate, error) {
	id, gate, err := parseLine(strings.TrimSpace(line))
	if err != nil {
		err.Line = 1
		return "", nil, err
	}
	return id, gate, nil
}

func parseLine(line string) (wireid.Identifier, circuit.Gate, *SyntaxError) {
	fail := func(reason string, cause error) *SyntaxError {
		return &SyntaxError{Text: line, Reason: reason, Err: cause}
	}

	tokens := strings.Fields(line)
	n := len(tokens)
	if n < 3 || tokens[n-2] != arrow {
		return "", nil, fail("expected '<expr> -> <identifier>'", nil)
	}
	target, err := wireid.Parse(tokens[n-1])
	if err != nil {
		return "", nil, fail("invalid target identifier", err)
	}

	gate, serr := parseExpr(tokens[:n-2], fail)
	if serr != nil {
		return "", nil, serr
	}
	return target, gate, nil
}

func parseExpr(expr []string, fail func(string, error) *SyntaxError) (circuit.Gate, *SyntaxError) {
	operand := func(tok string) (circuit.Operand, *SyntaxError) {
		value, id, literal, err := wireid.Classify(tok, circuit.SignalBits)
		if err != nil {
			return circuit.Operand{}, fail(fmt.Sprintf("invalid operand %q", tok), err)
		}
		if literal {
			return circuit.Literal(circuit.Signal(value)), nil
		}
		return circuit.Reference(id), nil
	}
	shift := func(tok string) (uint8, *SyntaxError) {
		value, _, literal, err := wireid.Classify(tok, 8)
		if !literal {
			return 0, fail(fmt.Sprintf("shift amount %q is not a literal", tok), nil)
		}
		if err != nil || value >= circuit.MaxShift {
			return 0, fail(fmt.Sprintf("shift amount %q must be in [0, %d)", tok, circuit.MaxShift), err)
		}
		return uint8(value), nil
	}

	switch len(expr) {
	case 1:
		in, err := operand(expr[0])
		if err != nil {
			return nil, err
		}
		return circuit.Direct{In: in}, nil

	case 2:
		if expr[0] != "NOT" {
			return nil, fail(fmt.Sprintf("unknown unary operator %q", expr[0]), nil)
		}
		in, err := operand(expr[1])
		if err != nil {
			return nil, err
		}
		return circuit.Not{In: in}, nil

	case 3:
		left, err := operand(expr[0])
		if err != nil {
			return nil, err
		}
		switch expr[1] {
		case "AND", "OR":
			right, err := operand(expr[2])
			if err != nil {
				return nil, err
			}
			if expr[1] == "AND" {
				return circuit.And{A: left, B: right}, nil
			}
			return circuit.Or{A: left, B: right}, nil
		case "LSHIFT", "RSHIFT":
			by, err := shift(expr[2])
			if err != nil {
				return nil, err
			}
			if expr[1] == "LSHIFT" {
				return circuit.ShiftLeft{In: left, Shift: by}, nil
			}
			return circuit.ShiftRight{In: left, Shift: by}, nil
		}
		return nil, fail(fmt.Sprintf("unknown binary operator %q", expr[1]), nil)
	}
	return nil, fail("unrecognised expression", nil)
}
