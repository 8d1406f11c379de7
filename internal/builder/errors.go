package builder

import (
	"errors"
	"fmt"
)

// ErrSyntax is matched by every *SyntaxError.
var ErrSyntax = errors.New("syntax error")

// SyntaxError reports a definition line that could not be parsed.
type SyntaxError struct {
	// Line is the 1-based line number in the input.
	Line int
	// Text is the offending line with surrounding whitespace trimmed.
	Text string
	// Reason describes what was wrong with the line.
	Reason string
	// Err is the underlying cause, if any.
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Is makes errors.Is(err, ErrSyntax) true for any *SyntaxError.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
