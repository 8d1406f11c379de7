// internal/wireid/parser.go
package wireid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrLiteralRange is returned when a token is an unsigned integer that does
// not fit the requested width.
var ErrLiteralRange = errors.New("literal out of range")

// Parse validates rawID as a wire identifier.
func Parse(rawID string) (Identifier, error) {
	if rawID == "" {
		return "", fmt.Errorf("identifier cannot be empty")
	}
	if strings.IndexFunc(rawID, unicode.IsSpace) >= 0 {
		return "", fmt.Errorf("identifier contains whitespace: %q", rawID)
	}
	if IsKeyword(rawID) {
		return "", fmt.Errorf("identifier is a reserved keyword: %q", rawID)
	}
	if isUnsigned(rawID) {
		return "", fmt.Errorf("identifier is numeric: %q", rawID)
	}
	return Identifier(rawID), nil
}

// Classify decides whether tok is a literal or a reference. Tokens made of
// decimal digits only are literals and must fit in bits; every other token is
// a reference and is returned as an Identifier.
func Classify(tok string, bits int) (value uint64, id Identifier, literal bool, err error) {
	if !isUnsigned(tok) {
		id, err = Parse(tok)
		return 0, id, false, err
	}
	value, err = strconv.ParseUint(tok, 10, bits)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, "", true, fmt.Errorf("%w: %q does not fit in %d bits", ErrLiteralRange, tok, bits)
		}
		// Unreachable: isUnsigned guarantees a digit-only token.
		return 0, "", true, fmt.Errorf("internal error parsing literal %q: %w", tok, err)
	}
	return value, "", true, nil
}

func isUnsigned(tok string) bool {
	if tok == "" {
		return false
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return false
		}
	}
	return true
}
