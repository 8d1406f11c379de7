// internal/wireid/types.go
package wireid

// Identifier names a single wire (node) in the network.
type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// Keywords are the operator tokens of the gate-definition language. They
// can never name a wire.
var Keywords = map[string]struct{}{
	"AND":    {},
	"OR":     {},
	"NOT":    {},
	"LSHIFT": {},
	"RSHIFT": {},
	"->":     {},
}

// IsKeyword reports whether tok is an operator token.
func IsKeyword(tok string) bool {
	_, ok := Keywords[tok]
	return ok
}
