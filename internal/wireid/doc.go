// internal/wireid/doc.go

/*
Package wireid provides the identifier type used to name wires in a logic
network, and centralizes the rule that decides whether a source token is a
numeric literal or a reference to another wire.

Identifiers are opaque and case-sensitive. The conventional alphabet is one
or more lowercase ASCII letters, but nothing in the system relies on it: any
token that does not parse as an unsigned decimal integer is a reference.
*/
package wireid
