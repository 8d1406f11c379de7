/*
Package builder turns gate-definition text into a *circuit.Graph.

The input is line-oriented. Each non-blank line has the form

	<expr> -> <identifier>

where <expr> is one of

	<operand>
	<operand> AND <operand>
	<operand> OR <operand>
	<operand> LSHIFT <literal>
	<operand> RSHIFT <literal>
	NOT <operand>

and an operand is either an unsigned 16-bit literal or a wire identifier.
Tokens are separated by whitespace.

Lines are independent and their order has no effect on the result, except
that when an identifier is defined twice the later line wins. Any malformed
line aborts the whole build with a *SyntaxError; no partial graph is
returned. Lines longer than MaxLineLength bytes are rejected the same way.
*/
package builder
