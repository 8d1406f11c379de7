// Package evaluator resolves the signal values of wires in a logic network.
//
// An Evaluator owns a private copy of a *circuit.Graph and a resolution cache
// (a nodestore.Store). Resolution is lazy, depth-first and memoized: the
// first request for a wire resolves its operands left to right, applies the
// gate and caches the result; later requests are served from the cache.
//
// Each wire is in one of three states during resolution: absent (never
// resolved since the last clear), in progress (its operands are being
// resolved further up the call stack) or cached. Re-entering a wire that is
// in progress is reported as a *CycleError instead of recursing forever.
// Stack depth is bounded by the length of the longest reference chain.
//
// Mutation is explicit. Override replaces a wire's gate with a literal but
// leaves the cache untouched, because the evaluator keeps no reverse
// dependency index. Callers must ClearCache, or Forget the affected wires,
// before re-resolving; see package dag for computing the affected set.
//
// An Evaluator is not safe for concurrent use.
package evaluator
