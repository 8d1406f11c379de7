// Package inmemorystore provides an ephemeral, map-backed implementation of
// the nodestore.Store interface.
//
// # Characteristics
//
//   - **Ephemeral:** Created fresh for each evaluator, never persisted
//   - **Single owner:** Not safe for concurrent use; an evaluator runs on one goroutine
//   - **Fast Lookups:** O(1) average case for Get/Set/Delete
//
// Callers that need concurrent queries run independent evaluators, each with
// its own store.
package inmemorystore
