package evaluator

import (
	"log/slog"

	"github.com/vk/circuitgo/internal/nodestore"
)

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger used for debug tracing. By default nothing is
// logged.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// WithStore replaces the default in-memory resolution cache. The store must
// be empty and owned by this evaluator alone.
func WithStore(store nodestore.Store) Option {
	return func(e *Evaluator) {
		e.store = store
	}
}

// WithHook installs an instrumentation hook.
func WithHook(hook Hook) Option {
	return func(e *Evaluator) {
		e.hook = hook
	}
}
