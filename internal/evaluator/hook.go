package evaluator

import (
	"github.com/vk/circuitgo/internal/circuit"
	"github.com/vk/circuitgo/internal/wireid"
)

// Hook observes evaluator activity. It is used for instrumentation; hooks
// must not call back into the evaluator.
type Hook interface {
	// CacheHit is called when a wire is served from the cache.
	CacheHit(id wireid.Identifier)
	// GateEvaluated is called each time a gate is computed.
	GateEvaluated(id wireid.Identifier, gate circuit.Gate, value circuit.Signal)
	// Overridden is called after a wire's gate is replaced.
	Overridden(id wireid.Identifier, value circuit.Signal)
	// CacheCleared is called after entries are dropped from the cache.
	CacheCleared(dropped int)
	// Failed is called once per failed top-level resolution.
	Failed(err error)
}

// NopHook implements Hook with no-ops. Embed it to observe only some events.
type NopHook struct{}

var _ Hook = NopHook{}

func (NopHook) CacheHit(wireid.Identifier)                                  {}
func (NopHook) GateEvaluated(wireid.Identifier, circuit.Gate, circuit.Signal) {}
func (NopHook) Overridden(wireid.Identifier, circuit.Signal)                {}
func (NopHook) CacheCleared(int)                                            {}
func (NopHook) Failed(error)                                                {}
