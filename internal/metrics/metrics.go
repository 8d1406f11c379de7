// Package metrics counts evaluator activity with Prometheus collectors. A
// Collector is an evaluator.Hook; its registry is private to the collector so
// independent evaluators never share counters.
package metrics

import (
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/vk/circuitgo/internal/circuit"
	"github.com/vk/circuitgo/internal/evaluator"
	"github.com/vk/circuitgo/internal/wireid"
)

const (
	GateLabel   = "gate"
	ReasonLabel = "reason"

	ReasonUnknownIdentifier = "unknown_identifier"
	ReasonCycle             = "cycle"
	ReasonOther             = "other"
)

// Collector records evaluator events.
type Collector struct {
	registry *prometheus.Registry

	gateEvaluations *prometheus.CounterVec
	cacheHits       prometheus.Counter
	overrides       prometheus.Counter
	invalidations   prometheus.Counter
	failures        *prometheus.CounterVec
}

var _ evaluator.Hook = (*Collector)(nil)

// New creates a collector with its own registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		gateEvaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "circuit_gate_evaluations_total",
				Help: "Monotonic count of gate computations, by gate kind",
			},
			[]string{GateLabel},
		),
		cacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "circuit_cache_hits_total",
				Help: "Monotonic count of wire values served from the resolution cache",
			},
		),
		overrides: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "circuit_overrides_total",
				Help: "Monotonic count of wire overrides",
			},
		),
		invalidations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "circuit_cache_invalidations_total",
				Help: "Monotonic count of cache entries dropped",
			},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "circuit_resolution_failures_total",
				Help: "Monotonic count of failed resolutions, by reason",
			},
			[]string{ReasonLabel},
		),
	}
	c.registry.MustRegister(c.gateEvaluations, c.cacheHits, c.overrides, c.invalidations, c.failures)
	return c
}

// Registry returns the collector's registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) CacheHit(wireid.Identifier) {
	c.cacheHits.Inc()
}

func (c *Collector) GateEvaluated(_ wireid.Identifier, gate circuit.Gate, _ circuit.Signal) {
	c.gateEvaluations.WithLabelValues(GateKind(gate)).Inc()
}

func (c *Collector) Overridden(wireid.Identifier, circuit.Signal) {
	c.overrides.Inc()
}

func (c *Collector) CacheCleared(dropped int) {
	c.invalidations.Add(float64(dropped))
}

func (c *Collector) Failed(err error) {
	reason := ReasonOther
	switch {
	case errors.Is(err, evaluator.ErrUnknownIdentifier):
		reason = ReasonUnknownIdentifier
	case errors.Is(err, evaluator.ErrCycleDetected):
		reason = ReasonCycle
	}
	c.failures.WithLabelValues(reason).Inc()
}

// GateKind returns the label value used for a gate.
func GateKind(gate circuit.Gate) string {
	switch gate.(type) {
	case circuit.Direct:
		return "direct"
	case circuit.And:
		return "and"
	case circuit.Or:
		return "or"
	case circuit.ShiftLeft:
		return "lshift"
	case circuit.ShiftRight:
		return "rshift"
	case circuit.Not:
		return "not"
	}
	return "unknown"
}

// WriteText writes all collected metrics in the Prometheus text exposition
// format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if err := writeFamily(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func writeFamily(w io.Writer, mf *dto.MetricFamily) error {
	if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
		return fmt.Errorf("failed to write metric family %s: %w", mf.GetName(), err)
	}
	return nil
}
