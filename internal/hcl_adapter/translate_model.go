// This file translates decoded HCL blocks into the format-agnostic config
// model, evaluating override values through cty.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/vk/circuitgo/internal/circuit"
	"github.com/vk/circuitgo/internal/config"
	"github.com/vk/circuitgo/internal/ctxlog"
	"github.com/vk/circuitgo/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// translateRoot converts one decoded run file. A relative circuit path is
// taken relative to the directory of the run file.
func (l *Loader) translateRoot(ctx context.Context, file string, root *fileRoot) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	m := &config.Model{Targets: root.Targets}

	if root.Circuit != nil {
		m.CircuitPath = fsutil.ResolveRelative(file, *root.Circuit)
	}
	if root.Invalidate != nil {
		m.Invalidate = *root.Invalidate
	}

	for _, ob := range root.Overrides {
		o, err := translateOverride(ctx, ob)
		if err != nil {
			return nil, fmt.Errorf("in file %s: %w", file, err)
		}
		m.Overrides = append(m.Overrides, o)
	}

	logger.Debug("Translated run file.", "file", file, "overrides", len(m.Overrides))
	return m, nil
}

// translateOverride converts an override block. The value attribute is
// evaluated as a cty number and must be a whole number in the 16-bit range.
func translateOverride(ctx context.Context, ob *overrideBlock) (config.Override, error) {
	o := config.Override{Wire: ob.Wire}
	if ob.From != nil {
		o.From = *ob.From
	}

	if isExprDefined(ctx, ob.Value, "value") {
		val, diags := ob.Value.Value(nil)
		if diags.HasErrors() {
			return o, fmt.Errorf("invalid value for override '%s': %w", ob.Wire, diags)
		}
		if val.IsNull() || !val.IsKnown() || !val.Type().Equals(cty.Number) {
			return o, fmt.Errorf("value for override '%s' must be a number, got %s", ob.Wire, val.Type().FriendlyName())
		}
		if !val.AsBigFloat().IsInt() {
			return o, fmt.Errorf("value for override '%s' must be a whole number between 0 and 65535, got %s", ob.Wire, val.AsBigFloat().Text('g', -1))
		}
		var v uint16
		if err := gocty.FromCtyValue(val, &v); err != nil {
			return o, fmt.Errorf("value for override '%s' must be a whole number between 0 and 65535: %w", ob.Wire, err)
		}
		sig := circuit.Signal(v)
		o.Value = &sig
	}

	if err := o.Validate(); err != nil {
		return o, err
	}
	return o, nil
}
