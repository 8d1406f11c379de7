package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/ghodss/yaml"
	"github.com/olekukonko/tablewriter"
	"github.com/vk/circuitgo/internal/circuit"
)

// Report is the result of a run.
type Report struct {
	Circuit string `json:"circuit"`
	Passes  []Pass `json:"passes"`
}

// Pass holds the target values of one resolution pass.
type Pass struct {
	Name      string            `json:"name"`
	Overrides []AppliedOverride `json:"overrides,omitempty"`
	Values    []WireValue       `json:"values"`
	Verified  bool              `json:"verified,omitempty"`
}

// AppliedOverride records the value a wire was driven with before a pass.
type AppliedOverride struct {
	Wire  string         `json:"wire"`
	Value circuit.Signal `json:"value"`
	From  string         `json:"from,omitempty"`
}

// WireValue is one resolved target.
type WireValue struct {
	Wire  string         `json:"wire"`
	Value circuit.Signal `json:"value"`
}

// Value returns the resolved value of a target in the pass.
func (p Pass) Value(wire string) (circuit.Signal, bool) {
	for _, wv := range p.Values {
		if wv.Wire == wire {
			return wv.Value, true
		}
	}
	return 0, false
}

// Render writes the report in the given format.
func (r *Report) Render(w io.Writer, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		out, err := yaml.Marshal(r)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	case FormatText, "":
		r.renderText(w)
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func (r *Report) renderText(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Pass", "Wire", "Value", "Note"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, p := range r.Passes {
		for _, o := range p.Overrides {
			note := "override"
			if o.From != "" {
				note = "override from " + o.From
			}
			table.Append([]string{p.Name, o.Wire, strconv.Itoa(int(o.Value)), note})
		}
		for _, wv := range p.Values {
			note := ""
			if p.Verified {
				note = "verified"
			}
			table.Append([]string{p.Name, wv.Wire, strconv.Itoa(int(wv.Value)), note})
		}
	}
	table.Render()
}
