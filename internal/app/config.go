package app

import (
	"errors"
	"fmt"

	"github.com/vk/circuitgo/internal/config"
)

// Output formats accepted by Config.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DefaultTarget is reported when neither the command line nor a run file
// names a target wire.
const DefaultTarget = "a"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	CircuitPath string // gate-definition file
	RunPath     string // hcl run file or directory

	Targets    []string
	Overrides  []config.Override
	Invalidate string

	Format  string
	Verify  bool
	Metrics bool

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.CircuitPath == "" && cfg.RunPath == "" {
		return nil, errors.New("a circuit file or a run file is required")
	}

	switch cfg.Format {
	case "":
		cfg.Format = FormatText
	case FormatText, FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("invalid format %q: must be %q, %q or %q", cfg.Format, FormatText, FormatJSON, FormatYAML)
	}

	for _, o := range cfg.Overrides {
		if err := o.Validate(); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

// model returns the command-line part of the configuration as a run model.
func (c *Config) model() *config.Model {
	return &config.Model{
		CircuitPath: c.CircuitPath,
		Targets:     c.Targets,
		Overrides:   c.Overrides,
		Invalidate:  c.Invalidate,
	}
}
