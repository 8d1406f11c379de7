package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/circuitgo/internal/config"
	"github.com/vk/circuitgo/internal/ctxlog"
	"github.com/vk/circuitgo/internal/metrics"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	model     *config.Model
	collector *metrics.Collector
}

// NewApp is the constructor for the main application. Results are written
// to outW and log records to logW. The run file, when configured, is loaded
// through loader and the command-line values are merged over it.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model := &config.Model{}
	if cfg.RunPath != "" {
		loaded, err := loader.Load(ctx, cfg.RunPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load run configuration: %w", err)
		}
		model = loaded
		logger.Debug("Run configuration loaded.", "path", cfg.RunPath)
	}
	model.Merge(cfg.model())
	if len(model.Targets) == 0 {
		model.Targets = []string{DefaultTarget}
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run configuration: %w", err)
	}
	logger.Debug("Run configuration resolved.",
		"circuit", model.CircuitPath,
		"targets", model.Targets,
		"overrides", len(model.Overrides),
	)

	return &App{
		outW:      outW,
		logger:    logger,
		config:    cfg,
		model:     model,
		collector: metrics.New(),
	}, nil
}

// Model returns the merged run configuration. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}

// Metrics returns the collector observing the evaluator.
func (a *App) Metrics() *metrics.Collector {
	return a.collector
}
