package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/circuitgo/internal/app"
	"github.com/vk/circuitgo/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("circuitgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
circuitgo - Evaluate 16-bit combinational logic circuits.

Usage:
  circuitgo [options] [CIRCUIT_PATH]

Arguments:
  CIRCUIT_PATH
    Path to a gate-definition file, one "<expr> -> <wire>" per line.

Options:
`)
		flagSet.PrintDefaults()
	}

	var targets, overrides stringList
	circuitFlag := flagSet.String("circuit", "", "Path to the gate-definition file.")
	cFlag := flagSet.String("c", "", "Path to the gate-definition file (shorthand).")
	runFlag := flagSet.String("run", "", "Path to an .hcl run file or a directory of run files.")
	flagSet.Var(&targets, "target", "Wire to report. Repeatable. Defaults to 'a'.")
	flagSet.Var(&overrides, "override", "Override applied before a second pass: 'wire=value' or 'wire=@source'. Repeatable.")
	invalidateFlag := flagSet.String("invalidate", "", "Cache invalidation after overrides. Options: 'all' or 'dependents'. Defaults to 'all'.")
	formatFlag := flagSet.String("format", app.FormatText, "Result format. Options: 'text', 'json' or 'yaml'.")
	verifyFlag := flagSet.Bool("verify", false, "Cross-check every result on a bit-level netlist.")
	metricsFlag := flagSet.Bool("metrics", false, "Print evaluator metrics after the results.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *circuitFlag != "" {
		path = *circuitFlag
	} else if *cFlag != "" {
		path = *cFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Circuit path determined.", "path", path)

	if path == "" && *runFlag == "" {
		slog.Debug("No circuit or run file provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	invalidate := strings.ToLower(*invalidateFlag)
	switch invalidate {
	case "", config.InvalidateAll, config.InvalidateDependents:
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid invalidate: must be 'all' or 'dependents'"}
	}

	parsedOverrides := make([]config.Override, 0, len(overrides))
	for _, spec := range overrides {
		o, err := config.ParseOverride(spec)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		parsedOverrides = append(parsedOverrides, o)
	}
	slog.Debug("CLI parameter validation complete.")

	cfg, err := app.NewConfig(app.Config{
		CircuitPath: path,
		RunPath:     *runFlag,
		Targets:     targets,
		Overrides:   parsedOverrides,
		Invalidate:  invalidate,
		Format:      strings.ToLower(*formatFlag),
		Verify:      *verifyFlag,
		Metrics:     *metricsFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
