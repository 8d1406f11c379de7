// Package config defines the format-agnostic model of a run: which network
// to load, which wires to report and which overrides to apply between the
// first and second pass. It also declares the Loader interface implemented
// by format-specific packages such as hcl_adapter.
//
// The `config.Model` is the single source of truth for the `app` package.
// Command-line flags and run files both produce a Model; Merge combines them.
package config
