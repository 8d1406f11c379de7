package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/circuitgo/internal/config"
	"github.com/vk/circuitgo/internal/ctxlog"
	"github.com/vk/circuitgo/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL run-file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot is the schema of a run file. Unknown attributes and blocks are
// rejected by the decoder.
type fileRoot struct {
	Circuit    *string          `hcl:"circuit,optional"`
	Targets    []string         `hcl:"targets,optional"`
	Invalidate *string          `hcl:"invalidate,optional"`
	Overrides  []*overrideBlock `hcl:"override,block"`
}

// overrideBlock is an `override "<wire>" { ... }` block.
type overrideBlock struct {
	Wire  string         `hcl:"wire,label"`
	Value hcl.Expression `hcl:"value,optional"`
	From  *string        `hcl:"from,optional"`
}

// Load parses every run file found under paths and merges them in order.
// Files inside a directory are merged in lexical order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	model := &config.Model{}
	parser := hclparse.NewParser()

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		fileModel, err := l.translateRoot(ctx, file, &root)
		if err != nil {
			return nil, err
		}
		model.Merge(fileModel)
	}

	logger.Debug("HCL loading complete.", "circuit", model.CircuitPath, "targets", len(model.Targets), "overrides", len(model.Overrides))
	return model, nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl
// files found. Unlike directories, an explicitly named file must exist.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			found, err := fsutil.FindFiles(path, ".hcl")
			if err != nil {
				return nil, err
			}
			for _, p := range found {
				add(p)
			}
		} else if filepath.Ext(path) == ".hcl" {
			add(path)
		} else {
			return nil, fmt.Errorf("run file %s must have the .hcl extension", path)
		}
	}
	return allFiles, nil
}
