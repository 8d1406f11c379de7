package config

import "context"

// Loader is the interface for a format-specific run-file loader.
type Loader interface {
	// Load reads run files from the given paths (files or directories) and
	// merges them, in order, into one model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
