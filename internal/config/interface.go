package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the build file at path and translates it into the
	// format-agnostic raw model. BaseDir of the returned model is the
	// directory containing the file.
	Load(ctx context.Context, path string) (*Raw, error)
}
