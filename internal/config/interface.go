package config

import "context"

// Loader is the interface for a format-specific document loader.
type Loader interface {
	// Load reads every given path, translates it into the format-agnostic
	// Document and merges the results in the order the paths were given.
	Load(ctx context.Context, paths ...string) (*Document, error)
}
