package config

import "context"

// Loader is the interface for a format-specific graph definition loader.
type Loader interface {
	// Load reads every definition reachable from paths and merges them into
	// a single Model, preserving declaration order.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
