package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given paths and applies it on top of
	// base, which it must not modify. A path that does not exist is an error;
	// no paths at all returns a copy of base.
	Load(ctx context.Context, base *Model, paths ...string) (*Model, error)
}
