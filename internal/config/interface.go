package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
)

// Loader is the interface for a format-specific manifest loader.
type Loader interface {
	// Load reads manifests from the given paths, translates them into the
	// format-agnostic model, and returns a matching Converter.
	Load(ctx context.Context, paths ...string) (*Model, Converter, error)
}

// Converter is the interface for format-specific data binding. It bridges a
// manifest's raw argument expressions and the Go input structs declared by
// providers.
type Converter interface {
	// DecodeBody evaluates the raw argument expressions and populates the
	// provided input struct, matching attributes to fields by 'lmod' tag.
	DecodeBody(ctx context.Context, inputStruct any, args map[string]hcl.Expression) error
}
