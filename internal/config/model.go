package config

import (
	"github.com/hashicorp/hcl/v2"
)

// Model is the unified, format-agnostic representation of all loaded module
// manifests.
type Model struct {
	Modules map[string]*ModuleDefinition
}

// ModuleDefinition is the format-agnostic representation of a `module` block:
// a named, lazily resolvable unit whose value is produced by the named
// provider from the given arguments.
type ModuleDefinition struct {
	// Name is the module's registry key.
	Name string

	// Provider is the kind of the registered provider that builds this
	// module's definition.
	Provider string

	// Eager marks modules that are resolved synchronously at startup, before
	// any on-demand import can occur.
	Eager bool

	// Arguments holds the raw expressions of the 'arguments' block, keyed by
	// attribute name. They are bound to the provider's input struct during
	// bootstrap.
	Arguments map[string]hcl.Expression

	// FilePath records which manifest file declared the module.
	FilePath string
}
