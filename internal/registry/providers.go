package registry

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
)

// RegisteredProvider holds the compiled Go side of a manifest provider kind:
// the factory for its typed input struct and the Build function that turns a
// decoded input into a module Definition.
type RegisteredProvider struct {
	// NewInput returns a fresh pointer to the provider's input struct, to be
	// populated from a manifest 'arguments' block.
	NewInput func() any

	// InputType is the input struct type, used for manifest/Go parity checks.
	InputType reflect.Type

	// SyncSafe marks providers whose definitions complete without performing
	// their own deferred work. Only SyncSafe providers may back eager modules.
	SyncSafe bool

	// Build closes over the decoded input and returns the module's Definition.
	// Build itself must not evaluate anything.
	Build func(ctx context.Context, input any) (Definition, error)
}

// RegisterProvider registers the Go implementation of a provider kind. A
// duplicate kind is a programmer error and panics.
func (r *Registry) RegisterProvider(kind string, provider *RegisteredProvider) {
	if _, exists := r.providers[kind]; exists {
		panic(fmt.Sprintf("provider with kind '%s' already registered", kind))
	}
	slog.Debug("Registering provider.", "kind", kind)
	r.providers[kind] = provider
}

// Provider looks up a provider kind.
func (r *Registry) Provider(kind string) (*RegisteredProvider, bool) {
	provider, ok := r.providers[kind]
	return provider, ok
}

// Plugin is the interface a provider package implements to be compiled into
// the application and registered at startup.
type Plugin interface {
	Register(r *Registry)
}
