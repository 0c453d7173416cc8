// Package static provides the simplest module provider: the module's value is
// written directly in the manifest. It is the natural backing for eager
// modules that must be ready before anything else runs.
package static

import (
	"context"
	"reflect"

	"github.com/vk/lazymod/internal/registry"
)

// Plugin implements the registry.Plugin interface for this package.
type Plugin struct{}

// Input defines the arguments for a static module. Value accepts any HCL
// expression: strings, numbers, objects, lists.
type Input struct {
	Value any `lmod:"value"`
}

// buildStatic closes over the decoded manifest value. The definition itself
// does no work beyond handing the value back.
func buildStatic(ctx context.Context, input any) (registry.Definition, error) {
	in := input.(*Input)
	return func(ctx context.Context) (any, error) {
		return in.Value, nil
	}, nil
}

// Register registers the provider with the registry.
func (p *Plugin) Register(r *registry.Registry) {
	r.RegisterProvider("static", &registry.RegisteredProvider{
		NewInput:  func() any { return new(Input) },
		InputType: reflect.TypeOf(Input{}),
		SyncSafe:  true,
		Build:     buildStatic,
	})
}
