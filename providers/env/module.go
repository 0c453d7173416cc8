// Package env provides a module whose value is the process environment,
// optionally filtered by a key prefix.
package env

import (
	"context"
	"os"
	"reflect"
	"strings"

	"github.com/vk/lazymod/internal/registry"
)

// Plugin implements the registry.Plugin interface for this package.
type Plugin struct{}

// Input defines the arguments for an env module.
type Input struct {
	// Prefix, when set, keeps only variables whose name starts with it.
	Prefix string `lmod:"prefix,optional"`
}

// buildEnv returns a definition that snapshots the environment at resolution
// time, not at registration time.
func buildEnv(ctx context.Context, input any) (registry.Definition, error) {
	in := input.(*Input)
	return func(ctx context.Context) (any, error) {
		envMap := make(map[string]string)
		for _, e := range os.Environ() {
			pair := strings.SplitN(e, "=", 2)
			if len(pair) != 2 {
				continue
			}
			if in.Prefix != "" && !strings.HasPrefix(pair[0], in.Prefix) {
				continue
			}
			envMap[pair[0]] = pair[1]
		}
		return envMap, nil
	}, nil
}

// Register registers the provider with the registry.
func (p *Plugin) Register(r *registry.Registry) {
	r.RegisterProvider("env", &registry.RegisteredProvider{
		NewInput:  func() any { return new(Input) },
		InputType: reflect.TypeOf(Input{}),
		SyncSafe:  true,
		Build:     buildEnv,
	})
}
