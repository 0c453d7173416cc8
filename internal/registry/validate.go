package registry

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/vk/lazymod/internal/config"
	"github.com/vk/lazymod/internal/ctxlog"
)

// inputField describes one 'lmod'-tagged field of a provider input struct.
type inputField struct {
	field    reflect.StructField
	optional bool
}

// inputFields collects the manifest-facing fields of a provider input struct,
// keyed by their lmod tag name.
func inputFields(inputType reflect.Type) map[string]inputField {
	fields := make(map[string]inputField)
	for i := 0; i < inputType.NumField(); i++ {
		field := inputType.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("lmod")
		parts := strings.Split(tag, ",")
		if parts[0] == "" || parts[0] == "-" {
			continue
		}
		fields[parts[0]] = inputField{
			field:    field,
			optional: slices.Contains(parts[1:], "optional"),
		}
	}
	return fields
}

// Validate performs a strict parity check between the loaded manifests and
// the compiled provider code: every module must name a known provider, eager
// modules may only use sync-safe providers, and the arguments a manifest
// passes must line up with the provider's input struct in both directions
// (unknown arguments rejected, required arguments present).
func (r *Registry) Validate(ctx context.Context, model *config.Model) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	// Sorted iteration keeps validation failures deterministic.
	names := make([]string, 0, len(model.Modules))
	for name := range model.Modules {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		def := model.Modules[name]

		provider, ok := r.providers[def.Provider]
		if !ok {
			errs = append(errs, fmt.Sprintf("module '%s': unknown provider '%s'", name, def.Provider))
			continue
		}

		if def.Eager && !provider.SyncSafe {
			errs = append(errs, fmt.Sprintf("module '%s': provider '%s' performs deferred work and cannot back an eager module", name, def.Provider))
		}

		if provider.InputType == nil {
			if len(def.Arguments) > 0 {
				errs = append(errs, fmt.Sprintf("module '%s': manifest passes arguments, but provider '%s' declares no input struct", name, def.Provider))
			}
			continue
		}

		goInputs := inputFields(provider.InputType)

		for argName := range def.Arguments {
			if _, ok := goInputs[argName]; !ok {
				errs = append(errs, fmt.Sprintf("module '%s': provider '%s' does not accept argument '%s'", name, def.Provider, argName))
			}
		}
		for argName, in := range goInputs {
			if in.optional {
				continue
			}
			if _, ok := def.Arguments[argName]; !ok {
				errs = append(errs, fmt.Sprintf("module '%s': provider '%s' requires argument '%s' which the manifest does not pass", name, def.Provider, argName))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation passed.", "modules", len(model.Modules))
	return nil
}
