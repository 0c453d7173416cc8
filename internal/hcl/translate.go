package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/lazymod/internal/config"
	"github.com/vk/lazymod/internal/schema"
)

// translateModule converts the HCL-specific module schema into the agnostic model.
func (l *Loader) translateModule(mod *schema.Module, filePath string) (*config.ModuleDefinition, error) {
	args, err := extractBodyAttributes(mod.Arguments)
	if err != nil {
		return nil, fmt.Errorf("module %q in %s: %w", mod.Name, filePath, err)
	}
	return &config.ModuleDefinition{
		Name:      mod.Name,
		Provider:  mod.Provider,
		Eager:     mod.Eager,
		Arguments: args,
		FilePath:  filePath,
	}, nil
}

// extractBodyAttributes lifts the raw expressions out of an 'arguments' block.
// The block must contain only attributes; nested blocks are rejected.
func extractBodyAttributes(args *schema.Args) (map[string]hcl.Expression, error) {
	exprs := make(map[string]hcl.Expression)
	if args == nil {
		return exprs, nil
	}
	attrs, diags := args.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid arguments block: %w", diags)
	}
	for name, attr := range attrs {
		exprs[name] = attr.Expr
	}
	return exprs, nil
}
