package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/lazymod/internal/config"
	"github.com/vk/lazymod/internal/ctxlog"
	"github.com/vk/lazymod/internal/fsutil"
	"github.com/vk/lazymod/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load finds every .hcl file under the given paths, parses and decodes the
// manifest blocks, and translates them into the format-agnostic model. A
// module name declared more than once, in any file, is an error.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)
	model := &config.Model{Modules: make(map[string]*config.ModuleDefinition)}
	parser := hclparse.NewParser()

	for _, path := range paths {
		filePaths, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			logger.Error("Failed to walk manifest path", "path", path, "error", err)
			return nil, nil, err
		}
		if len(filePaths) == 0 {
			logger.Warn("No .hcl manifest files found in path", "path", path)
			continue
		}
		logger.Debug("Found HCL manifest files to load", "files", filePaths)

		for _, filePath := range filePaths {
			hclFile, diags := parser.ParseHCLFile(filePath)
			if diags.HasErrors() {
				return nil, nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
			}

			var manifest schema.Manifest
			if diags := gohcl.DecodeBody(hclFile.Body, nil, &manifest); diags.HasErrors() {
				return nil, nil, fmt.Errorf("failed to decode manifest %s: %w", filePath, diags)
			}

			for _, mod := range manifest.Modules {
				if existing, ok := model.Modules[mod.Name]; ok {
					return nil, nil, fmt.Errorf("module %q declared more than once (%s and %s)",
						mod.Name, existing.FilePath, filePath)
				}
				def, err := l.translateModule(mod, filePath)
				if err != nil {
					return nil, nil, err
				}
				model.Modules[mod.Name] = def
			}
			logger.Debug("Successfully loaded manifest file", "file", filePath)
		}
	}

	logger.Info("Manifests loaded successfully.", "modules_loaded", len(model.Modules))
	return model, NewConverter(), nil
}
