package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"

	"github.com/vk/lazymod/internal/config"
	"github.com/vk/lazymod/internal/ctxlog"
	"github.com/vk/lazymod/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	registry   *registry.Registry
	model      *config.Model
	converter  config.Converter
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// bootstrapped App: manifests loaded, providers registered and validated, and
// every manifest module registered with the resolver (but not yet evaluated).
// Startup errors are programmer/deployment errors and panic; the CLI
// entrypoint recovers them into a clean exit.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, plugins ...registry.Plugin) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, converter, err := loader.Load(ctx, appConfig.ManifestPath)
	if err != nil {
		panic(fmt.Errorf("failed to load manifests: %w", err))
	}
	logger.Debug("Manifests loaded and translated into unified model.")

	reg := registry.New()
	if len(plugins) == 0 {
		plugins = corePlugins
	}
	for _, plugin := range plugins {
		plugin.Register(reg)
	}
	logger.Debug("All provider plugins registered.", "count", len(plugins))

	if err := reg.Validate(ctx, model); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	app := &App{
		outW:      outW,
		logger:    logger,
		config:    appConfig,
		registry:  reg,
		model:     model,
		converter: converter,
	}
	if err := app.registerDefinitions(ctx); err != nil {
		panic(fmt.Errorf("failed to register module definitions: %w", err))
	}
	logger.Debug("Module definitions registered.", "count", len(model.Modules))

	return app
}

// registerDefinitions is the bootstrap step from the manifests to the
// resolver: for each manifest module, decode its arguments into the
// provider's input struct, build the lazy definition, and register it.
// Nothing is evaluated here.
func (a *App) registerDefinitions(ctx context.Context) error {
	names := make([]string, 0, len(a.model.Modules))
	for name := range a.model.Modules {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		moduleDef := a.model.Modules[name]

		provider, ok := a.registry.Provider(moduleDef.Provider)
		if !ok {
			// Validate already rejected unknown providers.
			return fmt.Errorf("module %q: unknown provider %q", name, moduleDef.Provider)
		}

		input := provider.NewInput()
		if err := a.converter.DecodeBody(ctx, input, moduleDef.Arguments); err != nil {
			return fmt.Errorf("module %q: %w", name, err)
		}

		def, err := provider.Build(ctx, input)
		if err != nil {
			return fmt.Errorf("module %q: %w", name, err)
		}

		if err := a.registry.Register(name, def); err != nil {
			return fmt.Errorf("module %q: %w", name, err)
		}
	}
	return nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
