package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/lazymod/internal/ctxlog"
	"github.com/vk/lazymod/internal/registry"
)

// Run executes the application lifecycle: the eager (startup) resolution pass
// followed by the deferred imports requested in the configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startStatusServer(a.config.HealthcheckPort)
		defer a.closeStatusServer(ctx)
	}

	if err := a.resolveEager(ctx); err != nil {
		return err
	}

	if err := a.resolveDeferred(ctx); err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// resolveEager synchronously imports every module marked eager, in sorted
// name order so startup is deterministic. Any failure aborts startup; an
// eager module is by definition one the rest of the program assumes is ready.
func (a *App) resolveEager(ctx context.Context) error {
	var names []string
	for name, def := range a.model.Modules {
		if def.Eager {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		a.logger.Debug("No eager modules declared.")
		return nil
	}

	a.logger.Info("Resolving eager modules...", "count", len(names))
	for _, name := range names {
		value, err := a.registry.ImportSync(ctx, name)
		if err != nil {
			return fmt.Errorf("eager resolution of module %q failed: %w", name, err)
		}
		a.logger.Info("Eager module resolved.", "name", name, "value", value)
	}
	return nil
}

// resolveDeferred kicks off every requested on-demand import at once and
// joins them. Completion order between distinct modules is not defined, so
// the join collects all outcomes rather than stopping at the first.
func (a *App) resolveDeferred(ctx context.Context) error {
	if len(a.config.Imports) == 0 {
		a.logger.Debug("No deferred imports requested.")
		return nil
	}

	a.logger.Info("Resolving deferred imports...", "names", a.config.Imports)
	waitCtx, cancel := context.WithTimeout(ctx, a.config.ImportTimeout)
	defer cancel()

	handles := make([]*registry.Handle, len(a.config.Imports))
	for i, name := range a.config.Imports {
		handles[i] = a.registry.ImportAsync(waitCtx, name)
	}

	values, err := registry.AwaitAll(waitCtx, handles...)
	for i, name := range a.config.Imports {
		if state := a.registry.State(name); state == registry.StateResolved {
			a.logger.Info("Deferred module resolved.", "name", name, "value", values[i])
		} else {
			a.logger.Warn("Deferred module did not resolve.", "name", name, "state", state.String())
		}
	}
	if err != nil {
		return fmt.Errorf("deferred imports failed: %w", err)
	}
	return nil
}
