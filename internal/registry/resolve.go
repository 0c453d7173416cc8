package registry

import (
	"context"
	"fmt"
	"slices"

	"github.com/vk/lazymod/internal/ctxlog"
)

// chainKey carries the list of module names currently mid-evaluation on this
// call path. It is how a synchronous definition that imports itself (directly
// or through intermediaries) is caught instead of deadlocking.
type chainKey struct{}

func resolutionChain(ctx context.Context) []string {
	chain, _ := ctx.Value(chainKey{}).([]string)
	return chain
}

func withChainEntry(ctx context.Context, name string) context.Context {
	chain := resolutionChain(ctx)
	// Copy so sibling evaluations never share backing arrays.
	next := make([]string, len(chain), len(chain)+1)
	copy(next, chain)
	return context.WithValue(ctx, chainKey{}, append(next, name))
}

// ImportSync resolves a module on the calling goroutine. It is the path for
// modules that must be ready before the caller proceeds: it returns the cached
// outcome if the name is terminal, evaluates the definition in place if the
// name is merely registered, and fails fast on unknown names and resolution
// cycles. It never spawns work.
//
// If another caller's evaluation of the same name is already in flight,
// ImportSync waits for that evaluation's outcome rather than starting a
// second one; the at-most-once guarantee holds under true parallelism.
func (r *Registry) ImportSync(ctx context.Context, name string) (any, error) {
	r.mu.Lock()
	e, ok := r.modules[name]
	if !ok {
		r.mu.Unlock()
		return nil, &UnregisteredModuleError{Name: name}
	}

	switch e.state {
	case StateResolved:
		r.mu.Unlock()
		return e.value, nil

	case StateFailed:
		r.mu.Unlock()
		return nil, e.err

	case StatePending:
		r.mu.Unlock()
		if slices.Contains(resolutionChain(ctx), name) {
			return nil, &CircularResolutionError{Name: name, Chain: resolutionChain(ctx)}
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-e.done:
		}
		return e.value, e.err

	default: // StateRegistered
		e.state = StatePending
		def := e.def
		r.mu.Unlock()

		value, err := evaluate(withChainEntry(ctx, name), name, def)
		r.complete(ctx, e, name, value, err)
		return e.value, e.err
	}
}

// ImportAsync resolves a module on demand. The returned handle completes
// immediately for names already in a terminal state, attaches to the in-flight
// evaluation for pending names (N concurrent callers share one evaluation and
// one outcome), and otherwise starts the evaluation on a new goroutine.
// Unknown names yield an immediately-failed handle carrying
// UnregisteredModuleError.
//
// The evaluation, once started, always runs to a terminal state; cancelling
// the triggering context stops the caller's wait, not the evaluation.
func (r *Registry) ImportAsync(ctx context.Context, name string) *Handle {
	r.mu.Lock()
	e, ok := r.modules[name]
	if !ok {
		r.mu.Unlock()
		return failedHandle(&UnregisteredModuleError{Name: name})
	}

	if e.state == StateRegistered {
		e.state = StatePending
		def := e.def
		evalCtx := withChainEntry(context.WithoutCancel(ctx), name)
		go func() {
			value, err := evaluate(evalCtx, name, def)
			r.complete(evalCtx, e, name, value, err)
		}()
	}
	r.mu.Unlock()

	return &Handle{done: e.done, entry: e}
}

// evaluate runs a definition, converting a panic into an ordinary error so
// that a misbehaving module cannot take down the resolver.
func evaluate(ctx context.Context, name string, def Definition) (value any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			value = nil
			err = fmt.Errorf("definition panicked: %v", rec)
		}
	}()

	ctxlog.FromContext(ctx).Debug("Evaluating module definition.", "name", name)
	return def(ctx)
}

// complete records the terminal outcome of an evaluation and releases every
// waiter. Failures are wrapped in DefinitionEvaluationError so callers always
// see which module broke, with the original cause preserved for errors.Is/As.
func (r *Registry) complete(ctx context.Context, e *entry, name string, value any, err error) {
	logger := ctxlog.FromContext(ctx)

	r.mu.Lock()
	if err != nil {
		e.state = StateFailed
		e.err = &DefinitionEvaluationError{Name: name, Cause: err}
	} else {
		e.state = StateResolved
		e.value = value
	}
	close(e.done)
	r.mu.Unlock()

	if err != nil {
		logger.Warn("Module evaluation failed.", "name", name, "error", err)
	} else {
		logger.Debug("Module resolved.", "name", name)
	}
}
