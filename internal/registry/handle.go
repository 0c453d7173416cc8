package registry

import (
	"context"
	"errors"
)

// Handle is the promise-like result of ImportAsync. Any number of handles may
// be attached to the same pending evaluation; they all complete with the same
// outcome. A handle is safe for concurrent use.
type Handle struct {
	done <-chan struct{}

	// Exactly one of entry and err is set: entry when the handle tracks a
	// registered module, err when the import failed before reaching one.
	entry *entry
	err   error
}

// failedHandle builds an already-completed handle carrying err.
func failedHandle(err error) *Handle {
	done := make(chan struct{})
	close(done)
	return &Handle{done: done, err: err}
}

// Done returns a channel that is closed once the module reaches a terminal
// state. It allows handles to be combined in select statements.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Await blocks until the module reaches a terminal state or ctx is cancelled,
// then returns the module's cached value or cached error. Cancelling ctx
// abandons the wait only; the evaluation still runs to completion.
func (h *Handle) Await(ctx context.Context) (any, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-h.done:
	}
	if h.entry == nil {
		return nil, h.err
	}
	return h.entry.value, h.entry.err
}

// AwaitAll joins several handles, collecting every value. Handles complete in
// whatever order their evaluations finish; AwaitAll imposes none. The returned
// slice is index-aligned with the input, and all failures are joined into a
// single error after every handle has settled.
func AwaitAll(ctx context.Context, handles ...*Handle) ([]any, error) {
	values := make([]any, len(handles))
	var errs []error
	for i, h := range handles {
		value, err := h.Await(ctx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		values[i] = value
	}
	return values, errors.Join(errs...)
}
