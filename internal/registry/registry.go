package registry

import (
	"context"
	"log/slog"
	"reflect"
	"sort"
	"sync"
)

// Definition is a module's lazy factory. It is invoked at most once per name,
// on the first import, and produces the module's exported value. The context
// carries the logger and the current resolution chain; async definitions may
// use it for their own I/O deadlines.
type Definition func(ctx context.Context) (any, error)

// State describes where a module name is in its resolution lifecycle.
type State int

const (
	StateUnregistered State = iota
	StateRegistered
	StatePending
	StateResolved
	StateFailed
)

// String returns the lowercase name used in logs and the status endpoint.
func (s State) String() string {
	switch s {
	case StateRegistered:
		return "registered"
	case StatePending:
		return "pending"
	case StateResolved:
		return "resolved"
	case StateFailed:
		return "failed"
	default:
		return "unregistered"
	}
}

// entry is the per-name resolution record. The done channel is created at
// registration time and closed exactly once, when the entry reaches a
// terminal state; value and err are written before the close and are
// immutable afterwards.
type entry struct {
	def   Definition
	state State
	done  chan struct{}
	value any
	err   error
}

// Registry holds the module definitions, their resolution states, and the
// provider tables for a single application instance.
type Registry struct {
	mu      sync.Mutex
	modules map[string]*entry

	// providers is populated by plugins during startup, before any import
	// call, and is read-only afterwards.
	providers map[string]*RegisteredProvider
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		modules:   make(map[string]*entry),
		providers: make(map[string]*RegisteredProvider),
	}
}

// Register binds a definition to a module name. Registering the identical
// definition twice is a no-op; binding a different definition to an existing
// name fails with DuplicateRegistrationError. Registration never triggers
// evaluation.
func (r *Registry) Register(name string, def Definition) error {
	if def == nil {
		panic("registry: nil definition for module " + name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.modules[name]; ok {
		if reflect.ValueOf(existing.def).Pointer() == reflect.ValueOf(def).Pointer() {
			return nil
		}
		return &DuplicateRegistrationError{Name: name}
	}

	slog.Debug("Registering module definition.", "name", name)
	r.modules[name] = &entry{
		def:   def,
		state: StateRegistered,
		done:  make(chan struct{}),
	}
	return nil
}

// State reports the resolution state of a name. Unknown names report
// StateUnregistered.
func (r *Registry) State(name string) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.modules[name]; ok {
		return e.state
	}
	return StateUnregistered
}

// Snapshot returns the resolution state of every registered module.
func (r *Registry) Snapshot() map[string]State {
	r.mu.Lock()
	defer r.mu.Unlock()
	states := make(map[string]State, len(r.modules))
	for name, e := range r.modules {
		states[name] = e.state
	}
	return states
}

// Names returns all registered module names in sorted order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
