// Package registry is the core of lazymod: a registry of named module
// definitions with lazy, at-most-once resolution.
//
// A module is registered as a zero-argument factory (Definition) under a
// string name. Resolution happens either eagerly on the caller's goroutine
// (ImportSync, the page-load path) or deferred on a background goroutine
// (ImportAsync, the on-demand path). Either way a name is evaluated at most
// once: the first request runs the factory, every later request — including
// requests that arrive while the evaluation is still in flight — observes the
// same cached value or the same cached error.
//
// The registry also holds the provider tables that map manifest `provider`
// kinds (e.g. "static", "httpfetch") to the compiled Go code that turns
// manifest arguments into a Definition.
package registry
