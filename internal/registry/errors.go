package registry

import (
	"fmt"
	"strings"
)

// DuplicateRegistrationError is returned by Register when a name is already
// bound to a different definition. Re-registering the identical definition is
// a no-op and does not produce this error.
type DuplicateRegistrationError struct {
	Name string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("module %q is already registered with a different definition", e.Name)
}

// UnregisteredModuleError is returned when an import names a module that was
// never registered.
type UnregisteredModuleError struct {
	Name string
}

func (e *UnregisteredModuleError) Error() string {
	return fmt.Sprintf("module %q is not registered", e.Name)
}

// CircularResolutionError is returned when a definition, while being
// evaluated synchronously, re-enters ImportSync for a name that is already on
// the current resolution chain.
type CircularResolutionError struct {
	Name  string
	Chain []string
}

func (e *CircularResolutionError) Error() string {
	return fmt.Sprintf("circular resolution of module %q (chain: %s)",
		e.Name, strings.Join(append(e.Chain, e.Name), " -> "))
}

// DefinitionEvaluationError wraps the failure of a module's own definition.
// It is cached as the module's terminal outcome and re-surfaced verbatim to
// every present and future caller of that name.
type DefinitionEvaluationError struct {
	Name  string
	Cause error
}

func (e *DefinitionEvaluationError) Error() string {
	return fmt.Sprintf("evaluation of module %q failed: %v", e.Name, e.Cause)
}

func (e *DefinitionEvaluationError) Unwrap() error {
	return e.Cause
}
