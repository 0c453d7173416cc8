// Package schema holds the HCL-facing struct definitions for manifest files.
// These structs mirror the file syntax exactly; the hcl package translates
// them into the format-agnostic config model.
package schema

import "github.com/hashicorp/hcl/v2"

// Args represents the content of the 'arguments' block within a module. The
// attributes are kept as raw HCL so the converter can bind them to whichever
// input struct the module's provider declares.
type Args struct {
	Body hcl.Body `hcl:",remain"`
}

// Module represents a `module` block from a manifest file: a named lazy
// module backed by a provider.
type Module struct {
	Name      string `hcl:"name,label"`
	Provider  string `hcl:"provider"`
	Eager     bool   `hcl:"eager,optional"`
	Arguments *Args  `hcl:"arguments,block"`
}

// Manifest represents the top-level structure of a manifest file.
type Manifest struct {
	Modules []*Module `hcl:"module,block"`
	Body    hcl.Body  `hcl:",remain"`
}
