// Package config defines the format-agnostic model of the module manifests,
// along with the Loader and Converter interfaces that concrete formats (HCL,
// in the hcl package) implement. The model is the single source of truth for
// the bootstrap step that builds and registers module definitions.
package config
