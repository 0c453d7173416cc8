// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the bootstrap/run lifecycle: load manifests,
// register providers and module definitions, eagerly resolve the startup
// modules, then serve on-demand imports. It is decoupled from any specific
// entrypoint like a CLI.
package app
