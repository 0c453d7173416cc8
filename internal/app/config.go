package app

import (
	"errors"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ManifestPath points at a single .hcl manifest file or a directory tree
	// of them.
	ManifestPath string

	// Imports lists module names to resolve on demand after the eager pass,
	// standing in for the external trigger (a user action) that would request
	// them in a host application.
	Imports []string

	// ImportTimeout bounds how long Run waits for the deferred imports to
	// settle. Zero means 30 seconds.
	ImportTimeout time.Duration

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" {
		return nil, errors.New("ManifestPath is a required configuration field and cannot be empty")
	}
	if cfg.ImportTimeout == 0 {
		cfg.ImportTimeout = 30 * time.Second
	}
	return &cfg, nil
}
