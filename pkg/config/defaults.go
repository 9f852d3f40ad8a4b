package config

import (
	"os"
	"time"
)

// Default values for configuration.
const (
	DefaultSeamlessReconnectThreshold = 5 * time.Second
	DefaultContextLinesBefore         = 10
	DefaultContextLinesAfter          = 5
	DefaultProblemProximityWindow     = 120 * time.Second
	DefaultMaxErrorDetailLength       = 250
	DefaultWebhookTimeout             = 10 * time.Second
)

// Environment variable names.
const (
	EnvSeamlessThreshold = "RIDESCOPE_SEAMLESS_THRESHOLD"
	EnvProximityWindow   = "RIDESCOPE_PROXIMITY_WINDOW"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Tunables: Tunables{
			SeamlessReconnectThreshold: DefaultSeamlessReconnectThreshold,
			ContextLinesBefore:         DefaultContextLinesBefore,
			ContextLinesAfter:          DefaultContextLinesAfter,
			ProblemProximityWindow:     DefaultProblemProximityWindow,
			MaxErrorDetailLength:       DefaultMaxErrorDetailLength,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if v := os.Getenv(EnvSeamlessThreshold); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Tunables.SeamlessReconnectThreshold = d
		}
	}
	if v := os.Getenv(EnvProximityWindow); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Tunables.ProblemProximityWindow = d
		}
	}
}
