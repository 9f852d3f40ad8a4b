package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and fills in defaults for
// zero-valued tunables.
func Validate(cfg *Config) error {
	if err := validateTunables(&cfg.Tunables); err != nil {
		return fmt.Errorf("tunables: %w", err)
	}

	for i, p := range cfg.Devices.Patterns {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("devices.patterns[%d]: pattern must not be blank", i)
		}
	}

	// Webhooks are optional, but validate if present
	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

func validateTunables(t *Tunables) error {
	if t.SeamlessReconnectThreshold == 0 {
		t.SeamlessReconnectThreshold = DefaultSeamlessReconnectThreshold
	}
	if t.SeamlessReconnectThreshold < 0 {
		return errors.New("seamless_reconnect_threshold must be positive")
	}

	if t.ContextLinesBefore == 0 {
		t.ContextLinesBefore = DefaultContextLinesBefore
	}
	if t.ContextLinesBefore < 0 {
		return errors.New("context_lines_before must be positive")
	}

	if t.ContextLinesAfter == 0 {
		t.ContextLinesAfter = DefaultContextLinesAfter
	}
	if t.ContextLinesAfter < 0 {
		return errors.New("context_lines_after must be positive")
	}

	if t.ProblemProximityWindow == 0 {
		t.ProblemProximityWindow = DefaultProblemProximityWindow
	}
	if t.ProblemProximityWindow < 0 {
		return errors.New("problem_proximity_window must be positive")
	}

	if t.MaxErrorDetailLength == 0 {
		t.MaxErrorDetailLength = DefaultMaxErrorDetailLength
	}
	if t.MaxErrorDetailLength < 0 {
		return errors.New("max_error_detail_length must be positive")
	}

	return nil
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url must use http or https scheme, got %q", u.Scheme)
	}

	switch wh.Trigger {
	case "", WebhookTriggerOnProblems, WebhookTriggerAlways, WebhookTriggerNever:
	default:
		return fmt.Errorf("invalid trigger %q (must be on_problems, always, or never)", wh.Trigger)
	}
	if wh.Trigger == "" {
		wh.Trigger = WebhookTriggerOnProblems
	}

	if wh.Timeout == 0 {
		wh.Timeout = DefaultWebhookTimeout
	}
	if wh.Timeout < 0 {
		return errors.New("timeout must be positive")
	}

	return nil
}
