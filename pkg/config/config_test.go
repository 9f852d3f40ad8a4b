package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ridescope.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Tunables.SeamlessReconnectThreshold != 5*time.Second {
		t.Errorf("SeamlessReconnectThreshold = %v, want 5s", cfg.Tunables.SeamlessReconnectThreshold)
	}
	if cfg.Tunables.ContextLinesBefore != 10 || cfg.Tunables.ContextLinesAfter != 5 {
		t.Errorf("context window = %d/%d, want 10/5",
			cfg.Tunables.ContextLinesBefore, cfg.Tunables.ContextLinesAfter)
	}
	if cfg.Tunables.ProblemProximityWindow != 120*time.Second {
		t.Errorf("ProblemProximityWindow = %v, want 120s", cfg.Tunables.ProblemProximityWindow)
	}
	if cfg.Tunables.MaxErrorDetailLength != 250 {
		t.Errorf("MaxErrorDetailLength = %d, want 250", cfg.Tunables.MaxErrorDetailLength)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
devices:
  patterns:
    - "KICKR CORE"
  exclude:
    - "Watch"
tunables:
  seamless_reconnect_threshold: 8s
  max_error_detail_length: 100
`)

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Devices.Patterns) != 1 || cfg.Devices.Patterns[0] != "KICKR CORE" {
		t.Errorf("Patterns = %v", cfg.Devices.Patterns)
	}
	if cfg.Tunables.SeamlessReconnectThreshold != 8*time.Second {
		t.Errorf("SeamlessReconnectThreshold = %v, want 8s", cfg.Tunables.SeamlessReconnectThreshold)
	}
	if cfg.Tunables.MaxErrorDetailLength != 100 {
		t.Errorf("MaxErrorDetailLength = %d, want 100", cfg.Tunables.MaxErrorDetailLength)
	}
	// Unset tunables keep their defaults.
	if cfg.Tunables.ProblemProximityWindow != DefaultProblemProximityWindow {
		t.Errorf("ProblemProximityWindow = %v, want default", cfg.Tunables.ProblemProximityWindow)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestValidate_FillsDefaults(t *testing.T) {
	cfg := &Config{}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Tunables.SeamlessReconnectThreshold != DefaultSeamlessReconnectThreshold {
		t.Errorf("zero threshold not defaulted: %v", cfg.Tunables.SeamlessReconnectThreshold)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative threshold", func(c *Config) { c.Tunables.SeamlessReconnectThreshold = -time.Second }},
		{"negative context window", func(c *Config) { c.Tunables.ContextLinesBefore = -1 }},
		{"negative detail length", func(c *Config) { c.Tunables.MaxErrorDetailLength = -1 }},
		{"blank device pattern", func(c *Config) { c.Devices.Patterns = []string{"  "} }},
		{"webhook without url", func(c *Config) { c.Webhooks = []WebhookConfig{{}} }},
		{"webhook bad scheme", func(c *Config) { c.Webhooks = []WebhookConfig{{URL: "ftp://x"}} }},
		{"webhook bad trigger", func(c *Config) {
			c.Webhooks = []WebhookConfig{{URL: "https://x", Trigger: "sometimes"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Error("Validate() expected error")
			}
		})
	}
}

func TestValidate_WebhookDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Webhooks = []WebhookConfig{{URL: "https://hooks.example.com/ride"}}

	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Webhooks[0].Trigger != WebhookTriggerOnProblems {
		t.Errorf("Trigger = %v, want on_problems default", cfg.Webhooks[0].Trigger)
	}
	if cfg.Webhooks[0].Timeout != DefaultWebhookTimeout {
		t.Errorf("Timeout = %v, want default", cfg.Webhooks[0].Timeout)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvSeamlessThreshold, "9s")

	path := writeConfig(t, "devices: {}\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Tunables.SeamlessReconnectThreshold != 9*time.Second {
		t.Errorf("SeamlessReconnectThreshold = %v, want 9s from env", cfg.Tunables.SeamlessReconnectThreshold)
	}
}
