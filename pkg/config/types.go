// Package config provides configuration loading and validation for Ridescope.
package config

import "time"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	Devices  DeviceConfig    `yaml:"devices"`
	Tunables Tunables        `yaml:"tunables"`
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// DeviceConfig controls which trainer/sensor names the pipeline looks for.
type DeviceConfig struct {
	// Patterns is an explicit, ordered list of device name substrings.
	// When empty, device names are auto-detected from the log's own
	// connection-status lines.
	Patterns []string `yaml:"patterns,omitempty"`

	// Exclude removes auto-detected device names matching any of these
	// literals. Only applied in auto-detect mode.
	Exclude []string `yaml:"exclude,omitempty"`
}

// Tunables holds the pipeline's timing and sizing constants.
// All fields have documented defaults (see DefaultConfig); a zero value is
// replaced by the default during validation so partial YAML configs work.
type Tunables struct {
	// SeamlessReconnectThreshold is the maximum gap between a server
	// disconnect and the next server hello for the disconnect to count
	// as seamless rather than disruptive.
	SeamlessReconnectThreshold time.Duration `yaml:"seamless_reconnect_threshold"`

	// ContextLinesBefore and ContextLinesAfter bound the window of kept
	// lines inspected around a device-connected line to decide whether
	// the connection came up via DirectConnect or BLE.
	ContextLinesBefore int `yaml:"context_lines_before"`
	ContextLinesAfter  int `yaml:"context_lines_after"`

	// ProblemProximityWindow is how close a seamless reconnect must be to
	// the first transport error before it is worth mentioning in the
	// narrative.
	ProblemProximityWindow time.Duration `yaml:"problem_proximity_window"`

	// MaxErrorDetailLength truncates transport-error details to bound
	// report size.
	MaxErrorDetailLength int `yaml:"max_error_detail_length"`
}

// SeamlessThresholdSeconds returns the seamless threshold in whole seconds,
// the unit the timeline works in.
func (t Tunables) SeamlessThresholdSeconds() int {
	return int(t.SeamlessReconnectThreshold / time.Second)
}

// ProximityWindowSeconds returns the problem-proximity window in whole seconds.
func (t Tunables) ProximityWindowSeconds() int {
	return int(t.ProblemProximityWindow / time.Second)
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnProblems fires only when the session had
	// connectivity problems (default).
	WebhookTriggerOnProblems WebhookTrigger = "on_problems"
	// WebhookTriggerAlways fires after every run.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for sending session reports.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires.
	// Defaults to "on_problems" if not specified.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
