package commands

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ridescope/ridescope/pkg/config"
)

func TestNewDiagnoseCommand(t *testing.T) {
	cmd := NewDiagnoseCommand()

	if cmd.Use != "diagnose <session-log>" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	// Check flags exist
	flags := []string{
		"config", "output", "device", "exclude-device",
		"kept-file", "excluded-file", "verbose", "quiet",
		"webhook-url", "webhook-token", "webhook-trigger",
	}
	for _, flag := range flags {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("Missing flag: %s", flag)
		}
	}
}

func TestNewFilterCommand(t *testing.T) {
	cmd := NewFilterCommand()

	if cmd.Use != "filter <session-log>" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	for _, flag := range []string{"device", "exclude-device", "excluded", "counts", "kept-file", "excluded-file"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("Missing flag: %s", flag)
		}
	}
}

func TestNewDevicesCommand(t *testing.T) {
	cmd := NewDevicesCommand()

	if cmd.Use != "devices <session-log>..." {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand()

	if cmd.Use != "version" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}
}

func TestWriteLineFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kept.log")
	lines := []string{"first", "second"}

	if err := writeLineFile(path, lines); err != nil {
		t.Fatalf("writeLineFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if string(data) != "first\nsecond\n" {
		t.Errorf("file content = %q", string(data))
	}
}

func TestWriteLineFile_EmptyPathIsNoop(t *testing.T) {
	if err := writeLineFile("", []string{"x"}); err != nil {
		t.Errorf("writeLineFile(\"\") error = %v", err)
	}
}

func TestCreateFormatter(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		f, err := createFormatter(format, false, false)
		if err != nil {
			t.Errorf("createFormatter(%q) error = %v", format, err)
		}
		if f.Name() != format {
			t.Errorf("Name() = %q, want %q", f.Name(), format)
		}
	}

	if _, err := createFormatter("xml", false, false); err == nil {
		t.Error("createFormatter(xml) expected error")
	}
}

func TestShouldFireWebhook(t *testing.T) {
	tests := []struct {
		trigger     string
		hasProblems bool
		want        bool
	}{
		{"always", false, true},
		{"always", true, true},
		{"never", true, false},
		{"on_problems", false, false},
		{"on_problems", true, true},
		{"", true, true}, // unknown trigger defaults to on_problems
	}

	for _, tt := range tests {
		got := shouldFireWebhook(config.WebhookTrigger(tt.trigger), tt.hasProblems)
		if got != tt.want {
			t.Errorf("shouldFireWebhook(%q, %v) = %v, want %v", tt.trigger, tt.hasProblems, got, tt.want)
		}
	}
}

func TestCollectWebhooks(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Webhooks = []config.WebhookConfig{
		{Name: "config", URL: "https://hooks.example.com/config", Trigger: config.WebhookTriggerAlways},
	}
	opts := &DiagnoseOptions{WebhookURL: "https://hooks.example.com/cli"}

	got := collectWebhooks(cfg, opts)
	if len(got) != 2 {
		t.Fatalf("collectWebhooks() = %d entries, want 2", len(got))
	}
	if got[1].Name != "cli" {
		t.Errorf("CLI webhook name = %q, want cli", got[1].Name)
	}

	var urls []string
	for _, wh := range got {
		urls = append(urls, wh.URL)
	}
	want := []string{"https://hooks.example.com/config", "https://hooks.example.com/cli"}
	if !reflect.DeepEqual(urls, want) {
		t.Errorf("urls = %v, want %v", urls, want)
	}
}
