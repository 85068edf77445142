// # internal/config/config_test.go
package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	content := `
workspace_paths = ["./models"]
extensions = [".sysml"]

[exclude]
dirs = [".git"]
files = ["*.bak"]

[watch]
debounce = "1s"

[history]
path = "history.db"

[observability]
metrics_addr = ":9102"
otlp_endpoint = "localhost:4317"

[limits]
populates_per_second = 10.0
burst = 5
`
	tmpfile, err := os.CreateTemp("", "config*.toml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.WorkspacePaths) != 1 || cfg.WorkspacePaths[0] != "./models" {
		t.Errorf("Unexpected WorkspacePaths: %v", cfg.WorkspacePaths)
	}
	if len(cfg.Extensions) != 1 || cfg.Extensions[0] != ".sysml" {
		t.Errorf("Unexpected Extensions: %v", cfg.Extensions)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("Expected debounce 1s, got %v", cfg.Watch.Debounce)
	}
	if cfg.History.Path != "history.db" {
		t.Errorf("Expected history path history.db, got %s", cfg.History.Path)
	}
	if cfg.Observability.MetricsAddr != ":9102" {
		t.Errorf("Expected metrics addr :9102, got %s", cfg.Observability.MetricsAddr)
	}
	if cfg.Limits.PopulatesPerSecond != 10.0 || cfg.Limits.Burst != 5 {
		t.Errorf("Unexpected limits: %+v", cfg.Limits)
	}
}

func TestLoadDefaults(t *testing.T) {
	content := `workspace_paths = ["./models"]`
	tmpfile, err := os.CreateTemp("", "config*.toml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(content))
	tmpfile.Close()

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("Expected default debounce 500ms, got %v", cfg.Watch.Debounce)
	}
	if len(cfg.Extensions) != 2 {
		t.Errorf("Expected default extensions, got %v", cfg.Extensions)
	}
	if cfg.Limits.PopulatesPerSecond != 4 || cfg.Limits.Burst != 2 {
		t.Errorf("Unexpected default limits: %+v", cfg.Limits)
	}
}

func TestLoadError(t *testing.T) {
	_, err := Load("nonexistent.toml")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}

	tmpfile, _ := os.CreateTemp("", "badconfig*.toml")
	defer os.Remove(tmpfile.Name())
	tmpfile.Write([]byte("bad = toml = format"))
	tmpfile.Close()

	_, err = Load(tmpfile.Name())
	if err == nil {
		t.Error("Expected error for malformed TOML")
	}
}
