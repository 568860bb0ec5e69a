package config

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Name != "hello-world-mcp" {
		t.Errorf("Name = %q, want hello-world-mcp", cfg.Name)
	}
	if cfg.Version != "1.0.0" {
		t.Errorf("Version = %q, want 1.0.0", cfg.Version)
	}
	if cfg.Greeting.DefaultName != "world" {
		t.Errorf("Greeting.DefaultName = %q, want world", cfg.Greeting.DefaultName)
	}
	if cfg.ToolTimeout != 0 {
		t.Error("ToolTimeout should be disabled by default")
	}
	if len(cfg.DisabledTools) != 0 {
		t.Error("DisabledTools should be empty by default")
	}
}

func TestLoad(t *testing.T) {
	yamlConfig := `
name: greeter
version: 2.1.0
disabledTools:
  - helloWorld
  - other
toolTimeout: 5s
greeting:
  defaultName: friend
`

	cfg, err := Load(bytes.NewBufferString(yamlConfig))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Name != "greeter" || cfg.Version != "2.1.0" {
		t.Errorf("identity = %s/%s, want greeter/2.1.0", cfg.Name, cfg.Version)
	}
	if cfg.ToolTimeout != 5*time.Second {
		t.Errorf("ToolTimeout = %v, want 5s", cfg.ToolTimeout)
	}
	if cfg.Greeting.DefaultName != "friend" {
		t.Errorf("Greeting.DefaultName = %q, want friend", cfg.Greeting.DefaultName)
	}
	if !cfg.IsToolDisabled("helloWorld") {
		t.Error("helloWorld should be disabled")
	}
	if cfg.IsToolDisabled("enabled") {
		t.Error("enabled should not be disabled")
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(bytes.NewBufferString("version: 3.0.0\n"))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Name != "hello-world-mcp" {
		t.Errorf("Name = %q, want default", cfg.Name)
	}
	if cfg.Version != "3.0.0" {
		t.Errorf("Version = %q, want 3.0.0", cfg.Version)
	}
}

func TestLoadEmpty(t *testing.T) {
	cfg, err := Load(bytes.NewBufferString(""))
	if err != nil {
		t.Fatalf("Failed to load empty config: %v", err)
	}
	if cfg.Name != "hello-world-mcp" {
		t.Errorf("Name = %q, want default", cfg.Name)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"unknown field":    "bogus: true\n",
		"malformed":        "name: [unterminated\n",
		"empty name":       "name: \"\"\n",
		"negative timeout": "toolTimeout: -1s\n",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(bytes.NewBufferString(input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if cfg.Name != DefaultConfig().Name {
		t.Errorf("Name = %q, want default", cfg.Name)
	}

	cfg, err = LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if cfg.Version != DefaultConfig().Version {
		t.Errorf("Version = %q, want default", cfg.Version)
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.DisabledTools = []string{"helloWorld"}
	cfg.ToolTimeout = 250 * time.Millisecond

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if !loaded.IsToolDisabled("helloWorld") {
		t.Error("helloWorld should be disabled after round trip")
	}
	if loaded.ToolTimeout != 250*time.Millisecond {
		t.Errorf("ToolTimeout = %v, want 250ms", loaded.ToolTimeout)
	}
}
