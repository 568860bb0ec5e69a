package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mattt/hello-mcp/internal/greeting"
	"github.com/mattt/hello-mcp/mcp"
)

// Config represents the configuration for the hello-mcp server
type Config struct {
	// Name is the server name reported by initialize
	Name string `yaml:"name"`

	// Version is the server version reported by initialize
	Version string `yaml:"version"`

	// DisabledTools lists tool names that are not registered
	DisabledTools []string `yaml:"disabledTools"`

	// ToolTimeout bounds each tools/call; zero means no limit
	ToolTimeout time.Duration `yaml:"toolTimeout"`

	Greeting Greeting `yaml:"greeting"`
}

// Greeting configures the helloWorld tool
type Greeting struct {
	// DefaultName is greeted when the caller gives no name
	DefaultName string `yaml:"defaultName"`
}

// DefaultConfig returns the compiled-in configuration
func DefaultConfig() *Config {
	return &Config{
		Name:          mcp.DefaultServerName,
		Version:       mcp.DefaultServerVersion,
		DisabledTools: []string{},
		Greeting: Greeting{
			DefaultName: greeting.DefaultName,
		},
	}
}

// LoadFile loads configuration from a file.
// An empty path or a missing file yields the default configuration.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("error opening config file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load loads configuration from an io.Reader. Fields absent from the
// document keep their default values; unknown fields are rejected.
func Load(r io.Reader) (*Config, error) {
	config := DefaultConfig()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error parsing config YAML: %w", err)
	}

	if config.Name == "" {
		return nil, fmt.Errorf("invalid config: name must not be empty")
	}
	if config.ToolTimeout < 0 {
		return nil, fmt.Errorf("invalid config: toolTimeout must not be negative")
	}

	return config, nil
}

// IsToolDisabled checks if a tool name is in the disabled list
func (c *Config) IsToolDisabled(name string) bool {
	for _, disabled := range c.DisabledTools {
		if disabled == name {
			return true
		}
	}
	return false
}

// Save writes the configuration to a file
func (c *Config) Save(path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
