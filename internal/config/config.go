// Package config loads client configuration from a YAML file with
// SCAUDIT_* environment variable overrides.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Config holds the client settings.
type Config struct {
	// ServerURL is the base address of the audit backend.
	ServerURL string `koanf:"server_url" yaml:"server_url"`
	// TimeoutSeconds bounds every request to the backend. Model inference
	// on CPU can take a while, so the default is generous.
	TimeoutSeconds int `koanf:"timeout_seconds" yaml:"timeout_seconds"`
	// DataDir holds the session file and the scan history database.
	// Empty means ~/.scaudit.
	DataDir string `koanf:"data_dir" yaml:"data_dir"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ServerURL:      "http://localhost:8000",
		TimeoutSeconds: 60,
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SCAUDIT_*). A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// SCAUDIT_SERVER_URL -> server_url, etc.
	if err := k.Load(env.Provider("SCAUDIT_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SCAUDIT_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server_url is required")
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server_url %q", c.ServerURL)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive")
	}
	return nil
}
