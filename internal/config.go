package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds client configuration. Values come from the YAML config
// file first, then environment variables override field by field.
type Config struct {
	APIURL       string        `yaml:"api_url" env:"AURORA_API_URL"`
	MediaBaseURL string        `yaml:"media_base_url" env:"AURORA_MEDIA_BASE_URL"`
	Timeout      time.Duration `yaml:"-" env:"AURORA_TIMEOUT"`
}

// UnmarshalYAML decodes the config file, accepting timeout as a Go
// duration string ("30s", "1m").
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		APIURL       string `yaml:"api_url"`
		MediaBaseURL string `yaml:"media_base_url"`
		Timeout      string `yaml:"timeout"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.APIURL != "" {
		c.APIURL = raw.APIURL
	}
	if raw.MediaBaseURL != "" {
		c.MediaBaseURL = raw.MediaBaseURL
	}
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", raw.Timeout, err)
		}
		c.Timeout = d
	}
	return nil
}

const defaultAPIURL = "http://localhost:8000"

// DefaultConfigDir returns ~/.aurora, the directory holding the config
// file and the settings database.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".aurora"), nil
}

// LoadConfig reads configPath (missing file is fine) and applies
// environment overrides.
func LoadConfig(configPath string) (*Config, error) {
	cfg := &Config{
		APIURL:  defaultAPIURL,
		Timeout: 30 * time.Second,
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", configPath, err)
			}
		case os.IsNotExist(err):
			LogDebug("No config file at %s, using defaults", configPath)
		default:
			return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return cfg, nil
}

// Endpoint joins an API path onto the configured base URL.
func (c *Config) Endpoint(path string) string {
	return strings.TrimSuffix(c.APIURL, "/") + "/" + strings.TrimPrefix(path, "/")
}
