package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.APIURL != defaultAPIURL {
		t.Errorf("APIURL = %q, want default %q", cfg.APIURL, defaultAPIURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "api_url: https://api.aurora.example\nmedia_base_url: https://cdn.aurora.example\ntimeout: 10s\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.APIURL != "https://api.aurora.example" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.MediaBaseURL != "https://cdn.aurora.example" {
		t.Errorf("MediaBaseURL = %q", cfg.MediaBaseURL)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_url: https://file.example\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("AURORA_API_URL", "https://env.example")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.APIURL != "https://env.example" {
		t.Errorf("APIURL = %q, want env override", cfg.APIURL)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_url: [broken"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() with invalid YAML returned nil error")
	}
}

func TestConfig_Endpoint(t *testing.T) {
	tests := []struct {
		base string
		path string
		want string
	}{
		{"http://localhost:8000", "/api/agent/", "http://localhost:8000/api/agent/"},
		{"http://localhost:8000/", "/api/agent/", "http://localhost:8000/api/agent/"},
		{"http://localhost:8000", "api/agent/", "http://localhost:8000/api/agent/"},
	}
	for _, tt := range tests {
		cfg := &Config{APIURL: tt.base}
		if got := cfg.Endpoint(tt.path); got != tt.want {
			t.Errorf("Endpoint(%q) with base %q = %q, want %q", tt.path, tt.base, got, tt.want)
		}
	}
}
