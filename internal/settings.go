package internal

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Storage keys shared with the web frontend's localStorage.
const (
	settingKeyToken      = "token"
	settingKeyLLMEnabled = "agent_llm_enabled"
)

// SettingsStore persists the auth token and the LLM preference in a small
// key/value table. Reads and writes go straight to the database, no
// caching: last write wins.
type SettingsStore struct {
	db *sql.DB
}

// OpenSettings opens (creating if needed) the settings database at path.
func OpenSettings(path string) (*SettingsStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create settings directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize settings schema: %w", err)
	}

	return &SettingsStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SettingsStore) Close() error {
	return s.db.Close()
}

func (s *SettingsStore) get(key string) (string, bool) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			LogDebug("Settings read failed for %q: %v", key, err)
		}
		return "", false
	}
	return value, true
}

func (s *SettingsStore) set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO settings(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write setting %q: %w", key, err)
	}
	return nil
}

func (s *SettingsStore) delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete setting %q: %w", key, err)
	}
	return nil
}

// Token returns the stored bearer token, if any.
func (s *SettingsStore) Token() (string, bool) {
	token, ok := s.get(settingKeyToken)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// SetToken stores the bearer token.
func (s *SettingsStore) SetToken(token string) error {
	return s.set(settingKeyToken, token)
}

// ClearToken removes the stored bearer token.
func (s *SettingsStore) ClearToken() error {
	return s.delete(settingKeyToken)
}

// LLMEnabled reports the LLM preference. Only the literal string "false"
// disables it; any other value, including an absent key, enables it.
func (s *SettingsStore) LLMEnabled() bool {
	raw, ok := s.get(settingKeyLLMEnabled)
	if !ok {
		return true
	}
	return raw != "false"
}

// SetLLMEnabled stores the LLM preference.
func (s *SettingsStore) SetLLMEnabled(enabled bool) error {
	if enabled {
		return s.set(settingKeyLLMEnabled, "true")
	}
	return s.set(settingKeyLLMEnabled, "false")
}
