package testutil

import (
	"path/filepath"
	"testing"

	"github.com/libreria-aurora/aurora-cli/internal"
)

// OpenTestSettings creates a settings store in a temp directory, cleaned
// up with the test.
func OpenTestSettings(t *testing.T) *internal.SettingsStore {
	t.Helper()
	store, err := internal.OpenSettings(filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatalf("Failed to open test settings: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// OpenAuthedSettings creates a settings store with a token already set.
func OpenAuthedSettings(t *testing.T, token string) *internal.SettingsStore {
	t.Helper()
	store := OpenTestSettings(t)
	if err := store.SetToken(token); err != nil {
		t.Fatalf("Failed to store test token: %v", err)
	}
	return store
}
