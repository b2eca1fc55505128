// Package testutil provides shared test helpers for setting up notes directories.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/starford/tilde/internal/storage"
)

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// TestNotes creates a temporary notes directory holding files (name → content)
// and a storage.FS rooted at it.
func TestNotes(t *testing.T, files map[string]string) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	store, err := storage.NewFS(dir, Logger())
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// Sorted wraps a Provider so the directory listing is returned in name order,
// making file navigation deterministic in tests.
type Sorted struct {
	storage.Provider
}

// ListDirectory returns the wrapped listing sorted by name.
func (s Sorted) ListDirectory() ([]string, error) {
	names, err := s.Provider.ListDirectory()
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}
