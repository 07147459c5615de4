// Package testutil provides shared test helpers for building scan trees.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/keyscan/internal/storage"
)

// WriteTree creates files (relative path -> content) under dir.
func WriteTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// TestTree creates a temporary directory populated with files and returns a
// storage.FS rooted at it.
func TestTree(t *testing.T, files map[string]string, opts ...storage.FSOption) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	WriteTree(t, dir, files)
	store, err := storage.NewFS(dir, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}
