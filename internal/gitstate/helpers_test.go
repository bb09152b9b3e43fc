package gitstate

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// newTestRepo lays out a minimal control directory with the given HEAD
// content and opens a Reader on it.
func newTestRepo(t *testing.T, head string) (root string, r *Reader) {
	t.Helper()
	root = t.TempDir()
	writeTestFile(t, filepath.Join(root, ".git", "HEAD"), head)
	r, err := OpenWithOptions(root, Options{Logger: discardLogger()})
	if err != nil {
		t.Fatalf("OpenWithOptions() error = %v", err)
	}
	return root, r
}

func gitPath(root string, parts ...string) string {
	return filepath.Join(append([]string{root, ".git"}, parts...)...)
}
