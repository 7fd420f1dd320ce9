// Package testutil provides reusable fixtures for integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestBook is a temporary address book for testing: a directory of
// outline documents plus an optional config file.
type TestBook struct {
	Dir    string
	t      *testing.T
	files  map[string]string
	config string
}

// NewTestBook creates a new address-book builder. Call Build to create
// the directory.
func NewTestBook(t *testing.T) *TestBook {
	t.Helper()
	return &TestBook{t: t, files: make(map[string]string)}
}

// WithFile adds an outline document, path relative to the book root.
func (b *TestBook) WithFile(path, content string) *TestBook {
	b.files[path] = content
	return b
}

// WithConfig sets the config.toml content. Build prepends the book's
// sources automatically unless the content already declares some.
func (b *TestBook) WithConfig(toml string) *TestBook {
	b.config = toml
	return b
}

// Build writes everything under a temp directory.
func (b *TestBook) Build() *TestBook {
	b.t.Helper()
	b.Dir = b.t.TempDir()

	for path, content := range b.files {
		b.writeFile(path, content)
	}

	cfg := b.config
	if !strings.Contains(cfg, "sources") {
		cfg = "sources = [\"" + b.Dir + "\"]\n" + cfg
	}
	b.writeFile("config.toml", cfg)

	return b
}

// ConfigPath returns the location of the generated config file.
func (b *TestBook) ConfigPath() string {
	return filepath.Join(b.Dir, "config.toml")
}

// Path returns the absolute path of a book-relative file.
func (b *TestBook) Path(rel string) string {
	return filepath.Join(b.Dir, rel)
}

// Rewrite replaces a document's content after Build, bumping its mtime.
func (b *TestBook) Rewrite(rel, content string) {
	b.t.Helper()
	b.writeFile(rel, content)
}

func (b *TestBook) writeFile(rel, content string) {
	b.t.Helper()
	full := filepath.Join(b.Dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		b.t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		b.t.Fatalf("write %s: %v", rel, err)
	}
}
