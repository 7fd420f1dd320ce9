package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GroupMarker != "+" || cfg.ExprMarker != "&" {
		t.Errorf("unexpected default markers: %q %q", cfg.GroupMarker, cfg.ExprMarker)
	}
	if cfg.Matcher != DefaultMatcher {
		t.Errorf("unexpected default matcher")
	}
	if _, ok := cfg.Category("email"); !ok {
		t.Error("default email category missing")
	}
}

func TestLoadOverridesAndMergesCategories(t *testing.T) {
	path := writeConfig(t, `
sources = ["/tmp/book.md"]
group_marker = "@"
completion_case_sensitive = true

[categories.email]
props = ["MAIL"]
default = "MAIL"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GroupMarker != "@" {
		t.Errorf("expected overridden marker, got %q", cfg.GroupMarker)
	}
	if !cfg.CompletionCaseSensitive {
		t.Error("expected case sensitivity enabled")
	}

	email, ok := cfg.Category("email")
	if !ok || !reflect.DeepEqual(email.Props, []string{"MAIL"}) {
		t.Errorf("expected overridden email category, got %+v", email)
	}
	// Untouched default categories survive.
	if _, ok := cfg.Category("phone"); !ok {
		t.Error("default phone category must survive a partial override")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := writeConfig(t, "sources = [unterminated")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestCategoryNormalizesKeys(t *testing.T) {
	path := writeConfig(t, "[categories.email]\nprops = [\"email\", \"Email_Work\"]\ndefault = \"email\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	email, _ := cfg.Category("email")
	if !reflect.DeepEqual(email.Props, []string{"EMAIL", "EMAIL_WORK"}) {
		t.Errorf("expected normalized props, got %v", email.Props)
	}
	if email.Default != "EMAIL" {
		t.Errorf("expected normalized default, got %q", email.Default)
	}
}

func TestResolveSourcesExpandsDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.md", "a.md", "ignore.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("# x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := Default()
	cfg.Sources = []string{dir}
	got, err := cfg.ResolveSources()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "a.md"), filepath.Join(dir, "b.md")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestResolveSourcesGlobAndFallback(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "one.md"), []byte("# x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	cfg.Sources = []string{filepath.Join(dir, "*.md")}
	got, err := cfg.ResolveSources()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("expected glob expansion, got %v", got)
	}

	// Empty sources fall back to the default directory.
	cfg = Default()
	cfg.Sources = nil
	cfg.DefaultDir = dir
	got, err = cfg.ResolveSources()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("expected fallback to default dir, got %v", got)
	}
}
