// Package config handles global rolo configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aldertree/rolo/internal/contact"
)

// DefaultMatcher accepts headings with any of the standard contact
// properties set to a non-empty value.
const DefaultMatcher = "EMAIL~.|EMAIL_HOME~.|EMAIL_WORK~.|PHONE~.|MOBILE~.|ADDRESS~.|ALIAS~.|NICKNAME~.|BIRTHDAY~."

// Config is the process-wide configuration: set once, read many.
type Config struct {
	// Sources are the outline documents forming the contacts database.
	// Entries may be files, directories (scanned for .md files), or
	// globs. Empty falls back to DefaultDir.
	Sources []string `toml:"sources"`

	// DefaultDir is the address-book directory used when Sources is
	// empty. Defaults to ~/contacts.
	DefaultDir string `toml:"default_dir"`

	// Matcher is the boolean expression deciding which headings count as
	// contacts.
	Matcher string `toml:"matcher"`

	// GroupMarker prefixes tokens completed against the tag set.
	GroupMarker string `toml:"group_marker"`

	// ExprMarker prefixes tokens evaluated as filter expressions.
	ExprMarker string `toml:"expr_marker"`

	// BirthdayProperty holds the YYYY-MM-DD anniversary date.
	BirthdayProperty string `toml:"birthday_property"`

	// NoteProperty is exported as the card NOTE line.
	NoteProperty string `toml:"note_property"`

	// IgnoreProperty lists, per record, addresses excluded from
	// completion.
	IgnoreProperty string `toml:"ignore_property"`

	// AnniversaryFormat is the template for anniversary entries.
	AnniversaryFormat string `toml:"anniversary_format"`

	// CompletionCaseSensitive disables the default case folding.
	CompletionCaseSensitive bool `toml:"completion_case_sensitive"`

	// Categories maps a category name to its property list. Merged over
	// the built-in Email/Phone/Address/Alias/Birthday categories.
	Categories map[string]CategoryConfig `toml:"categories"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// CategoryConfig is one named property grouping in the config file.
type CategoryConfig struct {
	Props   []string `toml:"props"`
	Default string   `toml:"default"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color: an ANSI code ("0"–"255") or a
	// hex color ("#RRGGBB").
	Accent string `toml:"accent"`
}

// Default returns the built-in configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		DefaultDir:       filepath.Join(home, "contacts"),
		Matcher:          DefaultMatcher,
		GroupMarker:      "+",
		ExprMarker:       "&",
		BirthdayProperty: "BIRTHDAY",
		NoteProperty:     "NOTE",
		IgnoreProperty:   "IGNORE",
		Categories: map[string]CategoryConfig{
			"email":    {Props: []string{"EMAIL", "EMAIL_HOME", "EMAIL_WORK"}, Default: "EMAIL"},
			"phone":    {Props: []string{"PHONE", "MOBILE", "PHONE_HOME", "PHONE_WORK"}, Default: "PHONE"},
			"address":  {Props: []string{"ADDRESS"}, Default: "ADDRESS"},
			"alias":    {Props: []string{"ALIAS", "NICKNAME"}, Default: "NICKNAME"},
			"birthday": {Props: []string{"BIRTHDAY"}, Default: "BIRTHDAY"},
		},
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(configDir, "rolo", "config.toml"), nil
}

// Load reads the config at path, layered over the defaults. An empty path
// means the default location; a missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	fileCats := cfg.Categories
	cfg.Categories = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	// File categories override same-named defaults, defaults otherwise
	// stay available.
	if cfg.Categories == nil {
		cfg.Categories = fileCats
	} else {
		for name, cat := range fileCats {
			if _, ok := cfg.Categories[name]; !ok {
				cfg.Categories[name] = cat
			}
		}
	}
	return cfg, nil
}

// Category returns the named property grouping.
func (c *Config) Category(name string) (contact.Category, bool) {
	cc, ok := c.Categories[strings.ToLower(name)]
	if !ok {
		return contact.Category{}, false
	}
	props := make([]string, len(cc.Props))
	for i, p := range cc.Props {
		props[i] = contact.NormalizeKey(p)
	}
	return contact.Category{
		Name:    strings.ToLower(name),
		Props:   props,
		Default: contact.NormalizeKey(cc.Default),
	}, true
}

// CategoryNames returns the configured category names, sorted.
func (c *Config) CategoryNames() []string {
	names := make([]string, 0, len(c.Categories))
	for name := range c.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EmailProps returns the email category's property list.
func (c *Config) EmailProps() []string {
	if cat, ok := c.Category("email"); ok {
		return cat.Props
	}
	return []string{"EMAIL"}
}

// ResolveSources expands the configured sources to the concrete list of
// outline files, in stable order. Directories contribute their .md files;
// glob patterns expand; plain files pass through even when missing, so the
// scanner can report them.
func (c *Config) ResolveSources() ([]string, error) {
	sources := c.Sources
	if len(sources) == 0 && c.DefaultDir != "" {
		sources = []string{c.DefaultDir}
	}

	var out []string
	for _, src := range sources {
		info, err := os.Stat(src)
		if err == nil && info.IsDir() {
			entries, err := os.ReadDir(src)
			if err != nil {
				return nil, fmt.Errorf("reading source dir %s: %w", src, err)
			}
			var files []string
			for _, e := range entries {
				if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
					files = append(files, filepath.Join(src, e.Name()))
				}
			}
			sort.Strings(files)
			out = append(out, files...)
			continue
		}

		if strings.ContainsAny(src, "*?[") {
			matches, err := filepath.Glob(src)
			if err != nil {
				return nil, fmt.Errorf("bad source pattern %q: %w", src, err)
			}
			sort.Strings(matches)
			out = append(out, matches...)
			continue
		}

		out = append(out, src)
	}
	return out, nil
}
