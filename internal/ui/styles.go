package ui

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): primary text
// - Accent (soft purple #A78BFA): names, paths, highlights
// - Muted (gray): secondary info, line numbers
// - Success/error states use unicode symbols, not color

var (
	// Accent style for document paths and contact names
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))

	// Muted style for secondary info, hints, line numbers
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis and completion-boundary highlights
	Bold = lipgloss.NewStyle().Bold(true)

	// Underline marks completion boundaries that fall on whitespace,
	// where bold does not show
	Underline = lipgloss.NewStyle().Underline(true)
)

var accentColor string

var colorSpec = regexp.MustCompile(`^(#[0-9a-fA-F]{6}|[0-9]{1,3})$`)

// ConfigureTheme overrides the accent color from configuration. Invalid
// values are ignored and the default palette stays in effect.
func ConfigureTheme(accent string) {
	if accent == "" || !colorSpec.MatchString(accent) {
		return
	}
	accentColor = accent
	Accent = Accent.Foreground(lipgloss.Color(accent))
}

// AccentColor returns the configured accent color, if any.
func AccentColor() (string, bool) {
	return accentColor, accentColor != ""
}
