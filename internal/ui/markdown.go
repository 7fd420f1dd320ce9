package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
)

// RenderMarkdown renders an outline fragment for terminal display. Used by
// `rolo show` to print a contact's subtree.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(outlineStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}

	// glamour adds trailing newlines; normalize to a single one.
	return strings.TrimRight(rendered, "\n") + "\n", nil
}

func outlineStyle() ansi.StyleConfig {
	muted := strPtr("8")
	heading := strPtr("#A78BFA")
	if color, ok := AccentColor(); ok {
		heading = strPtr(color)
	}

	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{BlockSuffix: "\n"},
			Margin:         uintPtr(1),
		},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: heading, Bold: boolPtr(true)},
		},
		Text:           ansi.StylePrimitive{},
		HorizontalRule: ansi.StylePrimitive{Color: muted, Format: "\n─────\n"},
		Item:           ansi.StylePrimitive{BlockPrefix: "• "},
	}
}

func strPtr(s string) *string { return &s }
func uintPtr(u uint) *uint    { return &u }
func boolPtr(b bool) *bool    { return &b }
