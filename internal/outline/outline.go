// Package outline reads the host outline-document format: markdown files
// whose headings carry a #tag suffix and an optional block of
// `KEY:: value` property lines directly beneath them.
//
// This package is a read-only data source. It knows nothing about
// contacts; it only enumerates headings with their tags and properties.
package outline

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// Prop is a single KEY:: value annotation under a heading.
// Keys keep the case they were written in; consumers normalize.
type Prop struct {
	Key   string
	Value string
}

// Node is one heading with its tag suffix and property block.
type Node struct {
	Heading string // heading text with tags and inline markup stripped
	Level   int
	Line    int // 1-indexed line of the heading in the file
	Tags    []string
	Props   []Prop
}

// Document is a fully parsed outline file.
type Document struct {
	Path     string
	Mtime    time.Time
	Nodes    []Node
	NumLines int
}

var propLineRegex = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z0-9_-]*)\s*::\s*(.*)$`)

var headingTagRegex = regexp.MustCompile(`#([\p{L}\p{N}_@-]+)`)

// frontmatter is the subset of file-level YAML this package cares about.
// Tags declared here are inherited by every heading in the file.
type frontmatter struct {
	Tags []string `yaml:"tags"`
}

// Load reads and parses the outline file at path, recording its mtime.
func Load(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(string(content), path)
	if err != nil {
		return nil, err
	}
	doc.Mtime = info.ModTime()
	return doc, nil
}

// Parse parses outline content. path is recorded on the document but the
// file is not touched.
func Parse(content, path string) (*Document, error) {
	lines := strings.Split(content, "\n")

	fileTags, bodyStart, err := parseFrontmatter(lines)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	body := strings.Join(lines[bodyStart:], "\n")
	headings := extractHeadings(body, bodyStart+1)

	nodes := make([]Node, 0, len(headings))
	for _, h := range headings {
		name, tags := splitTagSuffix(h.Text)
		if name == "" {
			continue
		}
		tags = mergeTags(fileTags, tags)
		props := scanPropBlock(lines, h.Line)
		nodes = append(nodes, Node{
			Heading: name,
			Level:   h.Level,
			Line:    h.Line,
			Tags:    tags,
			Props:   props,
		})
	}

	return &Document{
		Path:     path,
		Nodes:    nodes,
		NumLines: len(lines),
	}, nil
}

// parseFrontmatter returns file-level tags and the 0-indexed line where the
// body begins. Content without a leading --- has no frontmatter.
func parseFrontmatter(lines []string) ([]string, int, error) {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return nil, 0, nil
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			var fm frontmatter
			raw := strings.Join(lines[1:i], "\n")
			if err := yaml.Unmarshal([]byte(raw), &fm); err != nil {
				return nil, 0, fmt.Errorf("invalid frontmatter: %w", err)
			}
			return fm.Tags, i + 1, nil
		}
	}
	// Unclosed frontmatter: treat the whole file as body.
	return nil, 0, nil
}

type heading struct {
	Level int
	Text  string
	Line  int
}

// extractHeadings walks the markdown AST and returns every heading with its
// raw text (inline markup stripped) and 1-indexed line number.
func extractHeadings(content string, startLine int) []heading {
	md := goldmark.New()
	reader := text.NewReader([]byte(content))
	doc := md.Parser().Parse(reader)

	lineStarts := computeLineStarts(content)

	var out []heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		txt := strings.TrimSpace(nodeText(h, []byte(content)))
		if txt == "" {
			return ast.WalkContinue, nil
		}

		line := startLine
		if h.Lines().Len() > 0 {
			offset := h.Lines().At(0).Start
			line = startLine + offsetToLine(lineStarts, offset)
		}

		out = append(out, heading{Level: h.Level, Text: txt, Line: line})
		return ast.WalkContinue, nil
	})
	return out
}

// nodeText collects the text of a node and all its descendants, so that
// emphasis and other inline wrappers contribute their content without
// their markers.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
			continue
		}
		b.WriteString(nodeText(child, source))
	}
	return b.String()
}

// splitTagSuffix strips trailing #tag tokens from a heading and returns the
// remaining display name plus the tags in written order.
func splitTagSuffix(headingText string) (string, []string) {
	fields := strings.Fields(headingText)
	end := len(fields)
	for end > 0 {
		f := fields[end-1]
		if !strings.HasPrefix(f, "#") || !headingTagRegex.MatchString(f) {
			break
		}
		end--
	}

	var tags []string
	for _, f := range fields[end:] {
		m := headingTagRegex.FindStringSubmatch(f)
		if m != nil {
			tags = append(tags, m[1])
		}
	}
	return strings.Join(fields[:end], " "), tags
}

// scanPropBlock collects the KEY:: value lines following the heading at
// headingLine (1-indexed). Blank lines inside the block are allowed; the
// block ends at the first other line.
func scanPropBlock(lines []string, headingLine int) []Prop {
	var props []Prop
	for i := headingLine; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := propLineRegex.FindStringSubmatch(line)
		if m == nil {
			break
		}
		props = append(props, Prop{Key: m[1], Value: strings.TrimSpace(m[2])})
	}
	return props
}

func mergeTags(fileTags, nodeTags []string) []string {
	if len(fileTags) == 0 {
		return nodeTags
	}
	merged := make([]string, 0, len(fileTags)+len(nodeTags))
	merged = append(merged, fileTags...)
	for _, t := range nodeTags {
		seen := false
		for _, existing := range merged {
			if existing == t {
				seen = true
				break
			}
		}
		if !seen {
			merged = append(merged, t)
		}
	}
	return merged
}

func computeLineStarts(content string) []int {
	starts := []int{0}
	for i, c := range content {
		if c == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func offsetToLine(lineStarts []int, offset int) int {
	for i := len(lineStarts) - 1; i >= 0; i-- {
		if lineStarts[i] <= offset {
			return i
		}
	}
	return 0
}
