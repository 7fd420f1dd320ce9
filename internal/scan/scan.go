// Package scan walks outline documents and yields the contact records
// whose properties or tags satisfy the configured matcher.
package scan

import (
	"strings"

	"github.com/aldertree/rolo/internal/contact"
	"github.com/aldertree/rolo/internal/expr"
	"github.com/aldertree/rolo/internal/outline"
)

// WarnFunc receives non-fatal per-document problems (missing file,
// unparsable content). The scan continues with the remaining documents.
type WarnFunc func(format string, args ...any)

// Document converts every matching heading of a parsed document into a
// record. All properties on the heading are captured, not just the ones
// the matcher looked at, plus the synthetic ALLTAGS property.
func Document(doc *outline.Document, matcher expr.Expr) []contact.Record {
	var out []contact.Record
	for _, node := range doc.Nodes {
		rec := recordFromNode(doc.Path, node)
		if matcher != nil && !matcher.Match(rec) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Documents loads and scans every source path in order. Sources that are
// missing or malformed are skipped with a warning. The returned documents
// are the ones that scanned successfully, for registration in the live
// set.
func Documents(sources []string, matcher expr.Expr, warn WarnFunc) ([]contact.Record, []*outline.Document) {
	if warn == nil {
		warn = func(string, ...any) {}
	}

	var records []contact.Record
	var docs []*outline.Document
	for _, src := range sources {
		doc, err := outline.Load(src)
		if err != nil {
			warn("skipping %s: %v", src, err)
			continue
		}
		records = append(records, Document(doc, matcher)...)
		docs = append(docs, doc)
	}
	return records, docs
}

func recordFromNode(path string, node outline.Node) contact.Record {
	props := contact.NewPropMap()
	for _, p := range node.Props {
		props.Set(p.Key, p.Value)
	}
	if len(node.Tags) > 0 {
		props.Set(contact.TagsProperty, ":"+strings.Join(node.Tags, ":")+":")
	}
	return contact.Record{
		Name:  node.Heading,
		Loc:   contact.Location{Doc: path, Line: node.Line},
		Props: props,
	}
}
