// Package contact defines the contact record model: an immutable snapshot
// of one outline heading with its property bag and a lazily resolved
// location handle.
package contact

import (
	"strings"
)

// TagsProperty is the synthetic property holding a record's full tag set,
// stored in ":a:b:" form.
const TagsProperty = "ALLTAGS"

// Location is a tagged reference back into the owning document. It is the
// only part of a record that can go stale; resolution happens through a
// resolve collaborator at query time.
type Location struct {
	Doc  string // document path
	Line int    // 1-indexed heading line
}

// Record is one scanned heading. Name and Props are snapshots taken at
// scan time and never track later edits to the source document.
type Record struct {
	Name  string
	Loc   Location
	Props *PropMap
}

// Tags returns the record's tag set, split back out of the synthetic
// ALLTAGS property. Records without tags return nil.
func (r Record) Tags() []string {
	raw, ok := r.Props.Get(TagsProperty)
	if !ok {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ":") {
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// HasTag reports whether the record carries the exact tag.
func (r Record) HasTag(tag string) bool {
	for _, t := range r.Tags() {
		if t == tag {
			return true
		}
	}
	return false
}

// Emails returns every address found across the record's email properties,
// one property value possibly holding several whitespace-separated
// addresses. Addresses listed under ignoreProp are excluded.
func (r Record) Emails(emailProps []string, ignoreProp string) []string {
	ignored := map[string]struct{}{}
	if ignoreProp != "" {
		if raw, ok := r.Props.Get(ignoreProp); ok {
			for _, addr := range strings.Fields(raw) {
				ignored[addr] = struct{}{}
			}
		}
	}

	var out []string
	for _, p := range emailProps {
		raw, ok := r.Props.Get(p)
		if !ok {
			continue
		}
		for _, addr := range strings.Fields(raw) {
			if _, skip := ignored[addr]; skip {
				continue
			}
			out = append(out, addr)
		}
	}
	return out
}

// FormatMailbox renders the conventional "Name <addr>" mailbox form.
func FormatMailbox(name, addr string) string {
	if name == "" {
		return addr
	}
	return name + " <" + addr + ">"
}

// Category is a named grouping of related property keys, e.g. every
// email-like property. Configuration data; immutable after load.
type Category struct {
	Name    string
	Props   []string // property keys in priority order
	Default string   // preferred key for single-value contexts
}

// Values returns every non-empty value the record holds for the category,
// in the category's property order.
func (c Category) Values(r Record) []string {
	var out []string
	for _, p := range c.Props {
		if v, ok := r.Props.Get(p); ok && v != "" {
			out = append(out, v)
		}
	}
	return out
}

// DefaultValue returns the record's value for the category's default
// property, falling back to the first populated property.
func (c Category) DefaultValue(r Record) (string, bool) {
	if c.Default != "" {
		if v, ok := r.Props.Get(c.Default); ok && v != "" {
			return v, true
		}
	}
	for _, p := range c.Props {
		if v, ok := r.Props.Get(p); ok && v != "" {
			return v, true
		}
	}
	return "", false
}
