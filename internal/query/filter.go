// Package query filters the cached record list by name, tag, or a single
// property pattern.
package query

import (
	"regexp"

	"github.com/aldertree/rolo/internal/contact"
)

// PropPattern names one property and the regex its value must match.
type PropPattern struct {
	Name    string
	Pattern *regexp.Regexp
}

// Options are the filter criteria. Any or all may be nil.
//
// Criteria combine with logical OR: a record is included when it satisfies
// the name test, or the tag test, or the property test. This mirrors the
// interactive-narrowing behavior of the original system and is deliberate;
// see DESIGN.md before "fixing" it to AND.
type Options struct {
	Name *regexp.Regexp // tested against the display name
	Tag  *regexp.Regexp // tested against each individual tag
	Prop *PropPattern
}

func (o Options) empty() bool {
	return o.Name == nil && o.Tag == nil && o.Prop == nil
}

func (o Options) matches(r contact.Record) bool {
	if o.Name != nil && o.Name.MatchString(r.Name) {
		return true
	}
	if o.Tag != nil {
		for _, tag := range r.Tags() {
			if o.Tag.MatchString(tag) {
				return true
			}
		}
	}
	if o.Prop != nil {
		if v, ok := r.Props.Get(o.Prop.Name); ok && o.Prop.Pattern.MatchString(v) {
			return true
		}
	}
	return false
}

// Filter returns the records satisfying the criteria, preserving cache
// order. With no criteria every record is returned unfiltered.
func Filter(recs []contact.Record, o Options) []contact.Record {
	if o.empty() {
		return recs
	}
	var out []contact.Record
	for _, r := range recs {
		if o.matches(r) {
			out = append(out, r)
		}
	}
	return out
}
