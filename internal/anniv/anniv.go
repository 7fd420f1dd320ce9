// Package anniv derives recurring-date entries (birthdays, any
// configurable date property) from the contact records.
package anniv

import (
	"strconv"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/aldertree/rolo/internal/contact"
	"github.com/aldertree/rolo/internal/dates"
)

// DefaultFormat is the template used when configuration supplies none.
const DefaultFormat = "{link} is {years} years old ({ordinal} anniversary)"

// Entry is one anniversary occurring on the reference date.
type Entry struct {
	Record contact.Record
	Years  int
	Text   string
}

// Entries scans the records for a date stored under field and returns a
// formatted entry for each one recurring on the reference date. Records
// lacking the field or holding an unparsable date are skipped.
//
// The template substitutes {name}, {link} (a navigable markdown reference
// to the record's heading), {years} and {ordinal}.
func Entries(recs []contact.Record, field, tmpl string, today time.Time) []Entry {
	if tmpl == "" {
		tmpl = DefaultFormat
	}

	var out []Entry
	for _, r := range recs {
		raw, ok := r.Props.Get(field)
		if !ok {
			continue
		}
		d, err := dates.ParseDate(raw)
		if err != nil {
			continue
		}
		if !dates.RecursOn(d, today) {
			continue
		}
		years := dates.ElapsedYears(d, today)
		out = append(out, Entry{
			Record: r,
			Years:  years,
			Text:   render(tmpl, r, years),
		})
	}
	return out
}

func render(tmpl string, r contact.Record, years int) string {
	repl := strings.NewReplacer(
		"{name}", r.Name,
		"{link}", Link(r),
		"{years}", strconv.Itoa(years),
		"{ordinal}", dates.Ordinal(years),
	)
	return repl.Replace(tmpl)
}

// Link renders a navigable markdown reference to the record's heading.
func Link(r contact.Record) string {
	return "[" + r.Name + "](" + r.Loc.Doc + "#" + slug.Make(r.Name) + ")"
}
