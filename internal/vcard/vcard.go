// Package vcard serializes contact records to the plain-text interchange
// card format and parses such cards back for round-trips and imports.
package vcard

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/aldertree/rolo/internal/atomicfile"
	"github.com/aldertree/rolo/internal/contact"
	"github.com/aldertree/rolo/internal/dates"
)

// Categories names the property groupings consulted during export.
type Categories struct {
	Email    contact.Category
	Phone    contact.Category
	Address  contact.Category
	Alias    contact.Category
	Birthday string // property holding the YYYY-MM-DD date
	Note     string // property exported as NOTE
}

// Export writes one card per record. Every populated property of a
// multi-valued category produces its own tagged line; the original system
// only exported the single default property per category, which lost data
// and is deliberately not reproduced here (see DESIGN.md).
func Export(w io.Writer, recs []contact.Record, cats Categories) error {
	bw := bufio.NewWriter(w)
	for i, r := range recs {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		writeCard(bw, r, cats)
	}
	return bw.Flush()
}

// ExportFile writes the cards to path atomically.
func ExportFile(path string, recs []contact.Record, cats Categories) error {
	var buf bytes.Buffer
	if err := Export(&buf, recs, cats); err != nil {
		return err
	}
	return atomicfile.WriteFile(path, buf.Bytes(), 0o644)
}

func writeCard(w io.Writer, r contact.Record, cats Categories) {
	fmt.Fprintln(w, "BEGIN:VCARD")
	fmt.Fprintln(w, "VERSION:3.0")

	family, given := splitName(r.Name)
	fmt.Fprintf(w, "N:%s;%s;;;\n", Escape(family), Escape(given))
	fmt.Fprintf(w, "FN:%s\n", Escape(r.Name))

	for _, v := range cats.Email.Values(r) {
		// One property value may hold several whitespace-separated
		// addresses; each gets its own line.
		for _, addr := range strings.Fields(v) {
			fmt.Fprintf(w, "EMAIL:%s\n", Escape(addr))
		}
	}
	for _, v := range cats.Address.Values(r) {
		fmt.Fprintf(w, "ADR:%s\n", Escape(v))
	}
	for _, v := range cats.Phone.Values(r) {
		fmt.Fprintf(w, "TEL:%s\n", Escape(v))
	}
	if cats.Birthday != "" {
		if raw, ok := r.Props.Get(cats.Birthday); ok {
			if d, err := dates.ParseDate(raw); err == nil {
				fmt.Fprintf(w, "BDAY:%s\n", d.Format("2006-01-02"))
			}
		}
	}
	for _, v := range cats.Alias.Values(r) {
		fmt.Fprintf(w, "NICKNAME:%s\n", Escape(v))
	}
	if cats.Note != "" {
		if v, ok := r.Props.Get(cats.Note); ok && v != "" {
			fmt.Fprintf(w, "NOTE:%s\n", Escape(v))
		}
	}

	fmt.Fprintln(w, "END:VCARD")
}

// Escape backslash-escapes the format's reserved characters.
func Escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\', ';', ',':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Unescape reverses Escape.
func Unescape(s string) string {
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if escaped {
			if r == 'n' {
				b.WriteByte('\n')
			} else {
				b.WriteRune(r)
			}
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Card is a parsed interchange card: tag → values in written order.
type Card struct {
	Tags  []string
	Lines map[string][]string
}

// Get returns the values recorded for a tag.
func (c Card) Get(tag string) []string {
	return c.Lines[strings.ToUpper(tag)]
}

// Parse reads a concatenation of cards.
func Parse(r io.Reader) ([]Card, error) {
	var cards []Card
	var cur *Card

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		switch {
		case text == "BEGIN:VCARD":
			if cur != nil {
				return nil, fmt.Errorf("line %d: nested BEGIN", line)
			}
			cur = &Card{Lines: make(map[string][]string)}
		case text == "END:VCARD":
			if cur == nil {
				return nil, fmt.Errorf("line %d: END without BEGIN", line)
			}
			cards = append(cards, *cur)
			cur = nil
		default:
			if cur == nil {
				return nil, fmt.Errorf("line %d: content outside card", line)
			}
			tag, value, ok := strings.Cut(text, ":")
			if !ok {
				return nil, fmt.Errorf("line %d: malformed line %q", line, text)
			}
			tag = strings.ToUpper(strings.TrimSpace(tag))
			if _, seen := cur.Lines[tag]; !seen {
				cur.Tags = append(cur.Tags, tag)
			}
			cur.Lines[tag] = append(cur.Lines[tag], Unescape(value))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if cur != nil {
		return nil, fmt.Errorf("unterminated card")
	}
	return cards, nil
}

// splitName derives the N components from a display name: the last word is
// the family name, the rest the given name. Single-word names export with
// an empty given name.
func splitName(name string) (family, given string) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "", ""
	}
	if len(fields) == 1 {
		return fields[0], ""
	}
	return fields[len(fields)-1], strings.Join(fields[:len(fields)-1], " ")
}
