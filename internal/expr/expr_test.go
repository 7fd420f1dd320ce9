package expr

import (
	"testing"

	"github.com/aldertree/rolo/internal/contact"
)

func record(tags string, props map[string]string) contact.Record {
	pm := contact.NewPropMap()
	if tags != "" {
		pm.Set(contact.TagsProperty, tags)
	}
	for k, v := range props {
		pm.Set(k, v)
	}
	return contact.Record{Name: "Test", Props: pm}
}

func TestTagPresence(t *testing.T) {
	e, err := Parse("family")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !e.Match(record(":family:friend:", nil)) {
		t.Error("expected tag match")
	}
	if e.Match(record(":work:", nil)) {
		t.Error("expected no match for other tag")
	}
	if e.Match(record("", nil)) {
		t.Error("expected no match for untagged record")
	}
}

func TestPropertyRegex(t *testing.T) {
	e, err := Parse(`EMAIL~@example\.com$`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !e.Match(record("", map[string]string{"EMAIL": "jane@example.com"})) {
		t.Error("expected property regex match")
	}
	if e.Match(record("", map[string]string{"EMAIL": "jane@other.org"})) {
		t.Error("expected no match")
	}
	if e.Match(record("", nil)) {
		t.Error("missing property must not match")
	}
}

func TestPropertyKeyIsCaseFolded(t *testing.T) {
	e, err := Parse("email~.")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !e.Match(record("", map[string]string{"EMAIL": "x@y.z"})) {
		t.Error("lower-case key in expression must match upper-cased property")
	}
}

func TestQuotedPattern(t *testing.T) {
	e, err := Parse(`PHONE~"555 01"`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !e.Match(record("", map[string]string{"PHONE": "+1 555 0100"})) {
		t.Error("expected quoted pattern with space to match")
	}
}

func TestPrecedenceAndGrouping(t *testing.T) {
	// AND binds tighter than OR.
	e, err := Parse("family&EMAIL~.|work")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !e.Match(record(":work:", nil)) {
		t.Error("work alone should satisfy the OR arm")
	}
	if e.Match(record(":family:", nil)) {
		t.Error("family without email should not match")
	}

	grouped, err := Parse("family&(EMAIL~.|work)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if grouped.Match(record(":work:", nil)) {
		t.Error("grouping must require the family tag")
	}
	if !grouped.Match(record(":family:work:", nil)) {
		t.Error("family+work should match grouped expression")
	}
}

func TestNegation(t *testing.T) {
	e, err := Parse("!work&EMAIL~.")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !e.Match(record(":family:", map[string]string{"EMAIL": "a@b.c"})) {
		t.Error("expected match for non-work record with email")
	}
	if e.Match(record(":work:", map[string]string{"EMAIL": "a@b.c"})) {
		t.Error("negated tag must exclude")
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{"", "(family", "family&", "EMAIL~", "EMAIL~[", `EMAIL~"unterminated`, "family)", "#"}
	for _, in := range bad {
		if _, err := Parse(in); err == nil {
			t.Errorf("expected parse error for %q", in)
		}
	}
}
