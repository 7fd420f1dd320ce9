package anniv

import (
	"strings"
	"testing"
	"time"

	"github.com/aldertree/rolo/internal/contact"
)

func record(name, birthday string) contact.Record {
	pm := contact.NewPropMap()
	if birthday != "" {
		pm.Set("BIRTHDAY", birthday)
	}
	return contact.Record{
		Name:  name,
		Loc:   contact.Location{Doc: "book.md", Line: 3},
		Props: pm,
	}
}

func TestEntriesComputesYearsAndOrdinal(t *testing.T) {
	recs := []contact.Record{record("Jane Doe", "1990-05-20")}
	today := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)

	got := Entries(recs, "BIRTHDAY", "{name}: {years} ({ordinal})", today)
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if got[0].Years != 34 {
		t.Errorf("expected 34 years, got %d", got[0].Years)
	}
	if got[0].Text != "Jane Doe: 34 (34th)" {
		t.Errorf("unexpected rendering: %q", got[0].Text)
	}
}

func TestEntriesSkipsNonRecurring(t *testing.T) {
	recs := []contact.Record{record("Jane", "1990-05-20")}
	today := time.Date(2024, 5, 21, 0, 0, 0, 0, time.UTC)
	if got := Entries(recs, "BIRTHDAY", "", today); len(got) != 0 {
		t.Errorf("expected no entries, got %v", got)
	}
}

func TestEntriesSkipsMissingAndMalformed(t *testing.T) {
	recs := []contact.Record{
		record("No Field", ""),
		record("Bad Date", "20.05.1990"),
		record("Good", "1990-05-20"),
	}
	today := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	got := Entries(recs, "BIRTHDAY", "{name}", today)
	if len(got) != 1 || got[0].Text != "Good" {
		t.Errorf("malformed records must be skipped, got %v", got)
	}
}

func TestEntriesLink(t *testing.T) {
	recs := []contact.Record{record("Jane Doe", "1990-05-20")}
	today := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	got := Entries(recs, "BIRTHDAY", "{link}", today)
	if len(got) != 1 {
		t.Fatal("expected entry")
	}
	if !strings.Contains(got[0].Text, "book.md#jane-doe") || !strings.Contains(got[0].Text, "[Jane Doe]") {
		t.Errorf("unexpected link: %q", got[0].Text)
	}
}
