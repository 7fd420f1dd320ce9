package vcard

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/aldertree/rolo/internal/contact"
)

func testCategories() Categories {
	return Categories{
		Email:    contact.Category{Name: "Email", Props: []string{"EMAIL", "EMAIL_WORK"}, Default: "EMAIL"},
		Phone:    contact.Category{Name: "Phone", Props: []string{"PHONE", "MOBILE"}, Default: "PHONE"},
		Address:  contact.Category{Name: "Address", Props: []string{"ADDRESS"}, Default: "ADDRESS"},
		Alias:    contact.Category{Name: "Alias", Props: []string{"ALIAS", "NICKNAME"}, Default: "NICKNAME"},
		Birthday: "BIRTHDAY",
		Note:     "NOTE",
	}
}

func makeRecord(name string, props [][2]string) contact.Record {
	pm := contact.NewPropMap()
	for _, kv := range props {
		pm.Set(kv[0], kv[1])
	}
	return contact.Record{Name: name, Props: pm}
}

func TestEscapeRoundTrip(t *testing.T) {
	in := `Doe; Jane, "J\D"` + "\nsecond line"
	if got := Unescape(Escape(in)); got != in {
		t.Errorf("round trip failed: %q", got)
	}
	if !strings.Contains(Escape("a;b"), `\;`) {
		t.Error("semicolon must be escaped")
	}
}

func TestExportMultiValueEmails(t *testing.T) {
	rec := makeRecord("Jane Doe", [][2]string{
		{"EMAIL", "jane@x.com"},
		{"EMAIL_WORK", "jane@corp.com"},
		{"BIRTHDAY", "1990-05-20"},
	})

	var buf bytes.Buffer
	if err := Export(&buf, []contact.Record{rec}, testCategories()); err != nil {
		t.Fatal(err)
	}

	cards, err := Parse(&buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}

	// Both email properties survive the round trip.
	emails := cards[0].Get("EMAIL")
	if !reflect.DeepEqual(emails, []string{"jane@x.com", "jane@corp.com"}) {
		t.Errorf("expected both emails exported, got %v", emails)
	}
	if got := cards[0].Get("BDAY"); len(got) != 1 || got[0] != "1990-05-20" {
		t.Errorf("unexpected BDAY: %v", got)
	}
	if got := cards[0].Get("FN"); len(got) != 1 || got[0] != "Jane Doe" {
		t.Errorf("unexpected FN: %v", got)
	}
	if got := cards[0].Get("N"); len(got) != 1 || got[0] != "Doe;Jane;;;" {
		t.Errorf("unexpected N: %v", got)
	}
}

func TestExportSplitsMultiAddressProperty(t *testing.T) {
	rec := makeRecord("Jane", [][2]string{{"EMAIL", "a@x.com b@x.com"}})
	var buf bytes.Buffer
	if err := Export(&buf, []contact.Record{rec}, testCategories()); err != nil {
		t.Fatal(err)
	}
	cards, err := Parse(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got := cards[0].Get("EMAIL"); len(got) != 2 {
		t.Errorf("expected one EMAIL line per address, got %v", got)
	}
}

func TestExportEscapesReservedChars(t *testing.T) {
	rec := makeRecord("Doe; Jane", [][2]string{{"ADDRESS", "1 Main St, Apt 2"}})
	var buf bytes.Buffer
	if err := Export(&buf, []contact.Record{rec}, testCategories()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `FN:Doe\; Jane`) {
		t.Errorf("FN not escaped: %s", out)
	}
	if !strings.Contains(out, `ADR:1 Main St\, Apt 2`) {
		t.Errorf("ADR not escaped: %s", out)
	}

	cards, err := Parse(strings.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if got := cards[0].Get("ADR")[0]; got != "1 Main St, Apt 2" {
		t.Errorf("unescape mismatch: %q", got)
	}
}

func TestExportMultipleRecordsBlankLineSeparated(t *testing.T) {
	recs := []contact.Record{
		makeRecord("A", [][2]string{{"EMAIL", "a@x.com"}}),
		makeRecord("B", [][2]string{{"EMAIL", "b@x.com"}}),
	}
	var buf bytes.Buffer
	if err := Export(&buf, recs, testCategories()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "END:VCARD\n\nBEGIN:VCARD") {
		t.Error("expected blank line between cards")
	}
	cards, err := Parse(strings.NewReader(buf.String()))
	if err != nil || len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d err=%v", len(cards), err)
	}
}

func TestExportSkipsInvalidBirthday(t *testing.T) {
	rec := makeRecord("Jane", [][2]string{{"EMAIL", "j@x.com"}, {"BIRTHDAY", "soonish"}})
	var buf bytes.Buffer
	if err := Export(&buf, []contact.Record{rec}, testCategories()); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "BDAY") {
		t.Error("unparsable birthday must be skipped")
	}
}

func TestExportFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.vcf")
	rec := makeRecord("Jane", [][2]string{{"EMAIL", "j@x.com"}})
	if err := ExportFile(path, []contact.Record{rec}, testCategories()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "BEGIN:VCARD") {
		t.Errorf("unexpected file contents: %s", data)
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		"EMAIL:x@y.z\n",                         // content outside card
		"BEGIN:VCARD\n",                         // unterminated
		"BEGIN:VCARD\nBEGIN:VCARD\n",            // nested
		"END:VCARD\n",                           // END without BEGIN
		"BEGIN:VCARD\nmalformed\nEND:VCARD\n",   // no tag separator
	}
	for _, in := range bad {
		if _, err := Parse(strings.NewReader(in)); err == nil {
			t.Errorf("expected parse error for %q", in)
		}
	}
}
