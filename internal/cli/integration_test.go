package cli

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/aldertree/rolo/internal/testutil"
)

const familyBook = `# Family

## Ann Smith #family
EMAIL:: a@x.com
BIRTHDAY:: 1990-05-20

## Ben Smith #family
EMAIL:: b@x.com

## Shopping list
`

const workBook = `## Cat Jones #work
EMAIL:: c@x.com
PHONE:: 555-0100
`

// runCommand executes the root command with fresh flag state and captures
// stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Reset state carried between runs by package-level flag vars.
	configPath = ""
	sourceFlags = nil
	listName, listTag, listProp, listAll = "", "", "", false
	exportName, exportTag, exportProp, exportOutput = "", "", "", ""
	annivField, annivFormat, annivDate = "", "", ""
	copyCategory, copyIndex = "email", -1

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	rootCmd.SetArgs(args)
	execErr := rootCmd.Execute()

	w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatal(err)
	}
	return buf.String(), execErr
}

func buildBook(t *testing.T) *testutil.TestBook {
	t.Helper()
	return testutil.NewTestBook(t).
		WithFile("family.md", familyBook).
		WithFile("work.md", workBook).
		Build()
}

func TestListFiltersContacts(t *testing.T) {
	book := buildBook(t)

	out, err := runCommand(t, "--config", book.ConfigPath(), "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, name := range []string{"Ann Smith", "Ben Smith", "Cat Jones"} {
		if !strings.Contains(out, name) {
			t.Errorf("expected %s in listing:\n%s", name, out)
		}
	}
	if strings.Contains(out, "Shopping list") {
		t.Error("non-contact headings must not be listed")
	}

	out, err = runCommand(t, "--config", book.ConfigPath(), "list", "--tag", "^work$")
	if err != nil {
		t.Fatalf("list --tag: %v", err)
	}
	if !strings.Contains(out, "Cat Jones") || strings.Contains(out, "Ann Smith") {
		t.Errorf("unexpected tag filtering:\n%s", out)
	}
}

func TestCompleteGroupToken(t *testing.T) {
	book := buildBook(t)

	out, err := runCommand(t, "--config", book.ConfigPath(), "complete", "+family")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !strings.Contains(out, "Ann Smith <a@x.com>, Ben Smith <b@x.com>") {
		t.Errorf("unexpected group expansion:\n%s", out)
	}
	if strings.Contains(out, "c@x.com") {
		t.Error("group expansion leaked other tags")
	}
}

func TestAnniversariesCommand(t *testing.T) {
	book := buildBook(t)

	out, err := runCommand(t, "--config", book.ConfigPath(),
		"anniversaries", "--date", "2024-05-20", "--format", "{name} turns {years} ({ordinal})")
	if err != nil {
		t.Fatalf("anniversaries: %v", err)
	}
	if !strings.Contains(out, "Ann Smith turns 34 (34th)") {
		t.Errorf("unexpected anniversaries output:\n%s", out)
	}
}

func TestExportCommandWritesFile(t *testing.T) {
	book := buildBook(t)
	dest := book.Path("out.vcf")

	if _, err := runCommand(t, "--config", book.ConfigPath(), "export", "--tag", "^family$", "-o", dest); err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "EMAIL:a@x.com") {
		t.Errorf("missing exported email:\n%s", data)
	}
	if strings.Contains(string(data), "c@x.com") {
		t.Error("tag filter ignored during export")
	}
}

func TestCopyCommand(t *testing.T) {
	book := buildBook(t)

	out, err := runCommand(t, "--config", book.ConfigPath(), "copy", "Cat", "--category", "phone")
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if strings.TrimSpace(out) != "555-0100" {
		t.Errorf("expected the phone value, got %q", out)
	}

	// Empty category is a user-visible error.
	if _, err := runCommand(t, "--config", book.ConfigPath(), "copy", "Ann", "--category", "phone"); err == nil {
		t.Error("expected error for contact without the category")
	}
}
