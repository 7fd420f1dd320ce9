package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aldertree/rolo/internal/contact"
	"github.com/aldertree/rolo/internal/outline"
	"github.com/aldertree/rolo/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Render a contact's outline subtree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recs, err := filteredRecords("(?i)"+args[0], "", "")
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			return fmt.Errorf("no contact matches %q", args[0])
		}
		if len(recs) > 1 {
			fmt.Println(ui.Muted.Render(fmt.Sprintf("%d contacts match; showing the first", len(recs))))
		}
		rec := recs[0]

		doc, err := db.Live().Resolve(rec.Loc)
		if err != nil {
			return fmt.Errorf("contact moved since last scan, rerun: %w", err)
		}

		fragment, err := subtree(doc, rec)
		if err != nil {
			return err
		}

		if !ui.IsTTY() {
			fmt.Print(fragment)
			return nil
		}
		rendered, err := ui.RenderMarkdown(fragment, ui.TermWidth())
		if err != nil {
			return err
		}
		fmt.Print(rendered)
		return nil
	},
}

// subtree extracts the record's heading and everything beneath it, up to
// the next heading of the same or shallower level.
func subtree(doc *outline.Document, rec contact.Record) (string, error) {
	data, err := os.ReadFile(doc.Path)
	if err != nil {
		return "", err
	}
	lines := strings.Split(string(data), "\n")
	if rec.Loc.Line < 1 || rec.Loc.Line > len(lines) {
		return "", fmt.Errorf("stale location %s:%d", rec.Loc.Doc, rec.Loc.Line)
	}

	var level int
	for _, n := range doc.Nodes {
		if n.Line == rec.Loc.Line {
			level = n.Level
			break
		}
	}

	end := len(lines)
	for _, n := range doc.Nodes {
		if n.Line > rec.Loc.Line && level > 0 && n.Level <= level {
			end = n.Line - 1
			break
		}
	}
	return strings.Join(lines[rec.Loc.Line-1:end], "\n") + "\n", nil
}

func init() {
	rootCmd.AddCommand(showCmd)
}
