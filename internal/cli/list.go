package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aldertree/rolo/internal/ui"
)

var (
	listName string
	listTag  string
	listProp string
	listAll  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts matching a name, tag, or property pattern",
	Long: `List contacts from the cached database.

The three criteria combine with OR: a contact is shown when it matches
the name pattern, or the tag pattern, or the property pattern. Without
criteria every contact is listed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		recs, err := filteredRecords(listName, listTag, listProp)
		if err != nil {
			return err
		}

		for _, r := range recs {
			line := ui.Accent.Render(r.Name)
			if tags := r.Tags(); len(tags) > 0 {
				line += " " + ui.Muted.Render(fmt.Sprintf("%v", tags))
			}
			fmt.Printf("%s  %s:%s\n", line, ui.FilePath(r.Loc.Doc), ui.LineNum(r.Loc.Line))
			if listAll {
				r.Props.All(func(k, v string) bool {
					fmt.Printf("  %s: %s\n", ui.Muted.Render(k), v)
					return true
				})
			}
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listName, "name", "", "Pattern tested against display names")
	listCmd.Flags().StringVar(&listTag, "tag", "", "Pattern tested against each individual tag")
	listCmd.Flags().StringVar(&listProp, "prop", "", "KEY=PATTERN property filter")
	listCmd.Flags().BoolVar(&listAll, "properties", false, "Show every property of each contact")
	rootCmd.AddCommand(listCmd)
}
