package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aldertree/rolo/internal/ui"
)

var (
	copyCategory string
	copyIndex    int
)

var copyCmd = &cobra.Command{
	Use:   "copy <name>",
	Short: "Print one value of a contact's property category",
	Long: `Print a single value from a contact, chosen by category (default
email), for piping into a clipboard tool. When the category holds
several values the choices are listed; rerun with --index to pick one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recs, err := filteredRecords("(?i)"+args[0], "", "")
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			return fmt.Errorf("no contact matches %q", args[0])
		}
		rec := recs[0]

		cat, ok := cfg.Category(copyCategory)
		if !ok {
			return fmt.Errorf("unknown category %q (have: %v)", copyCategory, cfg.CategoryNames())
		}

		values := cat.Values(rec)
		switch {
		case len(values) == 0:
			// Distinct from a config or source failure: the contact
			// exists but has nothing to copy.
			return fmt.Errorf("%s has no %s value", rec.Name, cat.Name)
		case copyIndex >= 0:
			if copyIndex >= len(values) {
				return fmt.Errorf("--index %d out of range, %s has %d %s values", copyIndex, rec.Name, len(values), cat.Name)
			}
			fmt.Println(values[copyIndex])
		case len(values) == 1:
			fmt.Println(values[0])
		default:
			fmt.Println(ui.Muted.Render(fmt.Sprintf("%s has several %s values, pick one with --index:", rec.Name, cat.Name)))
			for i, v := range values {
				fmt.Printf("  %s %s\n", ui.LineNum(i), v)
			}
		}
		return nil
	},
}

func init() {
	copyCmd.Flags().StringVar(&copyCategory, "category", "email", "Property category to read")
	copyCmd.Flags().IntVar(&copyIndex, "index", -1, "Value to pick when several exist")
	rootCmd.AddCommand(copyCmd)
}
