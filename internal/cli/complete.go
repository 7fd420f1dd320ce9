package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aldertree/rolo/internal/complete"
	"github.com/aldertree/rolo/internal/ui"
)

var completeCmd = &cobra.Command{
	Use:   "complete <token>",
	Short: "Complete a contact token the way a mail composer would",
	Long: `Complete a token against the contacts database.

Plain tokens complete against "Name <email>" mailboxes at word
boundaries. A token starting with the group marker (default "+")
completes against tags and expands a unique tag to every member's
mailbox. A token starting with the expression marker (default "&") is
evaluated as a tag/property filter expression.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recs, err := db.Records()
		if err != nil {
			return err
		}

		engine := completionEngine()
		res, err := engine.Complete(args[0], recs)
		if err != nil {
			return err
		}

		if res.Done {
			fmt.Println(res.Text)
			return nil
		}

		if res.Text != args[0] {
			fmt.Println(res.Text)
		}
		for _, c := range res.Candidates {
			fmt.Println(complete.Highlight(c))
		}
		if len(res.Candidates) == 0 && res.Text == args[0] {
			fmt.Println(ui.Errorf("no completion for %q", args[0]))
		}
		return nil
	},
}

// completionEngine wires the engine from configuration.
func completionEngine() *complete.Engine {
	email, _ := cfg.Category("email")
	return &complete.Engine{
		GroupMarker: cfg.GroupMarker,
		ExprMarker:  cfg.ExprMarker,
		IgnoreCase:  !cfg.CompletionCaseSensitive,
		EmailProps:  cfg.EmailProps(),
		Email:       email,
		IgnoreProp:  cfg.IgnoreProperty,
	}
}

func init() {
	rootCmd.AddCommand(completeCmd)
}
