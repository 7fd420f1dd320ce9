package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aldertree/rolo/internal/mail"
	"github.com/aldertree/rolo/internal/ui"
)

var fromMessageCmd = &cobra.Command{
	Use:   "from-message",
	Short: "Look up the contact for the message on stdin",
	Long: `Read an RFC 822 message from stdin, extract the sender, and show
the matching contacts. Useful from mail-client keybindings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := mail.ReadMessage(os.Stdin)
		if err != nil {
			return fmt.Errorf("unreadable message: %w", err)
		}
		name, email, ok := msg.SenderNameAndEmail()
		if !ok {
			return fmt.Errorf("message has no sender")
		}

		recs, err := db.Records()
		if err != nil {
			return err
		}

		found := false
		for _, r := range recs {
			for _, addr := range r.Emails(cfg.EmailProps(), "") {
				if addr == email {
					fmt.Printf("%s  %s:%s\n", ui.Accent.Render(r.Name), ui.FilePath(r.Loc.Doc), ui.LineNum(r.Loc.Line))
					found = true
					break
				}
			}
		}
		if !found {
			fmt.Println(ui.Muted.Render(fmt.Sprintf("no contact for %s <%s>", name, email)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fromMessageCmd)
}
