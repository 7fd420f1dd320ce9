package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aldertree/rolo/internal/anniv"
	"github.com/aldertree/rolo/internal/contact"
	"github.com/aldertree/rolo/internal/dates"
)

var (
	annivField  string
	annivFormat string
	annivDate   string
)

var anniversariesCmd = &cobra.Command{
	Use:   "anniversaries",
	Short: "Show anniversaries falling on a date",
	Long: `Show the contacts whose anniversary date recurs on the given day
(default today). The date property and output template are configurable;
the template substitutes {name}, {link}, {years} and {ordinal}.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		today, err := dates.ParseDateArg(annivDate, time.Now())
		if err != nil {
			return err
		}

		field := annivField
		if field == "" {
			field = cfg.BirthdayProperty
		}
		format := annivFormat
		if format == "" {
			format = cfg.AnniversaryFormat
		}

		recs, err := db.Records()
		if err != nil {
			return err
		}

		for _, entry := range anniv.Entries(recs, contact.NormalizeKey(field), format, today) {
			fmt.Println(entry.Text)
		}
		return nil
	},
}

func init() {
	anniversariesCmd.Flags().StringVar(&annivField, "field", "", "Date property to read (default from config)")
	anniversariesCmd.Flags().StringVar(&annivFormat, "format", "", "Entry template")
	anniversariesCmd.Flags().StringVar(&annivDate, "date", "", "Reference date: YYYY-MM-DD or today/yesterday/tomorrow")
	rootCmd.AddCommand(anniversariesCmd)
}
