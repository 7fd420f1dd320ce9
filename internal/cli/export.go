package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aldertree/rolo/internal/ui"
	"github.com/aldertree/rolo/internal/vcard"
)

var (
	exportName   string
	exportTag    string
	exportProp   string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export contacts as interchange cards",
	Long: `Serialize the matching contacts to the plain-text card format.
Every populated property of a multi-valued category (several emails,
several phones) gets its own tagged line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		recs, err := filteredRecords(exportName, exportTag, exportProp)
		if err != nil {
			return err
		}
		cats := exportCategories()

		if exportOutput == "" {
			return vcard.Export(os.Stdout, recs, cats)
		}
		if err := vcard.ExportFile(exportOutput, recs, cats); err != nil {
			return err
		}
		fmt.Println(ui.Successf("exported %d contacts to %s", len(recs), ui.FilePath(exportOutput)))
		return nil
	},
}

func exportCategories() vcard.Categories {
	email, _ := cfg.Category("email")
	phone, _ := cfg.Category("phone")
	address, _ := cfg.Category("address")
	alias, _ := cfg.Category("alias")
	return vcard.Categories{
		Email:    email,
		Phone:    phone,
		Address:  address,
		Alias:    alias,
		Birthday: cfg.BirthdayProperty,
		Note:     cfg.NoteProperty,
	}
}

func init() {
	exportCmd.Flags().StringVar(&exportName, "name", "", "Pattern tested against display names")
	exportCmd.Flags().StringVar(&exportTag, "tag", "", "Pattern tested against each individual tag")
	exportCmd.Flags().StringVar(&exportProp, "prop", "", "KEY=PATTERN property filter")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
