// Package cli implements the command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aldertree/rolo/internal/buildinfo"
	"github.com/aldertree/rolo/internal/cache"
	"github.com/aldertree/rolo/internal/config"
	"github.com/aldertree/rolo/internal/expr"
	"github.com/aldertree/rolo/internal/ui"
)

var (
	// Global flags
	configPath  string
	sourceFlags []string

	// Resolved values
	cfg *config.Config
	db  *cache.Cache
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rolo",
	Short: "Rolo - contacts living in your outline documents",
	Long: `Rolo treats a set of outline documents as a contacts database:
headings with EMAIL::, PHONE:: and friends become searchable records,
with completion, anniversaries, and card export on top.

The documents stay the source of truth; rolo never writes to them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if len(sourceFlags) > 0 {
			cfg.Sources = sourceFlags
		}
		ui.ConfigureTheme(cfg.UI.Accent)

		matcher, err := expr.Parse(cfg.Matcher)
		if err != nil {
			return fmt.Errorf("invalid contact matcher %q: %w", cfg.Matcher, err)
		}

		db = cache.New(cfg.ResolveSources, matcher, ui.Warnf)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		v := buildinfo.Version
		if v == "" {
			v = "dev"
		}
		fmt.Println("rolo", v)
	},
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Println(ui.Errorf("%v", err))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringArrayVar(&sourceFlags, "source", nil, "Outline document, directory, or glob (repeatable; overrides config)")
	rootCmd.AddCommand(versionCmd)
}
