// Package commands implements the DealerDesk CLI commands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/dealerdesk/dealerdesk/cmd/dealerdesk-cli/ui"
)

var (
	cfgFile string
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "dealerdesk",
	Short: "DealerDesk data tooling",
	Long: `DealerDesk data tooling generates the synthetic dealership inventory,
builds the manufacturer knowledge base, maintains the semantic search index,
and reports inventory statistics.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.InitUI(noColor)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
