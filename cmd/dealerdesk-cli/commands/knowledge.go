package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dealerdesk/dealerdesk/cmd/dealerdesk-cli/ui"
	"github.com/dealerdesk/dealerdesk/internal/config"
	"github.com/dealerdesk/dealerdesk/internal/datagen"
)

var knowledgeOutput string

var knowledgeCmd = &cobra.Command{
	Use:   "knowledge",
	Short: "Build the manufacturer knowledge base",
	Long:  "Build the manufacturer specification knowledge base JSON from the built-in templates.",
	RunE:  runKnowledge,
}

func init() {
	knowledgeCmd.Flags().StringVarP(&knowledgeOutput, "output", "o", "", "Output path (defaults to the configured knowledge base path)")
	rootCmd.AddCommand(knowledgeCmd)
}

func runKnowledge(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	output := knowledgeOutput
	if output == "" {
		output = cfg.Data.KnowledgeBasePath
	}

	ui.Section("Knowledge Base Build")

	entries := datagen.BuildKnowledgeBase(datagen.SampleBaseVehicles())
	if len(entries) == 0 {
		ui.Warning("No spec templates matched the base vehicles")
	}

	if err := datagen.SaveKnowledgeBase(output, entries); err != nil {
		return err
	}

	ui.Success("Wrote %d spec sheets to %s", len(entries), output)
	return nil
}
