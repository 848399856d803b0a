package commands

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dealerdesk/dealerdesk/cmd/dealerdesk-cli/ui"
	"github.com/dealerdesk/dealerdesk/internal/config"
	"github.com/dealerdesk/dealerdesk/internal/inventory"
	"github.com/dealerdesk/dealerdesk/internal/observability"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show inventory statistics",
	Long:  "Summarize the configured inventory file: counts, price range, and category breakdown.",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := inventory.LoadStore(cfg.Data.InventoryPath, observability.Nop())
	if err != nil {
		return err
	}
	if store.Count() == 0 {
		ui.Warning("Inventory %s is empty; run the generate command first", cfg.Data.InventoryPath)
		return nil
	}

	stats := store.ComputeStats()

	ui.Section("Inventory Statistics")
	ui.Table(
		[]string{"Metric", "Value"},
		[][]string{
			{"Total vehicles", strconv.Itoa(stats.TotalVehicles)},
			{"Available", strconv.Itoa(stats.Available)},
			{"Featured", strconv.Itoa(stats.Featured)},
			{"Min price", "$" + strconv.Itoa(stats.MinPrice)},
			{"Max price", "$" + strconv.Itoa(stats.MaxPrice)},
			{"Avg price", "$" + strconv.Itoa(stats.AvgPrice)},
		},
	)

	categories := make([]string, 0, len(stats.Categories))
	for cat := range stats.Categories {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	rows := make([][]string, 0, len(categories))
	for _, cat := range categories {
		rows = append(rows, []string{cat, strconv.Itoa(stats.Categories[cat])})
	}

	ui.Section("Categories")
	ui.Table([]string{"Category", "Count"}, rows)

	return nil
}
