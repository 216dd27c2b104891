package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/billmal071/hcq/internal/db"
	"github.com/billmal071/hcq/internal/tui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View and manage search history",
	Long: `View and manage your search history.

Without a subcommand, shows an interactive picker; selecting an entry runs
the search again.

Examples:
  hcq history              Pick a recent search to run again
  hcq history list         List recent searches
  hcq history clear        Clear all search history`,
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := db.GetUniqueSearchHistory(20)
		if err != nil {
			return fmt.Errorf("failed to get search history: %w", err)
		}
		if len(history) == 0 {
			fmt.Println("No search history.")
			fmt.Println("\nSearches are saved automatically when you search.")
			return nil
		}

		selected, err := tui.RunHistorySelector(history)
		if err != nil {
			return err
		}
		if selected == nil {
			return nil
		}

		return runSearch(cmd, []string{selected.Query})
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all search history",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.ClearSearchHistory(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		Successf("Search history cleared.")
		return nil
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent searches",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return showSearchHistory(limit)
	},
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "number of entries to show")

	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyListCmd)
}

func showSearchHistory(limit int) error {
	history, err := db.GetUniqueSearchHistory(limit)
	if err != nil {
		return fmt.Errorf("failed to get search history: %w", err)
	}

	if len(history) == 0 {
		fmt.Println("No search history.")
		fmt.Println("\nSearches are saved automatically when you search.")
		return nil
	}

	fmt.Printf("Recent Searches (%d):\n\n", len(history))

	for i, h := range history {
		fmt.Printf("  %d. \"%s\" (%d results)\n", i+1, h.Query, h.ResultCount)
		if h.Kind != "" && h.Kind != "book" {
			fmt.Printf("     Kind: %s\n", h.Kind)
		}
		fmt.Printf("     %s\n\n", h.CreatedAt.Format("2006-01-02 15:04"))
	}

	return nil
}
