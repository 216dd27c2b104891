package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/billmal071/hcq/internal/launcher"
)

var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Show your own lists",
	Long: `Show your Hardcover lists, most recently updated first.

Example:
  hcq lists`,
	RunE: runLists,
}

func runLists(cmd *cobra.Command, args []string) error {
	client := newClient()

	lists, err := client.UserLists(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetching lists: %w", err)
	}
	if len(lists) == 0 {
		fmt.Println("No lists yet.")
		return nil
	}

	presenter := newHandler().Presenter()
	items := make([]launcher.DisplayItem, 0, len(lists))
	for _, l := range lists {
		items = append(items, presenter.PresentList(l))
	}

	fmt.Printf("Your lists (%d):\n\n", len(items))
	printItems(items)
	return nil
}
