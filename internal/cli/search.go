package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/billmal071/hcq/internal/config"
	"github.com/billmal071/hcq/internal/db"
	"github.com/billmal071/hcq/internal/launcher"
	"github.com/billmal071/hcq/internal/notify"
	"github.com/billmal071/hcq/internal/tui"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search Hardcover",
	Long: `Search Hardcover for books, authors, series, or lists.

The first word of the query selects what to search for: "author", "series",
or "list". Anything else searches books. The same parsing applies when hcq
is driven from a launcher keybinding.

By default, shows an interactive selector; enter opens the result in the
browser, and "a" adds a book to your Want to Read shelf.

Examples:
  hcq search "a wizard of earthsea"
  hcq search -n 5 author "le guin"
  hcq search series "earthsea"
  hcq search list "hugo winners"
  hcq search --no-interactive "the dispossessed"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntP("limit", "n", 0, "number of results to show (default from config)")
	searchCmd.Flags().Bool("no-interactive", false, "disable interactive mode, just print results")
}

func runSearch(cmd *cobra.Command, args []string) error {
	input := strings.Join(args, " ")
	limit, _ := cmd.Flags().GetInt("limit")
	noInteractive, _ := cmd.Flags().GetBool("no-interactive")

	Printf("Searching for: %s\n", input)

	handler := newHandler()
	if limit > 0 {
		handler = newHandlerWithLimit(limit)
	}

	items := handler.HandleQuery(cmd.Context(), input)

	saveHistory(input, items)

	if len(items) == 0 {
		fmt.Println("No results.")
		return nil
	}

	// Non-interactive mode: just print results
	if noInteractive {
		printItems(items)
		return nil
	}

	choice, err := tui.RunSelector(items, "Hardcover results")
	if err != nil {
		return fmt.Errorf("selection failed: %w", err)
	}
	if choice == nil {
		return nil // User cancelled
	}

	fmt.Println()

	if choice.AddAction && choice.Item.Action != nil {
		return runAction(cmd, handler, *choice.Item.Action)
	}

	if choice.Item.URL == "" {
		fmt.Printf("Selected: %s\n", choice.Item.Title)
		fmt.Println("This result has no page to open.")
		return nil
	}

	Printf("Opening %s\n", choice.Item.URL)
	return openURL(choice.Item.URL)
}

// runAction executes a secondary action and prints the resulting items.
func runAction(cmd *cobra.Command, handler *launcher.Handler, payload launcher.ActionPayload) error {
	results := handler.HandleAction(cmd.Context(), payload)
	for _, item := range results {
		if item.Title == "Error Adding Book" {
			notify.AddFailed(payload.Title, item.Subtitle)
			Errorf("%s: %s", item.Title, item.Subtitle)
			continue
		}
		if payload.Action == launcher.ActionAddToLibrary {
			notify.BookAdded(item.Subtitle, strings.TrimPrefix(item.Title, "Added to "))
		}
		Successf("%s: %s", item.Title, item.Subtitle)
	}
	return nil
}

// saveHistory records the search when history is enabled. Failures only warn;
// history is best-effort.
func saveHistory(input string, items []launcher.DisplayItem) {
	if !config.Get().Search.SaveHistory {
		return
	}
	kind := "book"
	switch strings.ToLower(strings.SplitN(input, " ", 2)[0]) {
	case "author", "authors":
		kind = "author"
	case "series":
		kind = "series"
	case "list", "lists":
		kind = "list"
	}
	if err := db.AddSearchHistory(input, kind, len(items)); err != nil {
		Printf("could not save search history: %v\n", err)
	}
}

// printItems prints display items in a simple format
func printItems(items []launcher.DisplayItem) {
	for i, item := range items {
		fmt.Printf("%d. %s\n", i+1, item.Title)
		if item.Subtitle != "" {
			fmt.Printf("   %s\n", item.Subtitle)
		}
		if item.URL != "" {
			fmt.Printf("   %s\n", item.URL)
		}
		if item.Action != nil {
			fmt.Printf("   (not in library, add with: hcq add %q)\n", item.Action.Title)
		}
		fmt.Println()
	}
}
