package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/billmal071/hcq/internal/hardcover"
	"github.com/billmal071/hcq/internal/launcher"
	"github.com/billmal071/hcq/internal/notify"
	"github.com/billmal071/hcq/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add [query]",
	Short: "Add a book to your library",
	Long: `Search for a book and add it to your Hardcover library.

The status defaults to Want to Read. Accepted statuses: want, reading, read,
paused, dnf, ignored (or the numeric ids 1-6).

Examples:
  hcq add "the word for world is forest"
  hcq add -s reading "the lathe of heaven"
  hcq add --slug the-dispossessed -s read`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringP("status", "s", "want", "reading status to set")
	addCmd.Flags().String("slug", "", "add by book slug instead of searching")
}

func runAdd(cmd *cobra.Command, args []string) error {
	statusArg, _ := cmd.Flags().GetString("status")
	slug, _ := cmd.Flags().GetString("slug")

	status, ok := hardcover.ParseStatus(statusArg)
	if !ok {
		return fmt.Errorf("unknown status: %s (use want, reading, read, paused, dnf, or ignored)", statusArg)
	}

	handler := newHandler()
	client := newClient()

	if slug != "" {
		return addBySlug(cmd, handler, client, slug, status)
	}

	if len(args) == 0 {
		return fmt.Errorf("provide a search query or --slug")
	}
	query := strings.Join(args, " ")

	items := handler.HandleQuery(cmd.Context(), query)
	if len(items) == 0 {
		fmt.Println("No results.")
		return nil
	}

	choice, err := tui.RunSelector(items, "Select a book to add")
	if err != nil {
		return fmt.Errorf("selection failed: %w", err)
	}
	if choice == nil {
		return nil
	}

	payload := choice.Item.Action
	if payload == nil {
		// Already in the library, or not a book row.
		fmt.Printf("Selected: %s\n", choice.Item.Title)
		fmt.Printf("   %s\n", choice.Item.Subtitle)
		fmt.Println("Nothing to add for this result.")
		return nil
	}
	payload.Status = int(status)

	return runAction(cmd, handler, *payload)
}

// addBySlug resolves the slug to the integer id mutations need, then upserts
// directly without the search round trip.
func addBySlug(cmd *cobra.Command, handler *launcher.Handler, client *hardcover.Client, slug string, status hardcover.Status) error {
	bookID, err := client.BookIDBySlug(cmd.Context(), slug)
	if err != nil {
		return fmt.Errorf("resolving slug: %w", err)
	}
	if bookID == 0 {
		return fmt.Errorf("no book found for slug %q", slug)
	}

	entry, err := client.Upsert(cmd.Context(), bookID, status, nil)
	if err != nil {
		notify.AddFailed(slug, err.Error())
		return fmt.Errorf("adding book: %w", err)
	}

	notify.BookAdded(slug, entry.Status.Label())
	Successf("Added %s to %s", slug, entry.Status.Label())
	return nil
}
