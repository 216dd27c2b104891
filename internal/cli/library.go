package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/billmal071/hcq/internal/hardcover"
	"github.com/billmal071/hcq/internal/launcher"
)

var libraryCmd = &cobra.Command{
	Use:   "library [status]",
	Short: "Show books in your library",
	Long: `Show your most recently updated books in one reading status.

The status defaults to Currently Reading. Accepted statuses: want, reading,
read, paused, dnf, ignored (or the numeric ids 1-6).

Examples:
  hcq library
  hcq library want
  hcq library read`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLibrary,
}

func runLibrary(cmd *cobra.Command, args []string) error {
	status := hardcover.StatusCurrentlyReading
	if len(args) > 0 {
		parsed, ok := hardcover.ParseStatus(args[0])
		if !ok {
			return fmt.Errorf("unknown status: %s (use want, reading, read, paused, dnf, or ignored)", args[0])
		}
		status = parsed
	}

	handler := newHandler()
	items := handler.HandleAction(cmd.Context(), launcher.ActionPayload{
		Action: launcher.ActionListBooks,
		Status: int(status),
	})

	fmt.Printf("%s:\n\n", status.Label())
	printItems(items)
	return nil
}
