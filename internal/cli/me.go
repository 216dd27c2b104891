package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the authenticated account",
	Long: `Show the Hardcover account the configured API token belongs to.

Useful for finding your numeric user id, which enables the in-library
annotations on search results:

  hcq config set hardcover.user_id <id>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()

		user, err := client.Me(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetching account: %w", err)
		}

		fmt.Printf("Logged in as @%s", user.Username)
		if user.Name != "" {
			fmt.Printf(" (%s)", user.Name)
		}
		fmt.Println()
		fmt.Printf("User id: %d\n", user.ID)
		return nil
	},
}
