package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	// Dynamic completion for reading statuses
	libraryCmd.ValidArgsFunction = completeStatuses
	addCmd.RegisterFlagCompletionFunc("status", completeStatuses)
}

// completeStatuses provides completion for reading status names
func completeStatuses(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	statuses := []string{
		"want\tWant to Read",
		"reading\tCurrently Reading",
		"read\tRead",
		"paused\tPaused",
		"dnf\tDid Not Finish",
		"ignored\tIgnored",
	}
	return statuses, cobra.ShellCompDirectiveNoFileComp
}
