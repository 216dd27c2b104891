package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/billmal071/hcq/internal/config"
	"github.com/billmal071/hcq/internal/db"
	"github.com/billmal071/hcq/internal/hardcover"
	"github.com/billmal071/hcq/internal/launcher"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "hcq",
	Short: "Search Hardcover and manage your library",
	Long: `hcq is a quick-search CLI for the Hardcover book catalogue.

It searches books, authors, series, and lists, opens results in the browser,
and adds books to your Hardcover library.

Examples:
  hcq search "the left hand of darkness"   Search for books
  hcq search author "le guin"              Search for authors
  hcq add "the dispossessed"               Search and add a book to Want to Read
  hcq library reading                      Show books you are currently reading
  hcq me                                   Show the authenticated account`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize config
		if err := config.Init(cfgFile); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		// Initialize database
		if err := db.Init(); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		db.Close()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.config/hcq/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(libraryCmd)
	rootCmd.AddCommand(listsCmd)
	rootCmd.AddCommand(meCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// newHandler wires a launcher handler from the current configuration.
func newHandler() *launcher.Handler {
	cfg := config.Get()
	client := hardcover.NewClient(hardcover.Options{
		Token:        cfg.Hardcover.APIToken,
		UserID:       cfg.UserIDInt(),
		GraphQLURL:   cfg.Hardcover.GraphQLURL,
		SearchURL:    cfg.Hardcover.SearchURL,
		UseTypeahead: cfg.Hardcover.UseTypeahead,
	})
	return launcher.NewHandler(client, cfg.Hardcover.BaseURL, cfg.ResultsLimit())
}

// newHandlerWithLimit is newHandler with the page size overridden by a flag.
func newHandlerWithLimit(limit int) *launcher.Handler {
	cfg := config.Get()
	return launcher.NewHandler(newClient(), cfg.Hardcover.BaseURL, limit)
}

// newClient wires a bare API client from the current configuration.
func newClient() *hardcover.Client {
	cfg := config.Get()
	return hardcover.NewClient(hardcover.Options{
		Token:        cfg.Hardcover.APIToken,
		UserID:       cfg.UserIDInt(),
		GraphQLURL:   cfg.Hardcover.GraphQLURL,
		SearchURL:    cfg.Hardcover.SearchURL,
		UseTypeahead: cfg.Hardcover.UseTypeahead,
	})
}

// Verbose returns whether verbose mode is enabled
func Verbose() bool {
	return verbose
}

// Printf prints if verbose mode is enabled
func Printf(format string, args ...interface{}) {
	if verbose {
		fmt.Printf(format, args...)
	}
}

// Errorf prints an error message to stderr
func Errorf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// Successf prints a success message
func Successf(format string, args ...interface{}) {
	fmt.Printf("✓ "+format+"\n", args...)
}
