package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/billmal071/hcq/internal/config"
	"github.com/billmal071/hcq/internal/hardcover"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and modify hcq configuration.

Configuration is stored in ~/.config/hcq/config.yaml

Examples:
  hcq config set hardcover.api_token YOUR_API_TOKEN
  hcq config set hardcover.user_id 12345
  hcq config set search.results_limit 5
  hcq config get hardcover.user_id`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		value := config.GetValue(key)
		if value == nil {
			return fmt.Errorf("key not found: %s", key)
		}
		fmt.Printf("%s = %v\n", key, value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		value := args[1]

		// Tokens get pasted with Bearer prefixes and quotes; store the
		// cleaned-up form so the config file stays readable.
		if key == "hardcover.api_token" {
			value = hardcover.SanitizeToken(value)
		}

		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("failed to set config: %w", err)
		}

		Successf("Set %s = %s", key, value)
		fmt.Printf("Config saved to: %s\n", config.GetConfigPath())
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Config file: %s\n", config.GetConfigPath())
		fmt.Printf("Database:    %s\n", config.GetDBPath())
		fmt.Printf("Config dir:  %s\n", config.GetConfigDir())
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}
