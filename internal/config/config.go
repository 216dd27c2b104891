package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Hardcover     HardcoverConfig    `mapstructure:"hardcover"`
	Search        SearchConfig       `mapstructure:"search"`
	Notifications NotificationConfig `mapstructure:"notifications"`
}

// HardcoverConfig holds remote service settings
type HardcoverConfig struct {
	APIToken     string `mapstructure:"api_token"`
	UserID       string `mapstructure:"user_id"` // string-encoded; launchers hand preferences over as text
	BaseURL      string `mapstructure:"base_url"`
	GraphQLURL   string `mapstructure:"graphql_url"`
	SearchURL    string `mapstructure:"search_url"`
	UseTypeahead bool   `mapstructure:"use_typeahead"`
}

// SearchConfig holds search behavior settings
type SearchConfig struct {
	ResultsLimit string `mapstructure:"results_limit"` // string-encoded; bad values fall back to the default
	SaveHistory  bool   `mapstructure:"save_history"`
}

// NotificationConfig holds desktop notification settings
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// DefaultResultsLimit is used when results_limit is unset or unparseable.
const DefaultResultsLimit = 10

var cfg *Config

// GetConfigDir returns the configuration directory path
func GetConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "hcq")
}

// GetDBPath returns the database file path
func GetDBPath() string {
	return filepath.Join(GetConfigDir(), "hcq.db")
}

// GetConfigPath returns the config file path
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// Init initializes the configuration
func Init(cfgFile string) error {
	// Set defaults
	viper.SetDefault("hardcover.base_url", "https://hardcover.app")
	viper.SetDefault("hardcover.graphql_url", "https://api.hardcover.app/v1/graphql")
	viper.SetDefault("hardcover.search_url", "https://search.hardcover.app/collections/books/documents/search")
	viper.SetDefault("hardcover.use_typeahead", true)
	viper.SetDefault("search.results_limit", "10")
	viper.SetDefault("search.save_history", true)
	viper.SetDefault("notifications.enabled", true)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(GetConfigDir())
	}

	// Environment variable overrides
	viper.SetEnvPrefix("HCQ")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file (ignore if not found)
	_ = viper.ReadInConfig()

	return nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		cfg = &Config{}
		viper.Unmarshal(cfg)
	}
	return cfg
}

// Set sets a configuration value
func Set(key, value string) error {
	viper.Set(key, value)

	// Ensure config directory exists
	configDir := GetConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	// Reset cached config
	cfg = nil

	return viper.WriteConfigAs(GetConfigPath())
}

// GetValue retrieves a configuration value
func GetValue(key string) interface{} {
	return viper.Get(key)
}

// ResultsLimit parses the configured page size, falling back to the default
// on anything non-numeric or non-positive.
func (c *Config) ResultsLimit() int {
	n, err := strconv.Atoi(strings.TrimSpace(c.Search.ResultsLimit))
	if err != nil || n <= 0 {
		return DefaultResultsLimit
	}
	return n
}

// UserIDInt parses the configured account id, or zero when unset or invalid.
func (c *Config) UserIDInt() int {
	n, err := strconv.Atoi(strings.TrimSpace(c.Hardcover.UserID))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
