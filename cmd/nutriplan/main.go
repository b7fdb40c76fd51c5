// Package main provides the nutriplan CLI: weekly nutrition plan generation, PDF export and the HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nutriplan",
	Short: "Weekly nutrition plan generator",
	Long: `nutriplan generates a personalized 7-day nutrition plan from a user profile with a streaming
language model, reports progress day by day, validates the result and exports it as a paginated PDF.

Configuration can be loaded from a JSON or YAML file using --config. Environment variables override
the file and command-line flags override both.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	rootConfigPath string
	rootLocale     string
	rootStore      string
	rootSQLitePath string
	rootLogLevel   string
	rootLogFormat  string
	rootVerbose    bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootConfigPath, "config", "", "Path to a JSON or YAML config file")
	flags.StringVar(&rootLocale, "locale", "", "Language of prompts, messages and exports (en, es)")
	flags.StringVar(&rootStore, "store", "", "Saved plan store: sqlite, postgres, redis or memory")
	flags.StringVar(&rootSQLitePath, "sqlite-path", "", "SQLite database file for the sqlite store")
	flags.StringVar(&rootLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&rootLogFormat, "log-format", "", "Log format (console, json)")
	flags.BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed plan summaries")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
