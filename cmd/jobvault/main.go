// Package main provides the entry point for the jobvault CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobvault/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "jobvault",
	Short: "Save job applications to a local folder",
	Long: "jobvault files a snapshot of every job application (link, description, metadata and résumé) " +
		"under <folder>/<YYYY-MM>/<DD>/<date>__<company>__<role>.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Settings file (default $JOBVAULT_CONFIG or the user config dir)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openStore returns the settings store selected by --config or the defaults.
func openStore() (*config.Store, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return config.NewStore(path), nil
}
