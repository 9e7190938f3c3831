package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobvault/internal/config"
	"github.com/jonathan/jobvault/internal/observability"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change capture settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting (capture_ea, capture_ext or resume_max_mb)",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	cfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintSettings(store.Path(), cfg, time.Now())
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	apply, err := settingSetter(key, value)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	if _, err := store.Update(apply); err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
	return nil
}

func settingSetter(key, value string) (func(*config.Config) error, error) {
	switch key {
	case "capture_ea", "capture_ext":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s takes true or false, got %q", key, value)
		}
		return func(c *config.Config) error {
			if key == "capture_ea" {
				c.CaptureEA = b
			} else {
				c.CaptureExt = b
			}
			return nil
		}, nil
	case "resume_max_mb":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("resume_max_mb takes a positive number, got %q", value)
		}
		return func(c *config.Config) error {
			c.ResumeMaxMB = n
			return nil
		}, nil
	}
	return nil, fmt.Errorf("unknown setting %q", key)
}
