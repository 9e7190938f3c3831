package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobvault/internal/capture"
	"github.com/jonathan/jobvault/internal/config"
)

var easyApplyCmd = &cobra.Command{
	Use:   "easy-apply",
	Short: "Switch Easy Apply capture off or back on",
}

var easyApplyDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Stop capturing Easy Apply applications for today or for good",
	Args:  cobra.NoArgs,
	RunE:  runEasyApplyDisable,
}

var easyApplyEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Capture Easy Apply applications again",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEasyApply(cmd, capture.ScopeEnable)
	},
}

var disableScope string

func init() {
	easyApplyDisableCmd.Flags().StringVar(&disableScope, "scope", string(capture.ScopeToday), "How long to disable: today or always")

	easyApplyCmd.AddCommand(easyApplyDisableCmd, easyApplyEnableCmd)
	rootCmd.AddCommand(easyApplyCmd)
}

func runEasyApplyDisable(cmd *cobra.Command, args []string) error {
	scope := capture.Scope(disableScope)
	if scope != capture.ScopeToday && scope != capture.ScopeAlways {
		return fmt.Errorf("--scope must be today or always, got %q", disableScope)
	}
	return setEasyApply(cmd, scope)
}

func setEasyApply(cmd *cobra.Command, scope capture.Scope) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	now := time.Now()
	cfg, err := store.Update(func(c *config.Config) error {
		return capture.SetEasyApply(c, scope, now)
	})
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}

	out := cmd.OutOrStdout()
	switch {
	case cfg.DisableEAAlways:
		fmt.Fprintln(out, "Easy Apply capture disabled until re-enabled")
	case capture.EasyApplyDisabled(cfg, now):
		until := time.UnixMilli(cfg.DisableEATodayUntil)
		fmt.Fprintf(out, "Easy Apply capture disabled until %s\n", until.Format("2006-01-02 15:04:05"))
	default:
		fmt.Fprintln(out, "Easy Apply capture enabled")
	}
	return nil
}
