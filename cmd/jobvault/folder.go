package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobvault/internal/config"
	"github.com/jonathan/jobvault/internal/observability"
	"github.com/jonathan/jobvault/internal/vault"
)

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Choose the save folder and manage access to it",
}

var folderSetCmd = &cobra.Command{
	Use:   "set <dir>",
	Short: "Choose the folder records are saved under and grant access to it",
	Args:  cobra.ExactArgs(1),
	RunE:  runFolderSet,
}

var folderClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the save folder",
	Args:  cobra.NoArgs,
	RunE:  runFolderClear,
}

var folderShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the save folder, its access state and other settings",
	Args:  cobra.NoArgs,
	RunE:  runFolderShow,
}

var folderGrantCmd = &cobra.Command{
	Use:   "grant",
	Short: "Grant read-write access to the save folder",
	Args:  cobra.NoArgs,
	RunE:  runFolderGrant,
}

var folderRevokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Revoke access to the save folder; saves fail until it is granted again",
	Args:  cobra.NoArgs,
	RunE:  runFolderRevoke,
}

var folderYes bool

func init() {
	for _, c := range []*cobra.Command{folderSetCmd, folderGrantCmd} {
		c.Flags().BoolVarP(&folderYes, "yes", "y", false, "Grant access without prompting")
	}

	folderCmd.AddCommand(folderSetCmd, folderClearCmd, folderShowCmd, folderGrantCmd, folderRevokeCmd)
	rootCmd.AddCommand(folderCmd)
}

func runFolderSet(cmd *cobra.Command, args []string) error {
	dir, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve folder: %w", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("failed to open folder: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	if _, err := store.Update(func(c *config.Config) error {
		if !samePath(c.BaseDir, dir) {
			c.BaseDirGranted = false
		}
		c.BaseDir = dir
		return nil
	}); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Folder: %s\n", dir)

	return requestGrant(cmd, store, dir)
}

func runFolderClear(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	if _, err := store.Update(func(c *config.Config) error {
		c.BaseDir = ""
		c.BaseDirGranted = false
		return nil
	}); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Folder cleared")
	return nil
}

func runFolderShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	cfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintSettings(store.Path(), cfg, time.Now())

	if cfg.BaseDir != "" {
		perm, err := vault.NewDirRoot(cfg.BaseDir, store, nil).QueryPermission(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Permission: %s\n", perm)
	}
	return nil
}

func runFolderGrant(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	cfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if cfg.BaseDir == "" {
		return fmt.Errorf("no folder selected; run 'jobvault folder set <dir>' first")
	}
	return requestGrant(cmd, store, cfg.BaseDir)
}

func runFolderRevoke(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	cfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if cfg.BaseDir == "" {
		return fmt.Errorf("no folder selected")
	}
	if err := store.SetGranted(cfg.BaseDir, false); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Access revoked for %s\n", cfg.BaseDir)
	return nil
}

func requestGrant(cmd *cobra.Command, store *config.Store, dir string) error {
	var prompter vault.Prompter = newTerminalPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
	if folderYes {
		prompter = yesPrompter{}
	}

	root := vault.NewDirRoot(dir, store, prompter)
	perm, err := root.QueryPermission(cmd.Context())
	if err == nil && perm != vault.PermissionGranted {
		perm, err = root.RequestPermission(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("failed to grant access: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Permission: %s\n", perm)
	if perm != vault.PermissionGranted {
		return fmt.Errorf("access to %s was not granted", dir)
	}
	return nil
}

func samePath(a, b string) bool {
	return a != "" && filepath.Clean(a) == filepath.Clean(b)
}
