package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobvault/internal/schemas"
	"github.com/jonathan/jobvault/internal/types"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <record-dir>",
	Short: "Check a saved record's files and metadata",
	Long:  "Check that a record directory holds link.txt, JD.md and a metadata.json that matches the metadata schema.",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	dir := args[0]

	for _, name := range []string{types.LinkFile, types.JDFile, types.MetadataFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("record is incomplete: %w", err)
		}
	}

	if err := schemas.ValidateMetadataFile(filepath.Join(dir, types.MetadataFile)); err != nil {
		return fmt.Errorf("%s: %w", types.MetadataFile, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "OK: %s\n", dir)
	return nil
}
