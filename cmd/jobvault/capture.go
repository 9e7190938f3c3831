package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobvault/internal/capture"
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture a job snapshot from a saved HTML page",
	Long: "Extract company, role and job description from a saved job page. Prints the snapshot as JSON, " +
		"or saves it as a record with --save.",
	Args: cobra.NoArgs,
	RunE: runCapture,
}

var (
	htmlFile       string
	captureURL     string
	selectionFile  string
	captureCompany string
	captureResume  string
	captureSave    bool
)

var captureFlags persistFlags

func init() {
	captureCmd.Flags().StringVar(&htmlFile, "html", "", "Saved HTML page (required)")
	captureCmd.Flags().StringVarP(&captureURL, "url", "u", "", "URL the page was saved from (required)")
	captureCmd.Flags().StringVar(&selectionFile, "selection-file", "", "Highlighted text to use when the page has no usable description")
	captureCmd.Flags().StringVarP(&captureCompany, "company", "c", "", "Company name, overriding the page")
	captureCmd.Flags().StringVar(&captureResume, "resume", "", "Résumé file to store with the record (with --save)")
	captureCmd.Flags().BoolVar(&captureSave, "save", false, "Save the snapshot as a record")
	addPersistFlags(captureCmd, &captureFlags)

	captureCmd.MarkFlagRequired("html")
	captureCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(captureCmd)
}

func runCapture(cmd *cobra.Command, args []string) error {
	opts := capture.Options{Company: captureCompany}
	if selectionFile != "" {
		data, err := os.ReadFile(selectionFile)
		if err != nil {
			return fmt.Errorf("failed to read selection: %w", err)
		}
		opts.Selection = string(data)
	}

	f, err := os.Open(htmlFile)
	if err != nil {
		return fmt.Errorf("failed to open page: %w", err)
	}
	defer f.Close()

	snap, err := capture.FromHTML(f, captureURL, opts)
	if err != nil {
		return err
	}
	stampSnapshot(snap, time.Now())
	log.Printf("[CAPTURE] Captured %q at %q (%d chars of description)", snap.Role, snap.Company, len(snap.JDText))

	if !captureSave {
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	cfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	resume, err := loadResume(captureResume, cfg.ResumeMaxBytes())
	if err != nil {
		return err
	}
	return persist(cmd, store, cfg, snap, resume, captureFlags)
}
