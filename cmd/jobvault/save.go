package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobvault/internal/capture"
	"github.com/jonathan/jobvault/internal/config"
	"github.com/jonathan/jobvault/internal/labels"
	"github.com/jonathan/jobvault/internal/observability"
	"github.com/jonathan/jobvault/internal/types"
	"github.com/jonathan/jobvault/internal/vault"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a job application record",
	Long: "Build a snapshot from flags or a snapshot JSON file, attach an optional résumé and write the record " +
		"under the configured folder. Prints the save result as JSON.",
	Args: cobra.NoArgs,
	RunE: runSave,
}

var (
	snapshotFile string
	company      string
	role         string
	jobURL       string
	pageTitle    string
	jdFile       string
	jdSource     string
	applyKind    string
	resumePath   string
)

// persistFlags are shared by every command that can write a record.
type persistFlags struct {
	baseDir string
	yes     bool
	verbose bool
}

var saveFlags persistFlags

func init() {
	saveCmd.Flags().StringVarP(&snapshotFile, "snapshot", "s", "", "Snapshot JSON file; other flags override its fields")
	saveCmd.Flags().StringVarP(&company, "company", "c", "", "Company name")
	saveCmd.Flags().StringVarP(&role, "role", "r", "", "Role title")
	saveCmd.Flags().StringVarP(&jobURL, "url", "u", "", "Job posting URL")
	saveCmd.Flags().StringVar(&pageTitle, "title", "", "Page title, used when the role is missing")
	saveCmd.Flags().StringVarP(&jdFile, "jd-file", "j", "", "File holding the job description text ('-' for stdin)")
	saveCmd.Flags().StringVar(&jdSource, "jd-source", "", "Where the description was captured (inline or toolbar)")
	saveCmd.Flags().StringVarP(&applyKind, "apply-kind", "k", "", "How the application started (EA, EXT or MANUAL)")
	saveCmd.Flags().StringVar(&resumePath, "resume", "", "Résumé file to store with the record")
	addPersistFlags(saveCmd, &saveFlags)

	rootCmd.AddCommand(saveCmd)
}

func addPersistFlags(cmd *cobra.Command, f *persistFlags) {
	cmd.Flags().StringVarP(&f.baseDir, "base-dir", "d", "", "Folder to save under (default: the configured folder)")
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, "Grant folder access without prompting")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print the snapshot and result summaries")
}

func runSave(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	cfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	snap, err := buildSnapshot(cmd.InOrStdin())
	if err != nil {
		return err
	}

	if err := capture.Allow(cfg, snap.ApplyKind, time.Now()); err != nil {
		log.Printf("[CAPTURE] Skipped %s application: %v", snap.ApplyKind, err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Skipped: %v\n", err)
		return nil
	}

	resume, err := loadResume(resumePath, cfg.ResumeMaxBytes())
	if err != nil {
		return err
	}

	return persist(cmd, store, cfg, snap, resume, saveFlags)
}

func buildSnapshot(stdin io.Reader) (*types.Snapshot, error) {
	snap := &types.Snapshot{}
	if snapshotFile != "" {
		data, err := os.ReadFile(snapshotFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot file: %w", err)
		}
		if err := json.Unmarshal(data, snap); err != nil {
			return nil, fmt.Errorf("failed to parse snapshot JSON: %w", err)
		}
	}

	if company != "" {
		snap.Company = company
	}
	if role != "" {
		snap.Role = role
	}
	if jobURL != "" {
		snap.URL = jobURL
	}
	if pageTitle != "" {
		snap.Title = pageTitle
	}
	if jdSource != "" {
		snap.JDSource = types.JDSource(jdSource)
	}
	if applyKind != "" {
		snap.ApplyKind = types.ApplyKind(applyKind)
	}

	switch jdFile {
	case "":
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read job description from stdin: %w", err)
		}
		snap.JDText = string(data)
	default:
		data, err := os.ReadFile(jdFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read job description: %w", err)
		}
		snap.JDText = string(data)
	}

	return snap, nil
}

// stampSnapshot fills the identifier and creation time when missing.
func stampSnapshot(snap *types.Snapshot, now time.Time) {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.CreatedAt == 0 {
		snap.CreatedAt = types.Millis(now)
	}
}

// overrideGrants holds consent to a --base-dir override for a single run.
// The configured folder and its recorded grant are left untouched.
type overrideGrants struct {
	granted bool
}

func (g *overrideGrants) Granted(string) (bool, error) {
	return g.granted, nil
}

func (g *overrideGrants) SetGranted(_ string, granted bool) error {
	g.granted = granted
	return nil
}

// persist validates the request, runs the engine and prints the result.
// A failed save is returned as an error after the result is printed.
func persist(cmd *cobra.Command, store *config.Store, cfg *config.Config, snap *types.Snapshot, resume *types.ResumeDescriptor, f persistFlags) error {
	stampSnapshot(snap, time.Now())

	req := &types.SaveRequest{Snapshot: *snap, Resume: resume}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid save request: %w", err)
	}

	var root vault.Root
	baseDir := f.baseDir
	if baseDir == "" {
		baseDir = cfg.BaseDir
	}
	if baseDir != "" {
		abs, err := filepath.Abs(baseDir)
		if err != nil {
			return fmt.Errorf("failed to resolve folder: %w", err)
		}
		var prompter vault.Prompter = newTerminalPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
		if f.yes {
			prompter = yesPrompter{}
		}
		var grants vault.GrantStore = store
		if !samePath(abs, cfg.BaseDir) {
			grants = &overrideGrants{}
		}
		root = vault.NewDirRoot(abs, grants, prompter)
	}

	// Fix the untitled suffix so the printed labels match the saved folder
	suffix := labels.RandomSuffix()
	resolver := labels.NewResolver(func() string { return suffix })

	var printer *observability.Printer
	if f.verbose {
		printer = observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintSnapshot(&req.Snapshot, resume)
		printer.PrintLabels(resolver.Resolve(labels.Context{
			Company: snap.Company,
			Role:    snap.Role,
			URL:     snap.URL,
			Title:   snap.Title,
		}))
	}

	engine := vault.NewEngine(vault.WithResolver(resolver))
	result := engine.Save(cmd.Context(), root, req)

	if printer != nil {
		printer.PrintSaveResult(result)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	if !result.OK {
		return fmt.Errorf("save failed: %s", result.Error)
	}
	return nil
}
