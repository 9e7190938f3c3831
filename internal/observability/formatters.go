// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/jobvault/internal/config"
	"github.com/jonathan/jobvault/internal/labels"
	"github.com/jonathan/jobvault/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// jdPreviewLines is how many description lines the snapshot box shows
	jdPreviewLines = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if utf8.RuneCountInString(line) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSnapshot outputs a summary of the snapshot about to be saved.
func (p *Printer) PrintSnapshot(snap *types.Snapshot, resume *types.ResumeDescriptor) {
	if snap == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:       %s\n", snap.ID))
	sb.WriteString(fmt.Sprintf("Company:  %s\n", orDash(snap.Company)))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", orDash(snap.Role)))
	sb.WriteString(fmt.Sprintf("URL:      %s\n", snap.URL))
	if snap.ApplyKind != "" {
		sb.WriteString(fmt.Sprintf("Kind:     %s\n", snap.ApplyKind))
	}
	if resume != nil {
		sb.WriteString(fmt.Sprintf("Résumé:   %s (%s, %s)\n", resume.Name, orDash(resume.MimeType), formatSize(resume.SizeBytes)))
	}

	jd := strings.TrimSpace(snap.JDText)
	if jd != "" {
		sb.WriteString("\nJob description:\n")
		lines := strings.Split(jd, "\n")
		count := min(len(lines), jdPreviewLines)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  %s\n", lines[i]))
		}
		if len(lines) > jdPreviewLines {
			sb.WriteString(fmt.Sprintf("  ... and %d more lines\n", len(lines)-jdPreviewLines))
		}
	}

	p.printBox("SNAPSHOT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLabels outputs the resolved folder labels.
func (p *Printer) PrintLabels(l labels.Labels) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", l.Company))
	sb.WriteString(fmt.Sprintf("Role:     %s", l.Role))
	p.printBox("FOLDER LABELS", sb.String())
}

// PrintSaveResult outputs the outcome of a save.
func (p *Printer) PrintSaveResult(result types.SaveResult) {
	var sb strings.Builder
	if result.OK {
		sb.WriteString("Status:   saved\n")
		sb.WriteString(fmt.Sprintf("Folder:   %s\n", result.DirName))
		sb.WriteString(fmt.Sprintf("Path:     %s", result.Path))
	} else {
		sb.WriteString("Status:   failed\n")
		sb.WriteString(fmt.Sprintf("Error:    %s", result.Error))
	}
	p.printBox("SAVE RESULT", sb.String())
}

// PrintSettings outputs the effective settings.
func (p *Printer) PrintSettings(path string, cfg *config.Config, now time.Time) {
	if cfg == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:          %s\n", path))
	sb.WriteString(fmt.Sprintf("Folder:        %s\n", orDash(cfg.BaseDir)))
	sb.WriteString(fmt.Sprintf("Access:        %s\n", grantLabel(cfg.BaseDirGranted)))
	sb.WriteString(fmt.Sprintf("Capture EA:    %s\n", onOff(cfg.CaptureEA)))
	sb.WriteString(fmt.Sprintf("Capture EXT:   %s\n", onOff(cfg.CaptureExt)))

	switch {
	case cfg.DisableEAAlways:
		sb.WriteString("EA disabled:   always\n")
	case cfg.DisableEATodayUntil > now.UnixMilli():
		until := time.UnixMilli(cfg.DisableEATodayUntil).In(now.Location())
		sb.WriteString(fmt.Sprintf("EA disabled:   until %s\n", until.Format("2006-01-02 15:04")))
	}

	sb.WriteString(fmt.Sprintf("Résumé limit:  %d MB", cfg.ResumeMaxBytes()/(1024*1024)))
	p.printBox("SETTINGS", sb.String())
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func grantLabel(granted bool) string {
	if granted {
		return "granted"
	}
	return "not granted"
}

func formatSize(n int64) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
