package vault

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/jobvault/internal/schemas"
	"github.com/jonathan/jobvault/internal/types"
)

const filePerm = 0o644

var extensionRE = regexp.MustCompile(`(?i)(\.[a-z0-9]+)$`)

// Writer writes the artifacts of one record into an allocated directory.
type Writer struct {
	validateMetadata func([]byte) error
}

// NewWriter returns a Writer that validates metadata.json against the
// embedded schema before writing it.
func NewWriter() *Writer {
	return &Writer{validateMetadata: schemas.ValidateMetadata}
}

// Write writes link.txt, JD.md, metadata.json and the optional résumé, in
// that order. The first failure stops the sequence; files already written
// stay on disk.
func (w *Writer) Write(dir *RecordDir, snap *types.Snapshot, resume *types.ResumeDescriptor, savedAt time.Time) error {
	if err := writeFile(dir.Path, types.LinkFile, func(out io.Writer) error {
		_, err := io.WriteString(out, snap.URL+"\n")
		return err
	}); err != nil {
		return err
	}

	if err := writeFile(dir.Path, types.JDFile, func(out io.Writer) error {
		_, err := io.WriteString(out, RenderJD(snap, dir.Date))
		return err
	}); err != nil {
		return err
	}

	metaJSON, err := w.Metadata(snap, resume, savedAt)
	if err != nil {
		return &WriteError{File: types.MetadataFile, Message: "invalid metadata", Cause: err}
	}
	if err := writeFile(dir.Path, types.MetadataFile, func(out io.Writer) error {
		_, err := out.Write(metaJSON)
		return err
	}); err != nil {
		return err
	}

	if resume == nil {
		return nil
	}
	return writeFile(dir.Path, ResumeFileName(resume.Name), func(out io.Writer) error {
		_, err := out.Write(resume.Content)
		return err
	})
}

// Metadata renders metadata.json for a record saved at savedAt and checks it
// against the schema.
func (w *Writer) Metadata(snap *types.Snapshot, resume *types.ResumeDescriptor, savedAt time.Time) ([]byte, error) {
	meta := types.NewRecordMetadata(snap, resume, types.Millis(savedAt))
	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if w.validateMetadata != nil {
		if err := w.validateMetadata(metaJSON); err != nil {
			return nil, fmt.Errorf("metadata failed schema validation: %w", err)
		}
	}
	return metaJSON, nil
}

// RenderJD renders the JD.md document of a snapshot filed on ymd.
func RenderJD(snap *types.Snapshot, ymd string) string {
	role := snap.Role
	if role == "" {
		role = "Untitled"
	}
	company := snap.Company
	if company == "" {
		company = "Unknown"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n", role))
	sb.WriteString(fmt.Sprintf("**Company:** %s\n", company))
	sb.WriteString(fmt.Sprintf("**Date:** %s\n", ymd))
	sb.WriteString(fmt.Sprintf("**URL:** %s\n", snap.URL))
	sb.WriteString("\n")
	sb.WriteString(strings.TrimSpace(snap.JDText))
	sb.WriteString("\n")
	return sb.String()
}

// ResumeFileName returns "resume" plus the trailing extension of name, or
// "resume.bin" when name has none.
func ResumeFileName(name string) string {
	ext := extensionRE.FindString(name)
	if ext == "" {
		ext = ".bin"
	}
	return types.ResumeStem + ext
}

// writeFile creates dir/name exclusively and hands a buffered writer to fill.
// The file is closed on every path; a close or flush failure is reported.
func writeFile(dir, name string, fill func(io.Writer) error) (err error) {
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return &WriteError{File: name, Message: "failed to create file", Cause: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &WriteError{File: name, Message: "failed to close file", Cause: cerr}
		}
	}()

	bw := bufio.NewWriter(f)
	if err := fill(bw); err != nil {
		return &WriteError{File: name, Message: "failed to write file", Cause: err}
	}
	if err := bw.Flush(); err != nil {
		return &WriteError{File: name, Message: "failed to flush file", Cause: err}
	}
	return nil
}
