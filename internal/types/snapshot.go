// Package types provides type definitions for job snapshots and saved records.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// ApplyKind identifies how the application was started.
type ApplyKind string

const (
	// ApplyEasy is an in-site "Easy Apply" flow.
	ApplyEasy ApplyKind = "EA"
	// ApplyExternal is an application continued on an external site.
	ApplyExternal ApplyKind = "EXT"
	// ApplyManual is a capture triggered by the user from the toolbar.
	ApplyManual ApplyKind = "MANUAL"
)

// JDSource identifies where the job-description text was captured.
type JDSource string

const (
	// JDSourceInline is text captured from the page panel.
	JDSourceInline JDSource = "inline"
	// JDSourceToolbar is text captured through the toolbar action.
	JDSourceToolbar JDSource = "toolbar"
)

// Snapshot is the in-memory description of one application event.
// It is consumed by exactly one save.
type Snapshot struct {
	ID        string    `json:"id" validate:"required"`
	ApplyKind ApplyKind `json:"applyKind,omitempty" validate:"omitempty,oneof=EA EXT MANUAL"`
	URL       string    `json:"url" validate:"required"`
	Title     string    `json:"title,omitempty"`
	Role      string    `json:"role,omitempty"`
	Company   string    `json:"company,omitempty"`
	JDText    string    `json:"jdText,omitempty"`
	JDSource  JDSource  `json:"jdSource,omitempty" validate:"omitempty,oneof=inline toolbar"`
	CreatedAt int64     `json:"createdAt" validate:"gte=0"` // Unix milliseconds
}

// ResumeDescriptor is a résumé attached to a save, with its content fully loaded.
type ResumeDescriptor struct {
	Name      string `json:"name"` // may be empty; the stored file is then resume.bin
	MimeType  string `json:"type"`
	SizeBytes int64  `json:"size" validate:"gte=0"`
	Content   []byte `json:"-"`
}

// SaveRequest is the input of one save.
type SaveRequest struct {
	Snapshot Snapshot          `json:"snapshot"`
	Resume   *ResumeDescriptor `json:"resume" validate:"omitempty"`
}

// SaveResult is the structured outcome of a save.
type SaveResult struct {
	OK      bool   `json:"ok"`
	DirName string `json:"dirName,omitempty"`
	Path    string `json:"path,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Validate validates the SaveRequest using the validator.
func (r *SaveRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the Snapshot using the validator.
func (s *Snapshot) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}

// Millis converts t to Unix milliseconds.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}
