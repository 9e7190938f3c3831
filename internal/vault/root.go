package vault

import (
	"context"
	"fmt"
	"os"
)

// Permission is the state of the read-write grant on a storage root.
type Permission string

const (
	// PermissionGranted means reads and writes are allowed.
	PermissionGranted Permission = "granted"
	// PermissionPrompt means the grant can be requested from the user.
	PermissionPrompt Permission = "prompt"
	// PermissionDenied means the grant was refused or cannot be obtained.
	PermissionDenied Permission = "denied"
)

// Root is a capability over a directory tree whose read-write grant can be
// revoked at any time. Implementations must not cache a granted state.
type Root interface {
	// Path is the directory records are written under.
	Path() string
	// QueryPermission reports the current grant without prompting.
	QueryPermission(ctx context.Context) (Permission, error)
	// RequestPermission asks for the grant, possibly prompting the user.
	RequestPermission(ctx context.Context) (Permission, error)
}

// GrantStore records the user's consent to write under a root.
type GrantStore interface {
	Granted(root string) (bool, error)
	SetGranted(root string, granted bool) error
}

// Prompter asks the user a yes/no question.
type Prompter interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// DirRoot is a Root backed by a local directory. The grant requires both the
// user's recorded consent and OS-level read/write access to the directory.
type DirRoot struct {
	path     string
	grants   GrantStore
	prompter Prompter
}

// NewDirRoot returns a DirRoot for path. A nil grants store means consent is
// implied; a nil prompter makes RequestPermission deny instead of prompting.
func NewDirRoot(path string, grants GrantStore, prompter Prompter) *DirRoot {
	return &DirRoot{path: path, grants: grants, prompter: prompter}
}

// Path returns the root directory.
func (r *DirRoot) Path() string {
	if r == nil {
		return ""
	}
	return r.path
}

// QueryPermission re-reads the recorded consent and re-checks directory access.
func (r *DirRoot) QueryPermission(_ context.Context) (Permission, error) {
	if r == nil {
		return PermissionDenied, errNilRoot
	}
	if r.grants != nil {
		granted, err := r.grants.Granted(r.path)
		if err != nil {
			return PermissionDenied, fmt.Errorf("failed to read grant: %w", err)
		}
		if !granted {
			return PermissionPrompt, nil
		}
	}
	if err := checkAccess(r.path); err != nil {
		return PermissionPrompt, nil
	}
	return PermissionGranted, nil
}

// RequestPermission prompts for consent and records it.
func (r *DirRoot) RequestPermission(ctx context.Context) (Permission, error) {
	if r == nil {
		return PermissionDenied, errNilRoot
	}
	if err := checkAccess(r.path); err != nil {
		return PermissionDenied, err
	}
	if r.grants == nil {
		return PermissionGranted, nil
	}
	if r.prompter == nil {
		return PermissionDenied, nil
	}

	ok, err := r.prompter.Confirm(ctx, fmt.Sprintf("Allow jobvault to read and write %s?", r.path))
	if err != nil {
		return PermissionDenied, fmt.Errorf("failed to prompt for permission: %w", err)
	}
	if !ok {
		return PermissionDenied, nil
	}
	if err := r.grants.SetGranted(r.path, true); err != nil {
		return PermissionDenied, fmt.Errorf("failed to record grant: %w", err)
	}
	return PermissionGranted, nil
}

var errNilRoot = &ConfigurationError{Message: "no storage root selected"}

func checkAccess(path string) error {
	if path == "" {
		return fmt.Errorf("storage root path is empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return accessRW(path)
}
