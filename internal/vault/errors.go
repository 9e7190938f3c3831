// Package vault persists job snapshots as self-contained record directories
// under a user-granted storage root.
package vault

import "fmt"

// ConfigurationError means no usable storage root or save request was given.
// It is always raised before the root is touched.
type ConfigurationError struct {
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// PermissionError means the read-write grant on the root is missing, denied or revoked.
type PermissionError struct {
	Root    string
	Message string
	Cause   error
}

func (e *PermissionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("permission denied for %s: %s: %v", e.Root, e.Message, e.Cause)
	}
	return fmt.Sprintf("permission denied for %s: %s", e.Root, e.Message)
}

func (e *PermissionError) Unwrap() error {
	return e.Cause
}

// AllocationError means a record directory could not be named or created.
type AllocationError struct {
	Path    string
	Message string
	Cause   error
}

func (e *AllocationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("allocation error at %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("allocation error at %s: %s", e.Path, e.Message)
}

func (e *AllocationError) Unwrap() error {
	return e.Cause
}

// WriteError means one of the record artifacts could not be written.
// Artifacts written before the failure are left in place.
type WriteError struct {
	File    string
	Message string
	Cause   error
}

func (e *WriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("write error for %s: %s: %v", e.File, e.Message, e.Cause)
	}
	return fmt.Sprintf("write error for %s: %s", e.File, e.Message)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}
