package vault

import (
	"context"
	"errors"
	"fmt"
)

// EnsurePermission verifies the read-write grant on root, requesting it when
// it is not currently held. It touches nothing under the root.
func EnsurePermission(ctx context.Context, root Root) error {
	if root == nil {
		return &ConfigurationError{Message: "no storage root selected"}
	}

	state, err := root.QueryPermission(ctx)
	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return cfgErr
	}
	if err != nil {
		return &PermissionError{Root: root.Path(), Message: "failed to query permission", Cause: err}
	}
	if state == PermissionGranted {
		return nil
	}

	state, err = root.RequestPermission(ctx)
	if errors.As(err, &cfgErr) {
		return cfgErr
	}
	if err != nil {
		return &PermissionError{Root: root.Path(), Message: "failed to request permission", Cause: err}
	}
	if state != PermissionGranted {
		return &PermissionError{Root: root.Path(), Message: fmt.Sprintf("read-write access %s", state)}
	}
	return nil
}
