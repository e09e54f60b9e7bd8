// Package fs provides file system operations and error definitions.
package fs

import "errors"

// Error definitions for fs package.
var (
	// Path resolution errors.
	ErrHomeDir = errors.New("failed to determine home directory")
)
