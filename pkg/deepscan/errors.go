// Package deepscan searches raw file contents for an identifier outside the
// formal dependency graph.
package deepscan

import "errors"

// Error definitions for deepscan package.
var (
	// ErrEmptyExtensions is reported as a warning when the extension allowlist is empty.
	ErrEmptyExtensions = errors.New("deep search extension allowlist is empty")
	// ErrEmptyIdentifier is returned when the identifier to search for is empty.
	ErrEmptyIdentifier = errors.New("identifier is empty")
	// ErrUnreadableItem wraps the read error of a skipped candidate.
	ErrUnreadableItem = errors.New("item is unreadable")
)
