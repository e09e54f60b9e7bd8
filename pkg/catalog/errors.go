// Package catalog provides the item snapshot and content store error definitions.
package catalog

import "errors"

// Error definitions for catalog package.
var (
	// ErrMissingItem is returned when a path no longer exists in the content store.
	ErrMissingItem = errors.New("item no longer exists")

	// ErrContentDirNotFound is returned when the managed content directory is absent.
	ErrContentDirNotFound = errors.New("content directory not found")
)
