// Package graph builds the reverse reference index over the content catalog.
package graph

import "errors"

// Error definitions for graph package.
var (
	// ErrUnbuiltIndex is returned when a query runs against an index that was never built.
	ErrUnbuiltIndex = errors.New("reference index has not been built")
)
