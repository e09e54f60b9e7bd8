// Package refs answers "who references this item" point queries.
package refs

import (
	"errors"

	"github.com/lerenn/asset-cleaner/pkg/graph"
)

// Error definitions for refs package.
var (
	// ErrEmptyTarget is returned when no target path is given.
	ErrEmptyTarget = errors.New("target path is empty")
	// ErrUnbuiltIndex is reported when an index lookup is requested before any build.
	ErrUnbuiltIndex = graph.ErrUnbuiltIndex
)
