// Package unused resolves the set of content items that nothing references directly.
package unused

import "github.com/lerenn/asset-cleaner/pkg/graph"

// Error definitions for unused package.
var (
	// ErrUnbuiltIndex is returned when resolution runs before any build.
	ErrUnbuiltIndex = graph.ErrUnbuiltIndex
)
