package unused

import (
	"sort"
	"strings"

	"github.com/lerenn/asset-cleaner/pkg/catalog"
	"github.com/lerenn/asset-cleaner/pkg/graph"
	"github.com/lerenn/asset-cleaner/pkg/roots"
)

// FindUnused returns the non-folder items that are neither roots, ignored,
// nor referenced by at least one other item in the index, sorted by path.
//
// Detection is one hop only: an item referenced exclusively by unused items
// is still considered used.
func FindUnused(
	items []catalog.Item,
	index *graph.ReferenceIndex,
	classifier *roots.Classifier,
	ignorePatterns []string,
) ([]catalog.Item, error) {
	if !index.Built() {
		return nil, ErrUnbuiltIndex
	}

	var out []catalog.Item
	for _, item := range items {
		if item.IsFolder {
			continue
		}
		if classifier != nil && classifier.IsRoot(item.Path) {
			continue
		}
		if IsIgnored(item.Path, ignorePatterns) {
			continue
		}
		if index.Has(item.Path) {
			continue
		}
		out = append(out, item)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out, nil
}

// IsIgnored reports whether any non-empty pattern is a substring of path.
func IsIgnored(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern != "" && strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}

// TotalSize sums the size of the given items.
func TotalSize(items []catalog.Item) int64 {
	var total int64
	for _, item := range items {
		total += item.Size
	}
	return total
}
