package extractor

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lerenn/asset-cleaner/pkg/catalog"
)

// Cached memoizes the results of another extractor in a bounded LRU cache.
// The cache is purged by Prepare, so a cached value never outlives a build.
type Cached struct {
	next  Extractor
	cache *lru.Cache[string, []string]
}

// NewCached wraps next with an LRU cache holding up to size entries.
func NewCached(next Extractor, size int) (*Cached, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCacheSize, size)
	}
	cache, err := lru.New[string, []string](size)
	if err != nil {
		return nil, err
	}
	return &Cached{next: next, cache: cache}, nil
}

// GetDependencies returns the cached dependencies of path, calling the
// wrapped extractor on a miss. Errors are not cached.
func (c *Cached) GetDependencies(path string) ([]string, error) {
	if deps, ok := c.cache.Get(path); ok {
		return clone(deps), nil
	}

	deps, err := c.next.GetDependencies(path)
	if err != nil {
		return nil, err
	}
	c.cache.Add(path, clone(deps))
	return deps, nil
}

// Prepare purges the cache and prepares the wrapped extractor.
func (c *Cached) Prepare(ctx context.Context, items []catalog.Item) error {
	c.Purge()
	if p, ok := c.next.(Preparer); ok {
		return p.Prepare(ctx, items)
	}
	return nil
}

// IdentifierOf delegates to the wrapped extractor when it knows identifiers.
func (c *Cached) IdentifierOf(path string) (string, bool) {
	if id, ok := c.next.(Identifier); ok {
		return id.IdentifierOf(path)
	}
	return "", false
}

// Purge drops every cached entry.
func (c *Cached) Purge() {
	c.cache.Purge()
}

// Len returns the number of cached entries.
func (c *Cached) Len() int {
	return c.cache.Len()
}

func clone(deps []string) []string {
	if deps == nil {
		return nil
	}
	out := make([]string, len(deps))
	copy(out, deps)
	return out
}
