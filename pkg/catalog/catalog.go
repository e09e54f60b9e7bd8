package catalog

import (
	"sort"
)

// Catalog is the per-session snapshot of every item returned by a Store.
// It is immutable once built.
type Catalog struct {
	items  []Item
	byPath map[string]int
}

// New creates a catalog from the given items. Items are sorted by path and
// duplicated paths keep their first occurrence.
func New(items []Item) *Catalog {
	c := &Catalog{
		items:  make([]Item, 0, len(items)),
		byPath: make(map[string]int, len(items)),
	}

	for _, item := range items {
		if _, exists := c.byPath[item.Path]; exists {
			continue
		}
		c.byPath[item.Path] = -1
		c.items = append(c.items, item)
	}

	sort.Slice(c.items, func(i, j int) bool {
		return c.items[i].Path < c.items[j].Path
	})
	for i, item := range c.items {
		c.byPath[item.Path] = i
	}

	return c
}

// ListItems returns every item, folders included, in path order.
func (c *Catalog) ListItems() []Item {
	if c == nil {
		return nil
	}
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Files returns the non-folder items in path order.
func (c *Catalog) Files() []Item {
	return c.filter(false)
}

// Folders returns the folder items in path order.
func (c *Catalog) Folders() []Item {
	return c.filter(true)
}

// Get returns the item stored at path.
func (c *Catalog) Get(path string) (Item, bool) {
	if c == nil {
		return Item{}, false
	}
	i, ok := c.byPath[path]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Len returns the number of items, folders included.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

func (c *Catalog) filter(folders bool) []Item {
	if c == nil {
		return nil
	}
	var out []Item
	for _, item := range c.items {
		if item.IsFolder == folders {
			out = append(out, item)
		}
	}
	return out
}
