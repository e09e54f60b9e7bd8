// Package folders rolls unused item counts and sizes up the directory tree.
package folders

import (
	"sort"
	"strings"

	"github.com/lerenn/asset-cleaner/pkg/catalog"
)

// Stats is the aggregate of every unused item anywhere beneath a directory.
type Stats struct {
	Count int   `yaml:"count"`
	Size  int64 `yaml:"size"`
}

func (s *Stats) add(size int64) {
	s.Count++
	s.Size += size
}

type node struct {
	name     string
	path     string
	stats    Stats
	children map[string]*node
}

func (n *node) child(name string) *node {
	if n.children == nil {
		n.children = make(map[string]*node)
	}
	c, ok := n.children[name]
	if !ok {
		p := name
		if n.path != "" {
			p = n.path + "/" + name
		}
		c = &node{name: name, path: p}
		n.children[name] = c
	}
	return c
}

func (n *node) sortedChildren() []*node {
	out := make([]*node, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].name < out[j].name
	})
	return out
}

// Tree is a path segment trie of folder aggregates. The root node is the
// project root sentinel and is never reported as a folder.
type Tree struct {
	root node
}

// Aggregate builds the folder tree of the given unused items. Folder items
// in the input are ignored.
func Aggregate(items []catalog.Item) *Tree {
	t := &Tree{}
	for _, item := range items {
		if item.IsFolder {
			continue
		}
		t.root.stats.add(item.Size)

		dir := catalog.ParentDir(item.Path)
		if dir == "" {
			continue
		}
		n := &t.root
		for _, segment := range strings.Split(dir, "/") {
			n = n.child(segment)
			n.stats.add(item.Size)
		}
	}
	return t
}

// Get returns the aggregate of dir.
func (t *Tree) Get(dir string) (Stats, bool) {
	if t == nil || dir == "" {
		return Stats{}, false
	}
	n := &t.root
	for _, segment := range strings.Split(strings.Trim(dir, "/"), "/") {
		c, ok := n.children[segment]
		if !ok {
			return Stats{}, false
		}
		n = c
	}
	return n.stats, true
}

// Total returns the aggregate of every item in the tree, including items
// sitting directly at the project root.
func (t *Tree) Total() Stats {
	if t == nil {
		return Stats{}
	}
	return t.root.stats
}

// Walk visits every folder depth first, parents before children, siblings
// in name order. depth is 0 for top level folders. Returning false from fn
// skips the folder's children.
func (t *Tree) Walk(fn func(dir string, depth int, stats Stats) bool) {
	if t == nil {
		return
	}
	var walk func(n *node, depth int)
	walk = func(n *node, depth int) {
		for _, c := range n.sortedChildren() {
			if fn(c.path, depth, c.stats) {
				walk(c, depth+1)
			}
		}
	}
	walk(&t.root, 0)
}

// Folders returns the aggregates as a flat map keyed by directory path.
func (t *Tree) Folders() map[string]Stats {
	out := make(map[string]Stats)
	t.Walk(func(dir string, _ int, stats Stats) bool {
		out[dir] = stats
		return true
	})
	return out
}
