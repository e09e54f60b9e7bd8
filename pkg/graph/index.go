package graph

import "sort"

// Edge is a directed "referrer uses dependency directly" relationship.
type Edge struct {
	Referrer   string
	Dependency string
}

// ReferenceIndex maps a dependency path to the set of paths referencing it.
// The zero value and NewReferenceIndex are unbuilt; only BuildIndex and
// FromEdges return built indexes. An index is never updated after it is built.
type ReferenceIndex struct {
	refs  map[string]map[string]struct{}
	edges int
	built bool
}

// NewReferenceIndex creates an empty, unbuilt index.
func NewReferenceIndex() *ReferenceIndex {
	return &ReferenceIndex{refs: make(map[string]map[string]struct{})}
}

// FromEdges creates a built index holding the given edges.
func FromEdges(edges ...Edge) *ReferenceIndex {
	idx := NewReferenceIndex()
	for _, e := range edges {
		idx.add(e.Referrer, e.Dependency)
	}
	idx.built = true
	return idx
}

// add records referrer → dependency. Self edges and duplicates are dropped.
func (r *ReferenceIndex) add(referrer, dependency string) bool {
	if referrer == dependency {
		return false
	}
	set, ok := r.refs[dependency]
	if !ok {
		set = make(map[string]struct{})
		r.refs[dependency] = set
	}
	if _, dup := set[referrer]; dup {
		return false
	}
	set[referrer] = struct{}{}
	r.edges++
	return true
}

// Built reports whether the index was produced by a completed build.
func (r *ReferenceIndex) Built() bool {
	return r != nil && r.built
}

// Has reports whether path has at least one direct referrer.
func (r *ReferenceIndex) Has(path string) bool {
	if r == nil {
		return false
	}
	_, ok := r.refs[path]
	return ok
}

// Referrers returns the direct referrers of path, sorted.
func (r *ReferenceIndex) Referrers(path string) []string {
	if r == nil {
		return nil
	}
	return sortedKeys(r.refs[path])
}

// Dependencies returns every path that has at least one referrer, sorted.
func (r *ReferenceIndex) Dependencies() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.refs))
	for dep := range r.refs {
		out = append(out, dep)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of referenced paths.
func (r *ReferenceIndex) Len() int {
	if r == nil {
		return 0
	}
	return len(r.refs)
}

// EdgeCount returns the number of distinct edges.
func (r *ReferenceIndex) EdgeCount() int {
	if r == nil {
		return 0
	}
	return r.edges
}

// Equal reports whether both indexes hold the same edges, regardless of insertion order.
func (r *ReferenceIndex) Equal(other *ReferenceIndex) bool {
	if r.Len() != other.Len() || r.EdgeCount() != other.EdgeCount() {
		return false
	}
	for dep, set := range r.refs {
		otherSet, ok := other.refs[dep]
		if !ok || len(otherSet) != len(set) {
			return false
		}
		for referrer := range set {
			if _, ok := otherSet[referrer]; !ok {
				return false
			}
		}
	}
	return true
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
