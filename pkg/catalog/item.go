package catalog

import (
	"path"
	"strings"
)

// Item is an immutable snapshot of one content entry taken at scan time.
// Path is relative to the project root and always uses forward slashes.
type Item struct {
	Path     string `yaml:"path"`
	Size     int64  `yaml:"size"`
	IsFolder bool   `yaml:"is_folder,omitempty"`
}

// Ext returns the lower-cased extension of the item, including the dot.
func (i Item) Ext() string {
	return strings.ToLower(path.Ext(i.Path))
}

// Name returns the last element of the item path.
func (i Item) Name() string {
	return path.Base(i.Path)
}

// ParentDir returns the directory containing p, or "" when p sits at the project root.
func ParentDir(p string) string {
	dir := path.Dir(p)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}
