package fs

import (
	iofs "io/fs"
	"path/filepath"
)

// WalkDir walks the file tree rooted at root in lexical order.
func (f *realFS) WalkDir(root string, fn iofs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}
