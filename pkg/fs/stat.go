package fs

import "os"

// Stat returns the file info for the given path, following symlinks.
func (f *realFS) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}
