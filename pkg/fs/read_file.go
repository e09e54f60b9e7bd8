package fs

import "os"

// ReadFile reads the whole content of a file into memory.
func (f *realFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
