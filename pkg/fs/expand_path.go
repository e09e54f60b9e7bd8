package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands a leading ~ to the user's home directory and cleans the result.
func (f *realFS) ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		if path == "" {
			return "", nil
		}
		return filepath.Clean(path), nil
	}

	homeDir, err := f.GetHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHomeDir, err)
	}

	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}

// GetHomeDir returns the user's home directory path.
func (f *realFS) GetHomeDir() (string, error) {
	return os.UserHomeDir()
}
