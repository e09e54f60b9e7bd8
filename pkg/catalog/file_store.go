package catalog

import (
	"context"
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"strings"

	"github.com/lerenn/asset-cleaner/pkg/fs"
	"github.com/lerenn/asset-cleaner/pkg/logger"
)

// MetaExt is the extension of the sidecar file paired with every content item.
const MetaExt = ".meta"

// NewFileStoreParams contains parameters for creating a filesystem backed Store.
type NewFileStoreParams struct {
	FS          fs.FS
	Logger      logger.Logger
	ProjectRoot string // absolute or working-directory relative project path
	ContentDir  string // managed directory, relative to ProjectRoot
}

type fileStore struct {
	fs          fs.FS
	logger      logger.Logger
	projectRoot string
	contentDir  string
}

// NewFileStore creates a Store walking <ProjectRoot>/<ContentDir>.
func NewFileStore(params NewFileStoreParams) Store {
	l := params.Logger
	if l == nil {
		l = logger.NewNoopLogger()
	}
	return &fileStore{
		fs:          params.FS,
		logger:      l,
		projectRoot: params.ProjectRoot,
		contentDir:  params.ContentDir,
	}
}

// Enumerate walks the content directory. Sidecars, hidden entries and entries
// ending with "~" are skipped. Entries that vanish during the walk are logged
// and skipped.
func (s *fileStore) Enumerate(ctx context.Context) ([]Item, error) {
	root := filepath.Join(s.projectRoot, filepath.FromSlash(s.contentDir))

	exists, err := s.fs.Exists(root)
	if err != nil {
		return nil, fmt.Errorf("failed to check content directory: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrContentDirNotFound, root)
	}

	var items []Item
	skipped := 0
	err = s.fs.WalkDir(root, func(path string, d iofs.DirEntry, walkErr error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			skipped++
			s.logger.Logf("Warning: skipping %s: %v", path, walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path != root && isExcludedName(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := s.relative(path)
		if err != nil {
			return err
		}

		if d.IsDir() {
			items = append(items, Item{Path: rel, IsFolder: true})
			return nil
		}

		info, err := d.Info()
		if err != nil {
			skipped++
			s.logger.Logf("Warning: skipping %s: %v", rel, fmt.Errorf("%w: %w", ErrMissingItem, err))
			return nil
		}
		items = append(items, Item{Path: rel, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %s: %w", root, err)
	}

	if skipped > 0 {
		s.logger.Logf("Enumerated %d items, skipped %d unreadable entries", len(items), skipped)
	}

	return items, nil
}

// relative converts an OS path into a project relative slash path.
func (s *fileStore) relative(path string) (string, error) {
	rel, err := filepath.Rel(s.projectRoot, path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s against project root: %w", path, err)
	}
	return filepath.ToSlash(rel), nil
}

// isExcludedName reports whether an entry is ignored by the content pipeline.
func isExcludedName(name string) bool {
	return strings.HasPrefix(name, ".") ||
		strings.HasSuffix(name, "~") ||
		strings.HasSuffix(name, MetaExt)
}
