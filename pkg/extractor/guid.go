package extractor

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/lerenn/asset-cleaner/pkg/catalog"
	"github.com/lerenn/asset-cleaner/pkg/fs"
	"github.com/lerenn/asset-cleaner/pkg/logger"
)

// binarySniffLen is how many leading bytes are inspected to detect binary content.
const binarySniffLen = 8000

var guidPattern = regexp.MustCompile(`guid:\s*([0-9a-fA-F]{32})`)

// metaFile is the part of a sidecar file the extractor cares about.
type metaFile struct {
	GUID string `yaml:"guid"`
}

// NewGUIDExtractorParams contains parameters for creating a GUIDExtractor.
type NewGUIDExtractorParams struct {
	FS          fs.FS
	Logger      logger.Logger
	ProjectRoot string
}

// GUIDExtractor resolves references written as "guid: <32 hex>" in
// text-serialized assets, using the GUIDs declared in ".meta" sidecars.
type GUIDExtractor struct {
	fs          fs.FS
	logger      logger.Logger
	projectRoot string

	mu     sync.RWMutex
	byGUID map[string]string
	byPath map[string]string
}

// NewGUIDExtractor creates a new GUIDExtractor with an empty GUID table.
func NewGUIDExtractor(params NewGUIDExtractorParams) *GUIDExtractor {
	l := params.Logger
	if l == nil {
		l = logger.NewNoopLogger()
	}
	return &GUIDExtractor{
		fs:          params.FS,
		logger:      l,
		projectRoot: params.ProjectRoot,
		byGUID:      make(map[string]string),
		byPath:      make(map[string]string),
	}
}

// Prepare rebuilds the GUID table from the sidecars of the given items.
// Items without a readable sidecar are skipped.
func (e *GUIDExtractor) Prepare(ctx context.Context, items []catalog.Item) error {
	byGUID := make(map[string]string, len(items))
	byPath := make(map[string]string, len(items))
	missing := 0

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}

		guid, err := e.readMetaGUID(item.Path)
		if err != nil {
			missing++
			e.logger.Logf("Warning: no GUID for %s: %v", item.Path, err)
			continue
		}

		if other, exists := byGUID[guid]; exists {
			e.logger.Logf("Warning: GUID %s of %s already used by %s", guid, item.Path, other)
			continue
		}
		byGUID[guid] = item.Path
		byPath[item.Path] = guid
	}

	e.mu.Lock()
	e.byGUID = byGUID
	e.byPath = byPath
	e.mu.Unlock()

	e.logger.Logf("Loaded %d GUIDs (%d items without sidecar)", len(byGUID), missing)
	return nil
}

// IdentifierOf returns the GUID of the item at path.
func (e *GUIDExtractor) IdentifierOf(path string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	guid, ok := e.byPath[path]
	return guid, ok
}

// GetDependencies returns the items referenced by GUID from the item at path,
// in order of first appearance. Unknown GUIDs are dropped.
func (e *GUIDExtractor) GetDependencies(path string) ([]string, error) {
	data, err := e.fs.ReadFile(e.osPath(path))
	if err != nil {
		if e.fs.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", catalog.ErrMissingItem, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if isBinary(data) {
		return nil, nil
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	seen := make(map[string]struct{})
	var deps []string
	for _, match := range guidPattern.FindAllSubmatch(data, -1) {
		guid := strings.ToLower(string(match[1]))
		dep, ok := e.byGUID[guid]
		if !ok {
			continue
		}
		if _, dup := seen[dep]; dup {
			continue
		}
		seen[dep] = struct{}{}
		deps = append(deps, dep)
	}

	return deps, nil
}

// readMetaGUID reads the GUID declared in the sidecar of path.
func (e *GUIDExtractor) readMetaGUID(path string) (string, error) {
	data, err := e.fs.ReadFile(e.osPath(path) + catalog.MetaExt)
	if err != nil {
		return "", err
	}
	return parseMetaGUID(data)
}

func (e *GUIDExtractor) osPath(path string) string {
	return filepath.Join(e.projectRoot, filepath.FromSlash(path))
}

// parseMetaGUID extracts the guid key of a sidecar. Sidecars that are not
// plain YAML fall back to a pattern match on the raw text.
func parseMetaGUID(data []byte) (string, error) {
	var meta metaFile
	if err := yaml.Unmarshal(data, &meta); err == nil && isGUID(meta.GUID) {
		return strings.ToLower(meta.GUID), nil
	}

	if match := guidPattern.FindSubmatch(data); match != nil {
		return strings.ToLower(string(match[1])), nil
	}

	return "", ErrMetaParse
}

func isGUID(s string) bool {
	if len(s) != 32 {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

// isBinary reports whether data looks like binary content.
func isBinary(data []byte) bool {
	if len(data) > binarySniffLen {
		data = data[:binarySniffLen]
	}
	return bytes.IndexByte(data, 0) >= 0
}
