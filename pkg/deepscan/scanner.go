package deepscan

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/lerenn/asset-cleaner/pkg/catalog"
	"github.com/lerenn/asset-cleaner/pkg/fs"
	"github.com/lerenn/asset-cleaner/pkg/logger"
	"github.com/lerenn/asset-cleaner/pkg/progress"
)

// Stats describes the last scan.
type Stats struct {
	Candidates int   `yaml:"candidates"`
	Matched    int   `yaml:"matched"`
	Unreadable int   `yaml:"unreadable"`
	Workers    int   `yaml:"workers"`
	Warning    error `yaml:"-"`
}

// NewScannerParams contains the parameters for creating a Scanner.
type NewScannerParams struct {
	FS          fs.FS
	Logger      logger.Logger
	Progress    progress.Reporter
	ProjectRoot string
	Workers     int // 0 means runtime.NumCPU()
}

// Scanner runs bounded parallel full-text searches over catalog items.
type Scanner struct {
	fs          fs.FS
	logger      logger.Logger
	progress    progress.Reporter
	projectRoot string
	workers     int

	mu   sync.Mutex
	last Stats
}

// NewScanner creates a new Scanner.
func NewScanner(params NewScannerParams) *Scanner {
	l := params.Logger
	if l == nil {
		l = logger.NewNoopLogger()
	}
	workers := params.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Scanner{
		fs:          params.FS,
		logger:      l,
		progress:    progress.OrNoop(params.Progress),
		projectRoot: params.ProjectRoot,
		workers:     workers,
	}
}

// LastStats returns the statistics of the last completed scan.
func (s *Scanner) LastStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// ScanForIdentifier returns, sorted, the non-folder items whose extension is
// in the allowlist and whose raw content contains identifier. Unreadable
// files are skipped. A cancelled scan returns no result.
func (s *Scanner) ScanForIdentifier(
	ctx context.Context,
	identifier string,
	extensions []string,
	items []catalog.Item,
) ([]string, error) {
	if identifier == "" {
		return nil, ErrEmptyIdentifier
	}

	allow := normalizeExtensions(extensions)
	if len(allow) == 0 {
		s.logger.Logf("Warning: %v, deep search skipped", ErrEmptyExtensions)
		s.setLast(Stats{Workers: s.workers, Warning: ErrEmptyExtensions})
		return []string{}, nil
	}

	var candidates []catalog.Item
	for _, item := range items {
		if item.IsFolder {
			continue
		}
		if _, ok := allow[item.Ext()]; ok {
			candidates = append(candidates, item)
		}
	}

	found, unreadable, err := s.run(ctx, []byte(identifier), candidates)
	if err != nil {
		return nil, err
	}

	s.setLast(Stats{
		Candidates: len(candidates),
		Matched:    len(found),
		Unreadable: unreadable,
		Workers:    s.workers,
	})
	return found, nil
}

type outcome struct {
	path    string
	matched bool
}

// run fans candidates out to the worker pool and collects matches in a
// single goroutine.
func (s *Scanner) run(ctx context.Context, needle []byte, candidates []catalog.Item) ([]string, int, error) {
	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan catalog.Item)
	outcomes := make(chan outcome)
	var unreadable atomic.Int64

	g.Go(func() error {
		defer close(jobs)
		for _, item := range candidates {
			select {
			case jobs <- item:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < s.workers; i++ {
		g.Go(func() error {
			for item := range jobs {
				matched, err := s.contains(item, needle)
				if err != nil {
					unreadable.Add(1)
					s.logger.Logf("Warning: %v", err)
				}
				select {
				case outcomes <- outcome{path: item.Path, matched: matched}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	var found []string
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		seen := make(map[string]struct{})
		done := 0
		for o := range outcomes {
			done++
			if o.matched {
				if _, dup := seen[o.path]; !dup {
					seen[o.path] = struct{}{}
					found = append(found, o.path)
				}
			}
			s.progress.Report(progress.Event{
				Stage:   progress.StageDeepScan,
				Done:    done,
				Total:   len(candidates),
				Current: o.path,
			})
		}
	}()

	err := g.Wait()
	close(outcomes)
	<-collected

	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return nil, 0, err
	}

	sort.Strings(found)
	if found == nil {
		found = []string{}
	}
	return found, int(unreadable.Load()), nil
}

func (s *Scanner) contains(item catalog.Item, needle []byte) (bool, error) {
	content, err := s.fs.ReadFile(filepath.Join(s.projectRoot, filepath.FromSlash(item.Path)))
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrUnreadableItem, item.Path, err)
	}
	return bytes.Contains(content, needle), nil
}

func (s *Scanner) setLast(stats Stats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = stats
}

// normalizeExtensions lower-cases the allowlist and adds missing leading dots.
func normalizeExtensions(extensions []string) map[string]struct{} {
	out := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out[ext] = struct{}{}
	}
	return out
}
