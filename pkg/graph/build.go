package graph

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/lerenn/asset-cleaner/pkg/catalog"
	"github.com/lerenn/asset-cleaner/pkg/extractor"
	"github.com/lerenn/asset-cleaner/pkg/logger"
	"github.com/lerenn/asset-cleaner/pkg/progress"
)

// DefaultBatchSize is the number of items between two progress/cancellation checkpoints.
const DefaultBatchSize = 200

// BuildOptions configures a graph build.
type BuildOptions struct {
	BatchSize int
	Progress  progress.Reporter
	Logger    logger.Logger
	Clock     func() time.Time
}

func (o BuildOptions) withDefaults() BuildOptions {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	o.Progress = progress.OrNoop(o.Progress)
	if o.Logger == nil {
		o.Logger = logger.NewNoopLogger()
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}

// BuildStats summarizes one build.
type BuildStats struct {
	Items     int           `yaml:"items"`      // non-folder items visited
	Edges     int           `yaml:"edges"`      // distinct edges recorded
	SelfEdges int           `yaml:"self_edges"` // self references dropped
	Failed    int           `yaml:"failed"`     // items whose extraction failed
	Missing   int           `yaml:"missing"`    // failed items that no longer exist
	Duration  time.Duration `yaml:"duration"`
}

// BuildResult is the snapshot produced by a full build. It is replaced
// wholesale by the next build and never reflects later filesystem changes.
type BuildResult struct {
	ID      string
	BuiltAt time.Time
	Catalog *catalog.Catalog
	Index   *ReferenceIndex
	Stats   BuildStats
}

// Age returns how long ago the result was built.
func (r *BuildResult) Age(now time.Time) time.Duration {
	return now.Sub(r.BuiltAt)
}

// Build enumerates the store, prepares the extractor and builds the reference index.
func Build(ctx context.Context, store catalog.Store, ext extractor.Extractor, opts BuildOptions) (*BuildResult, error) {
	opts = opts.withDefaults()
	start := opts.Clock()

	items, err := store.Enumerate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate content: %w", err)
	}
	cat := catalog.New(items)
	opts.Logger.Logf("Catalog holds %d items", cat.Len())

	if p, ok := ext.(extractor.Preparer); ok {
		if err := p.Prepare(ctx, cat.ListItems()); err != nil {
			return nil, fmt.Errorf("failed to prepare extractor: %w", err)
		}
	}

	idx, stats, err := BuildIndex(ctx, cat.ListItems(), ext, opts)
	if err != nil {
		return nil, err
	}
	stats.Duration = opts.Clock().Sub(start)

	return &BuildResult{
		ID:      ulid.Make().String(),
		BuiltAt: start,
		Catalog: cat,
		Index:   idx,
		Stats:   stats,
	}, nil
}

// BuildIndex calls the extractor once per non-folder item and records every
// returned dependency in a fresh index. Per-item failures are counted and
// logged; cancellation is checked every BatchSize items and discards the
// partial index.
func BuildIndex(
	ctx context.Context,
	items []catalog.Item,
	ext extractor.Extractor,
	opts BuildOptions,
) (*ReferenceIndex, BuildStats, error) {
	opts = opts.withDefaults()

	files := make([]catalog.Item, 0, len(items))
	for _, item := range items {
		if !item.IsFolder {
			files = append(files, item)
		}
	}

	idx := NewReferenceIndex()
	stats := BuildStats{Items: len(files)}

	for i, item := range files {
		if i%opts.BatchSize == 0 {
			if err := ctx.Err(); err != nil {
				return nil, BuildStats{}, err
			}
		}

		deps, err := ext.GetDependencies(item.Path)
		if err != nil {
			stats.Failed++
			if errors.Is(err, catalog.ErrMissingItem) {
				stats.Missing++
			}
			opts.Logger.Logf("Warning: skipping dependencies of %s: %v", item.Path, err)
		}

		for _, dep := range deps {
			if dep == item.Path {
				stats.SelfEdges++
				continue
			}
			if idx.add(item.Path, dep) {
				stats.Edges++
			}
		}

		if done := i + 1; done%opts.BatchSize == 0 || done == len(files) {
			opts.Progress.Report(progress.Event{
				Stage:   progress.StageBuild,
				Done:    done,
				Total:   len(files),
				Current: item.Path,
			})
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, BuildStats{}, err
	}

	idx.built = true
	opts.Logger.Logf("Indexed %d edges over %d items (%d failed)", stats.Edges, stats.Items, stats.Failed)
	return idx, stats, nil
}
