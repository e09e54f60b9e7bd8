package refs

import (
	"context"

	"github.com/lerenn/asset-cleaner/pkg/catalog"
	"github.com/lerenn/asset-cleaner/pkg/extractor"
	"github.com/lerenn/asset-cleaner/pkg/graph"
	"github.com/lerenn/asset-cleaner/pkg/logger"
	"github.com/lerenn/asset-cleaner/pkg/progress"
)

// Result is the outcome of a point query.
type Result struct {
	Target    string   `yaml:"target"`
	Referrers []string `yaml:"referrers"`
	// FellBack is set when the index was requested but unbuilt, so the slow path ran.
	FellBack bool `yaml:"fell_back,omitempty"`
	// Scanned is the number of items the slow path asked the extractor about.
	Scanned int `yaml:"scanned,omitempty"`
	// Failed is the number of items whose extraction failed during the slow path.
	Failed int `yaml:"failed,omitempty"`
}

// NewFinderParams contains the parameters for creating a Finder.
type NewFinderParams struct {
	Items     []catalog.Item
	Index     *graph.ReferenceIndex
	Extractor extractor.Extractor
	Logger    logger.Logger
	Progress  progress.Reporter
	BatchSize int
}

// Finder answers point queries from the reference index or by asking the
// extractor about every item.
type Finder struct {
	items     []catalog.Item
	index     *graph.ReferenceIndex
	extractor extractor.Extractor
	logger    logger.Logger
	progress  progress.Reporter
	batchSize int
}

// NewFinder creates a new Finder.
func NewFinder(params NewFinderParams) *Finder {
	l := params.Logger
	if l == nil {
		l = logger.NewNoopLogger()
	}
	batch := params.BatchSize
	if batch <= 0 {
		batch = graph.DefaultBatchSize
	}
	return &Finder{
		items:     params.Items,
		index:     params.Index,
		extractor: params.Extractor,
		logger:    l,
		progress:  progress.OrNoop(params.Progress),
		batchSize: batch,
	}
}

// FindReferrers returns the items that directly reference target.
//
// With useIndex the answer reflects the last build, even if the filesystem
// changed since. An unbuilt index falls back to the slow path.
func (f *Finder) FindReferrers(ctx context.Context, target string, useIndex bool) (Result, error) {
	if target == "" {
		return Result{}, ErrEmptyTarget
	}

	if useIndex {
		if f.index.Built() {
			return Result{Target: target, Referrers: f.index.Referrers(target)}, nil
		}
		f.logger.Logf("Warning: %v, scanning every item for %s", ErrUnbuiltIndex, target)
		res, err := f.scan(ctx, target)
		res.FellBack = true
		return res, err
	}

	return f.scan(ctx, target)
}

// scan asks the extractor about every non-folder item except target.
func (f *Finder) scan(ctx context.Context, target string) (Result, error) {
	res := Result{Target: target}

	candidates := make([]catalog.Item, 0, len(f.items))
	for _, item := range f.items {
		if !item.IsFolder && item.Path != target {
			candidates = append(candidates, item)
		}
	}

	for i, item := range candidates {
		if i%f.batchSize == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}

		res.Scanned++
		deps, err := f.extractor.GetDependencies(item.Path)
		if err != nil {
			res.Failed++
			f.logger.Logf("Warning: skipping %s: %v", item.Path, err)
		}
		for _, dep := range deps {
			if dep == target {
				res.Referrers = append(res.Referrers, item.Path)
				break
			}
		}

		if done := i + 1; done%f.batchSize == 0 || done == len(candidates) {
			f.progress.Report(progress.Event{
				Stage:   progress.StageReferrers,
				Done:    done,
				Total:   len(candidates),
				Current: item.Path,
			})
		}
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return res, nil
}
