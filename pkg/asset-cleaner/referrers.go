package assetcleaner

import (
	"context"
	"path"

	"github.com/lerenn/asset-cleaner/pkg/asset-cleaner/consts"
	"github.com/lerenn/asset-cleaner/pkg/extractor"
	"github.com/lerenn/asset-cleaner/pkg/graph"
	"github.com/lerenn/asset-cleaner/pkg/refs"
)

// FindReferrersOpts contains optional parameters for FindReferrers.
type FindReferrersOpts struct {
	// NoIndex forces the slow path even when a build is available.
	NoIndex bool
	// Deep also scans raw file content for the target identifier.
	Deep bool
	// Extensions overrides the configured deep search allowlist.
	Extensions []string
}

// ReferrersReport is the outcome of a point query.
type ReferrersReport struct {
	refs.Result `yaml:",inline"`
	// Identifier is the needle used by the deep scan.
	Identifier string `yaml:"identifier,omitempty"`
	// Deep lists the items whose raw content holds Identifier, target excluded.
	Deep        []string `yaml:"deep,omitempty"`
	DeepWarning string   `yaml:"deep_warning,omitempty"`
}

// FindReferrers lists the items referencing target directly.
//
// Without a build, the query enumerates the project and scans every item.
func (c *realAssetCleaner) FindReferrers(
	ctx context.Context, target string, opts ...FindReferrersOpts) (*ReferrersReport, error) {
	var options FindReferrersOpts
	if len(opts) > 0 {
		options = opts[0]
	}

	target = normalizeTarget(target)
	params := map[string]interface{}{
		"target":     target,
		"noIndex":    options.NoIndex,
		"deep":       options.Deep,
		"extensions": options.Extensions,
	}

	return executeWithHooksAndReturn(c, consts.FindReferrers, params,
		func(results map[string]interface{}) (*ReferrersReport, error) {
			report, err := c.findReferrers(ctx, target, options)
			if err != nil {
				return nil, err
			}
			results["referrers"] = len(report.Referrers)
			results["fellBack"] = report.FellBack
			results["deep"] = len(report.Deep)
			return report, nil
		})
}

func (c *realAssetCleaner) findReferrers(
	ctx context.Context, target string, opts FindReferrersOpts) (*ReferrersReport, error) {
	if target == "" {
		return nil, ErrTargetEmpty
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	s, items, err := c.currentSession(ctx, true)
	if err != nil {
		return nil, err
	}

	var index *graph.ReferenceIndex
	if s.result != nil {
		index = s.result.Index
	}

	finder := refs.NewFinder(refs.NewFinderParams{
		Items:     items,
		Index:     index,
		Extractor: s.queryExtractor(),
		Logger:    c.deps.Logger,
		Progress:  c.deps.Progress,
		BatchSize: s.cfg.ProgressBatch,
	})
	result, err := finder.FindReferrers(ctx, target, !opts.NoIndex)
	if err != nil {
		return nil, err
	}
	report := &ReferrersReport{Result: result}

	if !opts.Deep && !s.cfg.DeepSearch.Enabled {
		return report, nil
	}

	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = s.cfg.DeepSearch.Extensions
	}
	report.Identifier = identifierOf(s.queryExtractor(), target)

	hits, err := s.scanner.ScanForIdentifier(ctx, report.Identifier, extensions, items)
	if err != nil {
		return nil, err
	}
	if warning := s.scanner.LastStats().Warning; warning != nil {
		report.DeepWarning = warning.Error()
	}

	report.Deep = make([]string, 0, len(hits))
	for _, hit := range hits {
		if hit != target {
			report.Deep = append(report.Deep, hit)
		}
	}
	return report, nil
}

// identifierOf returns the stable identifier of target, or its file name.
func identifierOf(ext extractor.Extractor, target string) string {
	if id, ok := ext.(extractor.Identifier); ok {
		if guid, found := id.IdentifierOf(target); found {
			return guid
		}
	}
	return path.Base(target)
}
