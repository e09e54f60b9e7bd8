package assetcleaner

import (
	"time"

	"github.com/lerenn/asset-cleaner/pkg/asset-cleaner/consts"
	"github.com/lerenn/asset-cleaner/pkg/catalog"
	"github.com/lerenn/asset-cleaner/pkg/folders"
	"github.com/lerenn/asset-cleaner/pkg/unused"
)

// FindUnusedOpts contains optional parameters for FindUnused.
type FindUnusedOpts struct {
	// IgnorePatterns are added to the configured ignore patterns.
	IgnorePatterns []string
}

// UnusedReport is the unused set of one build with its folder aggregates.
type UnusedReport struct {
	BuildID string         `yaml:"build_id"`
	BuiltAt time.Time      `yaml:"built_at"`
	Items   []catalog.Item `yaml:"items"`
	Total   folders.Stats  `yaml:"total"`
	Folders *folders.Tree  `yaml:"-"`
}

// FindUnused lists the items of the last build that nothing references directly.
func (c *realAssetCleaner) FindUnused(opts ...FindUnusedOpts) (*UnusedReport, error) {
	var options FindUnusedOpts
	if len(opts) > 0 {
		options = opts[0]
	}

	params := map[string]interface{}{
		"ignorePatterns": options.IgnorePatterns,
	}

	return executeWithHooksAndReturn(c, consts.FindUnused, params,
		func(results map[string]interface{}) (*UnusedReport, error) {
			report, err := c.findUnused(options)
			if err != nil {
				return nil, err
			}
			results["count"] = report.Total.Count
			results["size"] = report.Total.Size
			return report, nil
		})
}

func (c *realAssetCleaner) findUnused(opts FindUnusedOpts) (*UnusedReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.session == nil || c.session.result == nil {
		return nil, ErrNotBuilt
	}
	s := c.session

	patterns := append(append([]string{}, s.cfg.IgnorePatterns...), opts.IgnorePatterns...)
	items, err := unused.FindUnused(s.result.Catalog.ListItems(), s.result.Index, s.classifier, patterns)
	if err != nil {
		return nil, err
	}

	tree := folders.Aggregate(items)
	c.VerbosePrint("Found %d unused items in build %s", len(items), s.result.ID)

	return &UnusedReport{
		BuildID: s.result.ID,
		BuiltAt: s.result.BuiltAt,
		Items:   items,
		Total:   tree.Total(),
		Folders: tree,
	}, nil
}
