package assetcleaner

import (
	"context"

	"github.com/lerenn/asset-cleaner/pkg/asset-cleaner/consts"
	"github.com/lerenn/asset-cleaner/pkg/graph"
)

// Build enumerates the project and replaces the session with a fresh reference index.
// A failed or cancelled build keeps the previous session untouched.
func (c *realAssetCleaner) Build(ctx context.Context) (*graph.BuildResult, error) {
	return executeWithHooksAndReturn(c, consts.Build, map[string]interface{}{},
		func(results map[string]interface{}) (*graph.BuildResult, error) {
			res, err := c.build(ctx)
			if err != nil {
				return nil, err
			}
			results["buildID"] = res.ID
			results["items"] = res.Stats.Items
			results["edges"] = res.Stats.Edges
			results["failed"] = res.Stats.Failed
			return res, nil
		})
}

func (c *realAssetCleaner) build(ctx context.Context) (*graph.BuildResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cfg, err := c.getConfig()
	if err != nil {
		return nil, err
	}

	s, err := c.newSession(cfg)
	if err != nil {
		return nil, err
	}

	c.VerbosePrint("Building reference index of %s", cfg.ProjectRoot)
	res, err := graph.Build(ctx, s.store, s.extractor, graph.BuildOptions{
		BatchSize: cfg.ProgressBatch,
		Progress:  c.deps.Progress,
		Logger:    c.deps.Logger,
	})
	if err != nil {
		return nil, err
	}

	if s.cached != nil {
		s.cached.Purge()
	}
	s.result = res
	c.session = s

	c.VerbosePrint("Build %s done: %d items, %d edges in %s",
		res.ID, res.Stats.Items, res.Stats.Edges, res.Stats.Duration)
	return res, nil
}
