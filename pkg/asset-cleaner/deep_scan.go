package assetcleaner

import (
	"context"
	"strings"

	"github.com/lerenn/asset-cleaner/pkg/asset-cleaner/consts"
	"github.com/lerenn/asset-cleaner/pkg/deepscan"
)

// DeepScanOpts contains optional parameters for DeepScan.
type DeepScanOpts struct {
	// Extensions overrides the configured deep search allowlist.
	Extensions []string
}

// DeepScanReport lists the items whose raw content holds an identifier.
type DeepScanReport struct {
	Identifier string         `yaml:"identifier"`
	Matches    []string       `yaml:"matches"`
	Stats      deepscan.Stats `yaml:"stats"`
}

// DeepScan searches the raw content of the project for identifier.
func (c *realAssetCleaner) DeepScan(
	ctx context.Context, identifier string, opts ...DeepScanOpts) (*DeepScanReport, error) {
	var options DeepScanOpts
	if len(opts) > 0 {
		options = opts[0]
	}

	params := map[string]interface{}{
		"identifier": identifier,
		"extensions": options.Extensions,
	}

	return executeWithHooksAndReturn(c, consts.DeepScan, params,
		func(results map[string]interface{}) (*DeepScanReport, error) {
			report, err := c.deepScan(ctx, identifier, options)
			if err != nil {
				return nil, err
			}
			results["matches"] = len(report.Matches)
			results["unreadable"] = report.Stats.Unreadable
			return report, nil
		})
}

func (c *realAssetCleaner) deepScan(ctx context.Context, identifier string, opts DeepScanOpts) (*DeepScanReport, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, ErrIdentifierEmpty
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	s, items, err := c.currentSession(ctx, false)
	if err != nil {
		return nil, err
	}

	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = s.cfg.DeepSearch.Extensions
	}

	matches, err := s.scanner.ScanForIdentifier(ctx, identifier, extensions, items)
	if err != nil {
		return nil, err
	}

	return &DeepScanReport{
		Identifier: identifier,
		Matches:    matches,
		Stats:      s.scanner.LastStats(),
	}, nil
}
