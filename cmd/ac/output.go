package main

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	assetcleaner "github.com/lerenn/asset-cleaner/pkg/asset-cleaner"
	"github.com/lerenn/asset-cleaner/pkg/catalog"
	"github.com/lerenn/asset-cleaner/pkg/folders"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	formatText = "text"
	formatYAML = "yaml"
)

var errUnknownFormat = errors.New("unknown output format")

// unusedDocument is the YAML rendering of an unused report.
type unusedDocument struct {
	BuildID string                   `yaml:"build_id"`
	BuiltAt time.Time                `yaml:"built_at"`
	Total   folders.Stats            `yaml:"total"`
	Items   []catalog.Item           `yaml:"items"`
	Folders map[string]folders.Stats `yaml:"folders"`
}

// writeUnused renders the unused items of report in the given format.
func writeUnused(w io.Writer, report *assetcleaner.UnusedReport, format string) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(unusedDocument{
			BuildID: report.BuildID,
			BuiltAt: report.BuiltAt,
			Total:   report.Total,
			Items:   report.Items,
			Folders: report.Folders.Folders(),
		}); err != nil {
			return err
		}
		return enc.Close()
	case formatText:
		if len(report.Items) == 0 {
			fmt.Fprintln(w, "No unused items found.")
			return nil
		}
		fmt.Fprintf(w, "Unused items:\n")
		for _, item := range report.Items {
			fmt.Fprintf(w, "  %s (%s)\n", item.Path, humanize.IBytes(uint64(item.Size)))
		}
		fmt.Fprintf(w, "Total: %s\n", formatStats(report.Total))
		return nil
	default:
		return fmt.Errorf("%w: %s", errUnknownFormat, format)
	}
}

// writeFolders renders the folder aggregates as an indented tree. maxDepth
// limits the printed levels, 0 prints everything.
func writeFolders(w io.Writer, tree *folders.Tree, maxDepth int) {
	if tree.Total().Count == 0 {
		fmt.Fprintln(w, "No unused items found.")
		return
	}

	tree.Walk(func(dir string, depth int, stats folders.Stats) bool {
		fmt.Fprintf(w, "%s%s/  %s\n", strings.Repeat("  ", depth), path.Base(dir), formatStats(stats))
		return maxDepth <= 0 || depth+1 < maxDepth
	})
	fmt.Fprintf(w, "Total: %s\n", formatStats(tree.Total()))
}

// writeReferrers renders a point query.
func writeReferrers(w io.Writer, report *assetcleaner.ReferrersReport) {
	if report.FellBack {
		fmt.Fprintf(w, "Index unavailable, scanned %d items\n", report.Scanned)
	}

	if len(report.Referrers) == 0 {
		fmt.Fprintf(w, "%s is not referenced\n", report.Target)
	} else {
		fmt.Fprintf(w, "%s is referenced by:\n", report.Target)
		for _, referrer := range report.Referrers {
			fmt.Fprintf(w, "  %s\n", referrer)
		}
	}

	if report.Identifier == "" {
		return
	}
	if report.DeepWarning != "" {
		fmt.Fprintf(w, "Deep search skipped: %s\n", report.DeepWarning)
		return
	}
	if len(report.Deep) == 0 {
		fmt.Fprintf(w, "No file mentions %s\n", report.Identifier)
		return
	}
	fmt.Fprintf(w, "Files mentioning %s:\n", report.Identifier)
	for _, hit := range report.Deep {
		fmt.Fprintf(w, "  %s\n", hit)
	}
}

// writeDeepScan renders the matches of a deep scan.
func writeDeepScan(w io.Writer, report *assetcleaner.DeepScanReport) {
	if report.Stats.Warning != nil {
		fmt.Fprintf(w, "Deep search skipped: %v\n", report.Stats.Warning)
		return
	}
	if len(report.Matches) == 0 {
		fmt.Fprintf(w, "No file mentions %s\n", report.Identifier)
		return
	}
	for _, match := range report.Matches {
		fmt.Fprintln(w, match)
	}
	if report.Stats.Unreadable > 0 {
		fmt.Fprintf(w, "Warning: %d files could not be read\n", report.Stats.Unreadable)
	}
}

func formatStats(stats folders.Stats) string {
	noun := "items"
	if stats.Count == 1 {
		noun = "item"
	}
	return fmt.Sprintf("%s %s, %s", humanize.Comma(int64(stats.Count)), noun, humanize.IBytes(uint64(stats.Size)))
}
