//go:build unit

package main

import (
	"bytes"
	"errors"
	"testing"
	"time"

	assetcleaner "github.com/lerenn/asset-cleaner/pkg/asset-cleaner"
	"github.com/lerenn/asset-cleaner/pkg/catalog"
	"github.com/lerenn/asset-cleaner/pkg/deepscan"
	"github.com/lerenn/asset-cleaner/pkg/folders"
	"github.com/lerenn/asset-cleaner/pkg/refs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func createTestReport() *assetcleaner.UnusedReport {
	items := []catalog.Item{
		{Path: "Assets/Textures/old.png", Size: 1536},
		{Path: "Assets/Textures/Legacy/older.png", Size: 512},
		{Path: "Assets/Audio/unused.wav", Size: 2048},
	}
	tree := folders.Aggregate(items)
	return &assetcleaner.UnusedReport{
		BuildID: "01J9Z3YQK8W5V6X7Y8Z9A0B1C2",
		BuiltAt: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC),
		Items:   items,
		Total:   tree.Total(),
		Folders: tree,
	}
}

func TestWriteUnused_Text(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeUnused(&out, createTestReport(), formatText))

	expected := "Unused items:\n" +
		"  Assets/Textures/old.png (1.5 KiB)\n" +
		"  Assets/Textures/Legacy/older.png (512 B)\n" +
		"  Assets/Audio/unused.wav (2.0 KiB)\n" +
		"Total: 3 items, 4.0 KiB\n"
	assert.Equal(t, expected, out.String())
}

func TestWriteUnused_Empty(t *testing.T) {
	var out bytes.Buffer
	report := &assetcleaner.UnusedReport{Folders: folders.Aggregate(nil)}
	require.NoError(t, writeUnused(&out, report, formatText))
	assert.Equal(t, "No unused items found.\n", out.String())
}

func TestWriteUnused_YAML(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeUnused(&out, createTestReport(), formatYAML))

	var doc unusedDocument
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "01J9Z3YQK8W5V6X7Y8Z9A0B1C2", doc.BuildID)
	assert.Len(t, doc.Items, 3)
	assert.Equal(t, folders.Stats{Count: 2, Size: 2048}, doc.Folders["Assets/Textures"])
	assert.Equal(t, folders.Stats{Count: 3, Size: 4096}, doc.Total)
}

func TestWriteUnused_UnknownFormat(t *testing.T) {
	err := writeUnused(&bytes.Buffer{}, createTestReport(), "xml")
	assert.ErrorIs(t, err, errUnknownFormat)
}

func TestWriteFolders(t *testing.T) {
	tree := createTestReport().Folders

	var out bytes.Buffer
	writeFolders(&out, tree, 0)
	expected := "Assets/  3 items, 4.0 KiB\n" +
		"  Audio/  1 item, 2.0 KiB\n" +
		"  Textures/  2 items, 2.0 KiB\n" +
		"    Legacy/  1 item, 512 B\n" +
		"Total: 3 items, 4.0 KiB\n"
	assert.Equal(t, expected, out.String())

	out.Reset()
	writeFolders(&out, tree, 1)
	assert.Equal(t, "Assets/  3 items, 4.0 KiB\nTotal: 3 items, 4.0 KiB\n", out.String())
}

func TestWriteReferrers(t *testing.T) {
	var out bytes.Buffer
	writeReferrers(&out, &assetcleaner.ReferrersReport{
		Result: refs.Result{
			Target:    "Assets/Textures/wood.png",
			Referrers: []string{"Assets/Materials/Wood.mat"},
			FellBack:  true,
			Scanned:   12,
		},
		Identifier: "0123456789abcdef0123456789abcdef",
		Deep:       []string{"Assets/Data/level.json"},
	})

	expected := "Index unavailable, scanned 12 items\n" +
		"Assets/Textures/wood.png is referenced by:\n" +
		"  Assets/Materials/Wood.mat\n" +
		"Files mentioning 0123456789abcdef0123456789abcdef:\n" +
		"  Assets/Data/level.json\n"
	assert.Equal(t, expected, out.String())
}

func TestWriteReferrers_NotReferenced(t *testing.T) {
	var out bytes.Buffer
	writeReferrers(&out, &assetcleaner.ReferrersReport{
		Result: refs.Result{Target: "Assets/Textures/old.png"},
	})
	assert.Equal(t, "Assets/Textures/old.png is not referenced\n", out.String())
}

func TestWriteDeepScan(t *testing.T) {
	var out bytes.Buffer
	report := deepScanReport("Player", []string{"Assets/a.prefab", "Assets/b.cs"}, 1)
	writeDeepScan(&out, &report)
	assert.Equal(t, "Assets/a.prefab\nAssets/b.cs\nWarning: 1 files could not be read\n", out.String())

	out.Reset()
	report = deepScanReport("Player", []string{}, 0)
	report.Stats.Warning = errors.New("empty extension allowlist")
	writeDeepScan(&out, &report)
	assert.Equal(t, "Deep search skipped: empty extension allowlist\n", out.String())
}

func deepScanReport(identifier string, matches []string, unreadable int) assetcleaner.DeepScanReport {
	return assetcleaner.DeepScanReport{
		Identifier: identifier,
		Matches:    matches,
		Stats:      deepscan.Stats{Matched: len(matches), Unreadable: unreadable},
	}
}
