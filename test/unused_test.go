//go:build e2e

package test

import (
	"context"
	"testing"

	assetcleaner "github.com/lerenn/asset-cleaner/pkg/asset-cleaner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnused(t *testing.T) {
	setup := setupTestEnvironment(t)
	cleaner := newAssetCleaner(t, setup)

	res, err := cleaner.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, res.Stats.Items)
	assert.Equal(t, 3, res.Stats.Edges)
	assert.Equal(t, 0, res.Stats.Failed)

	report, err := cleaner.FindUnused()
	require.NoError(t, err)

	var paths []string
	for _, item := range report.Items {
		paths = append(paths, item.Path)
	}
	// level.json mentions old.png only in a way the graph cannot see.
	assert.Equal(t, []string{"Assets/Data/level.json", "Assets/Textures/old.png"}, paths)
	assert.Equal(t, 2, report.Total.Count)

	stats, ok := report.Folders.Get("Assets")
	require.True(t, ok)
	assert.Equal(t, report.Total, stats)
}

func TestUnused_IgnorePatterns(t *testing.T) {
	setup := setupTestEnvironment(t)
	cleaner := newAssetCleaner(t, setup)

	_, err := cleaner.Build(context.Background())
	require.NoError(t, err)

	report, err := cleaner.FindUnused(assetcleaner.FindUnusedOpts{IgnorePatterns: []string{"Data/"}})
	require.NoError(t, err)
	require.Len(t, report.Items, 1)
	assert.Equal(t, "Assets/Textures/old.png", report.Items[0].Path)
}

func TestUnused_RebuildSeesNewReference(t *testing.T) {
	setup := setupTestEnvironment(t)
	cleaner := newAssetCleaner(t, setup)

	first, err := cleaner.Build(context.Background())
	require.NoError(t, err)

	writeAsset(t, setup.ProjectRoot, "Assets/Materials/Old.mat", "66666666666666666666666666666666",
		[]byte("Material:\n  m_MainTex: {fileID: 2800000, guid: "+oldGUID+", type: 3}\n"))

	// The session keeps answering from the first build until the next one.
	report, err := cleaner.FindUnused()
	require.NoError(t, err)
	assert.Equal(t, first.ID, report.BuildID)
	assert.Len(t, report.Items, 2)

	second, err := cleaner.Build(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	report, err = cleaner.FindUnused()
	require.NoError(t, err)

	var paths []string
	for _, item := range report.Items {
		paths = append(paths, item.Path)
	}
	// Old.mat is now the orphan, old.png is referenced by it.
	assert.Equal(t, []string{"Assets/Data/level.json", "Assets/Materials/Old.mat"}, paths)
}
