//go:build e2e

package test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	assetcleaner "github.com/lerenn/asset-cleaner/pkg/asset-cleaner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefs_Index(t *testing.T) {
	setup := setupTestEnvironment(t)
	cleaner := newAssetCleaner(t, setup)

	_, err := cleaner.Build(context.Background())
	require.NoError(t, err)

	report, err := cleaner.FindReferrers(context.Background(), "Assets/Materials/Wood.mat")
	require.NoError(t, err)
	assert.Equal(t, []string{"Assets/Resources/Boot.prefab", "Assets/Scenes/Main.unity"}, report.Referrers)
	assert.False(t, report.FellBack)
}

func TestRefs_WithoutBuildFallsBack(t *testing.T) {
	setup := setupTestEnvironment(t)
	cleaner := newAssetCleaner(t, setup)

	report, err := cleaner.FindReferrers(context.Background(), "Assets/Textures/wood.png")
	require.NoError(t, err)
	assert.True(t, report.FellBack)
	assert.Equal(t, []string{"Assets/Materials/Wood.mat"}, report.Referrers)
	assert.Equal(t, 5, report.Scanned)
}

func TestRefs_Deep(t *testing.T) {
	setup := setupTestEnvironment(t)
	cleaner := newAssetCleaner(t, setup)

	_, err := cleaner.Build(context.Background())
	require.NoError(t, err)

	report, err := cleaner.FindReferrers(context.Background(), "Assets/Textures/old.png",
		assetcleaner.FindReferrersOpts{Deep: true})
	require.NoError(t, err)
	assert.Empty(t, report.Referrers)
	assert.Equal(t, oldGUID, report.Identifier)
	assert.Equal(t, []string{"Assets/Data/level.json"}, report.Deep)
}

func TestRefs_DeletedAfterBuild(t *testing.T) {
	setup := setupTestEnvironment(t)
	cleaner := newAssetCleaner(t, setup)

	_, err := cleaner.Build(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(setup.ProjectRoot, "Assets", "Materials", "Wood.mat")))

	// The index answers from the build snapshot.
	report, err := cleaner.FindReferrers(context.Background(), "Assets/Textures/wood.png")
	require.NoError(t, err)
	assert.Equal(t, []string{"Assets/Materials/Wood.mat"}, report.Referrers)

	// The slow path reads the files again and skips the missing one.
	report, err = cleaner.FindReferrers(context.Background(), "Assets/Textures/wood.png",
		assetcleaner.FindReferrersOpts{NoIndex: true})
	require.NoError(t, err)
	assert.Empty(t, report.Referrers)
	assert.Equal(t, 1, report.Failed)
}

func TestSearch(t *testing.T) {
	setup := setupTestEnvironment(t)
	cleaner := newAssetCleaner(t, setup)

	report, err := cleaner.DeepScan(context.Background(), materialGUID,
		assetcleaner.DeepScanOpts{Extensions: []string{".unity", ".prefab", ".json"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Assets/Resources/Boot.prefab", "Assets/Scenes/Main.unity"}, report.Matches)
	assert.Equal(t, 3, report.Stats.Candidates)
	assert.Equal(t, 4, report.Stats.Workers)
}
