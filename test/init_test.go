//go:build e2e

package test

import (
	"path/filepath"
	"testing"

	assetcleaner "github.com/lerenn/asset-cleaner/pkg/asset-cleaner"
	"github.com/lerenn/asset-cleaner/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_NonInteractive(t *testing.T) {
	setup := setupTestEnvironment(t)
	setup.ConfigPath = filepath.Join(t.TempDir(), "nested", "config.yaml")
	cleaner := newAssetCleaner(t, setup)

	err := cleaner.Init(assetcleaner.InitOpts{
		NonInteractive: true,
		ProjectRoot:    setup.ProjectRoot,
	})
	require.NoError(t, err)

	cfg, err := config.NewManager(setup.ConfigPath).GetConfigStrict()
	require.NoError(t, err)
	assert.Equal(t, setup.ProjectRoot, cfg.ProjectRoot)
	assert.Equal(t, "Assets", cfg.ContentDir)

	// A second run refuses to overwrite without --force.
	err = cleaner.Init(assetcleaner.InitOpts{NonInteractive: true, ProjectRoot: setup.ProjectRoot})
	assert.ErrorIs(t, err, assetcleaner.ErrAlreadyInitialized)

	err = cleaner.Init(assetcleaner.InitOpts{Force: true, NonInteractive: true, ProjectRoot: setup.ProjectRoot})
	assert.NoError(t, err)
}
