//go:build unit

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func newTestManager(t *testing.T) (Manager, string) {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), ".ac", "config.yaml")
	return NewManagerWithParams(NewManagerParams{ConfigPath: configPath, LookupEnv: noEnv}), configPath
}

func TestManager_GetConfig_NotInitialized(t *testing.T) {
	manager, _ := newTestManager(t)

	_, err := manager.GetConfig()
	assert.ErrorIs(t, err, ErrConfigNotInitialized)

	_, err = manager.GetConfigStrict()
	assert.ErrorIs(t, err, ErrConfigNotInitialized)
}

func TestManager_GetConfigWithFallback(t *testing.T) {
	manager, _ := newTestManager(t)

	cfg, err := manager.GetConfigWithFallback()
	require.NoError(t, err)
	assert.Equal(t, "Assets", cfg.ContentDir)
	assert.Equal(t, ".", cfg.ProjectRoot)
}

func TestManager_SaveAndLoad(t *testing.T) {
	manager, configPath := newTestManager(t)

	cfg := manager.DefaultConfig()
	cfg.ProjectRoot = "/projects/game"
	cfg.IgnorePatterns = []string{"ThirdParty/"}
	cfg.DeepSearch.Enabled = true
	require.NoError(t, manager.SaveConfig(cfg))

	_, err := os.Stat(configPath)
	require.NoError(t, err)

	loaded, err := manager.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	fallback, err := manager.GetConfigWithFallback()
	require.NoError(t, err)
	assert.Equal(t, cfg, fallback)
}

func TestManager_SaveConfig_Invalid(t *testing.T) {
	manager, configPath := newTestManager(t)

	cfg := manager.DefaultConfig()
	cfg.ContentDir = ""
	assert.ErrorIs(t, manager.SaveConfig(cfg), ErrContentDirEmpty)

	_, err := os.Stat(configPath)
	assert.True(t, os.IsNotExist(err))
}

func TestManager_GetConfig_ParseError(t *testing.T) {
	manager, configPath := newTestManager(t)
	require.NoError(t, manager.CreateConfigDirectory())
	require.NoError(t, os.WriteFile(configPath, []byte("roots: [oops"), 0644))

	_, err := manager.GetConfig()
	assert.ErrorIs(t, err, ErrConfigFileParse)

	_, err = manager.GetConfigWithFallback()
	assert.ErrorIs(t, err, ErrConfigFileParse, "an existing broken file must not be hidden by the fallback")
}

func TestManager_EnvOverrides(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	manager := NewManagerWithParams(NewManagerParams{
		ConfigPath: configPath,
		LookupEnv: func(key string) (string, bool) {
			if key == EnvProjectRoot {
				return "/override", true
			}
			return "", false
		},
	})

	cfg, err := manager.GetConfigWithFallback()
	require.NoError(t, err)
	assert.Equal(t, "/override", cfg.ProjectRoot)
}

func TestManager_ExpandsTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	manager, _ := newTestManager(t)
	cfg := manager.DefaultConfig()
	cfg.ProjectRoot = "~/game"
	require.NoError(t, manager.SaveConfig(cfg))

	loaded, err := manager.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "game"), loaded.ProjectRoot)
}

func TestManager_ConfigPath(t *testing.T) {
	manager := NewManager("/a/config.yaml")
	assert.Equal(t, "/a/config.yaml", manager.GetConfigPath())

	manager.SetConfigPath("/b/config.yaml")
	assert.Equal(t, "/b/config.yaml", manager.GetConfigPath())
}
