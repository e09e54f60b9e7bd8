//go:build e2e

package test

import (
	"os"
	"path/filepath"
	"testing"

	assetcleaner "github.com/lerenn/asset-cleaner/pkg/asset-cleaner"
	"github.com/lerenn/asset-cleaner/pkg/config"
	"github.com/lerenn/asset-cleaner/pkg/dependencies"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// GUIDs of the fixture project.
const (
	sceneGUID    = "0a1b2c3d4e5f60718293a4b5c6d7e8f9"
	materialGUID = "11111111111111111111111111111111"
	woodGUID     = "22222222222222222222222222222222"
	oldGUID      = "33333333333333333333333333333333"
	prefabGUID   = "44444444444444444444444444444444"
	levelGUID    = "55555555555555555555555555555555"
)

// pngHeader is enough binary content for the extractor to skip the file.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d}

// TestSetup holds the test environment setup
type TestSetup struct {
	ProjectRoot string
	ConfigPath  string
}

// fixtureFile is one content file of the fixture project and its sidecar GUID.
type fixtureFile struct {
	path    string
	guid    string
	content []byte
}

func fixtureFiles() []fixtureFile {
	return []fixtureFile{
		{
			path: "Assets/Scenes/Main.unity",
			guid: sceneGUID,
			content: []byte("%YAML 1.1\n--- !u!23 &1\nMeshRenderer:\n" +
				"  m_Materials:\n  - {fileID: 2100000, guid: " + materialGUID + ", type: 2}\n"),
		},
		{
			path:    "Assets/Materials/Wood.mat",
			guid:    materialGUID,
			content: []byte("Material:\n  m_MainTex: {fileID: 2800000, guid: " + woodGUID + ", type: 3}\n"),
		},
		{path: "Assets/Textures/wood.png", guid: woodGUID, content: pngHeader},
		{path: "Assets/Textures/old.png", guid: oldGUID, content: pngHeader},
		{
			path:    "Assets/Resources/Boot.prefab",
			guid:    prefabGUID,
			content: []byte("Prefab:\n  m_Material: {fileID: 2100000, guid: " + materialGUID + ", type: 2}\n"),
		},
		{
			path:    "Assets/Data/level.json",
			guid:    levelGUID,
			content: []byte(`{"background": "` + oldGUID + `"}`),
		},
	}
}

// setupTestEnvironment writes the fixture project and a configuration
// pointing at it in a temporary directory.
func setupTestEnvironment(t *testing.T) *TestSetup {
	t.Helper()

	tempDir := t.TempDir()
	projectRoot := filepath.Join(tempDir, "Game")

	for _, f := range fixtureFiles() {
		writeAsset(t, projectRoot, f.path, f.guid, f.content)
	}

	cfg := config.Default()
	cfg.ProjectRoot = projectRoot
	cfg.DeepSearch.Workers = 4

	configPath := filepath.Join(tempDir, ".ac", "config.yaml")
	configData, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0755))
	require.NoError(t, os.WriteFile(configPath, configData, 0644))

	return &TestSetup{
		ProjectRoot: projectRoot,
		ConfigPath:  configPath,
	}
}

// writeAsset writes a content file and its ".meta" sidecar.
func writeAsset(t *testing.T, projectRoot, path, guid string, content []byte) {
	t.Helper()

	full := filepath.Join(projectRoot, filepath.FromSlash(path))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, content, 0644))

	meta := "fileFormatVersion: 2\nguid: " + guid + "\n"
	require.NoError(t, os.WriteFile(full+".meta", []byte(meta), 0644))
}

// newAssetCleaner creates an asset cleaner on the real filesystem using the
// configuration of setup.
func newAssetCleaner(t *testing.T, setup *TestSetup) assetcleaner.AssetCleaner {
	t.Helper()

	cleaner, err := assetcleaner.NewAssetCleaner(assetcleaner.NewAssetCleanerParams{
		Dependencies: dependencies.New().
			WithConfig(config.NewManagerWithParams(config.NewManagerParams{
				ConfigPath: setup.ConfigPath,
				LookupEnv:  func(string) (string, bool) { return "", false },
			})),
	})
	require.NoError(t, err)
	return cleaner
}
