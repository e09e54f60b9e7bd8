//go:build unit

package assetcleaner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/lerenn/asset-cleaner/pkg/catalog"
	catalogmocks "github.com/lerenn/asset-cleaner/pkg/catalog/mocks"
	"github.com/lerenn/asset-cleaner/pkg/config"
	configmocks "github.com/lerenn/asset-cleaner/pkg/config/mocks"
	"github.com/lerenn/asset-cleaner/pkg/dependencies"
	"github.com/lerenn/asset-cleaner/pkg/extractor"
	fsmocks "github.com/lerenn/asset-cleaner/pkg/fs/mocks"
	"github.com/lerenn/asset-cleaner/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// testProject is a small project: one scene using one material using one texture,
// plus an orphan texture, a force-loaded prefab and an ignored legacy file.
var testProject = []catalog.Item{
	{Path: "Assets", IsFolder: true},
	{Path: "Assets/Scenes", IsFolder: true},
	{Path: "Assets/Scenes/Main.unity", Size: 400},
	{Path: "Assets/Materials", IsFolder: true},
	{Path: "Assets/Materials/Wood.mat", Size: 100},
	{Path: "Assets/Textures", IsFolder: true},
	{Path: "Assets/Textures/wood.png", Size: 2048},
	{Path: "Assets/Textures/old.png", Size: 1024},
	{Path: "Assets/Resources", IsFolder: true},
	{Path: "Assets/Resources/boot.prefab", Size: 50},
	{Path: "Assets/Legacy", IsFolder: true},
	{Path: "Assets/Legacy/notes.txt", Size: 10},
}

var testDependencies = map[string][]string{
	"Assets/Scenes/Main.unity":     {"Assets/Materials/Wood.mat", "Assets/Scenes/Main.unity"},
	"Assets/Materials/Wood.mat":    {"Assets/Textures/wood.png"},
	"Assets/Resources/boot.prefab": {"Assets/Materials/Wood.mat"},
}

func createTestConfig() config.Config {
	cfg := config.Default()
	cfg.ProjectRoot = "/project"
	cfg.IgnorePatterns = []string{"Legacy"}
	cfg.ExtractorCacheSize = 16
	cfg.DeepSearch.Workers = 2
	return cfg
}

// countingExtractor serves testDependencies and counts calls.
type countingExtractor struct {
	calls atomic.Int64
}

func (e *countingExtractor) GetDependencies(path string) ([]string, error) {
	e.calls.Add(1)
	return testDependencies[path], nil
}

type testEnv struct {
	cleaner   AssetCleaner
	store     *catalogmocks.MockStore
	fs        *fsmocks.MockFS
	config    *configmocks.MockManager
	extractor *countingExtractor
}

func newTestEnv(t *testing.T, ctrl *gomock.Controller, cfg config.Config) *testEnv {
	t.Helper()

	env := &testEnv{
		store:     catalogmocks.NewMockStore(ctrl),
		fs:        fsmocks.NewMockFS(ctrl),
		config:    configmocks.NewMockManager(ctrl),
		extractor: &countingExtractor{},
	}
	env.config.EXPECT().GetConfigWithFallback().Return(cfg, nil).AnyTimes()

	var err error
	env.cleaner, err = NewAssetCleaner(NewAssetCleanerParams{
		Dependencies: dependencies.New().
			WithFS(env.fs).
			WithConfig(env.config).
			WithStoreProvider(func(params catalog.NewFileStoreParams) catalog.Store {
				assert.Equal(t, cfg.ProjectRoot, params.ProjectRoot)
				assert.Equal(t, cfg.ContentDir, params.ContentDir)
				return env.store
			}).
			WithExtractorProvider(func(params extractor.NewGUIDExtractorParams) extractor.Extractor {
				return env.extractor
			}),
	})
	require.NoError(t, err)
	return env
}

func TestNewAssetCleaner_MissingConfig(t *testing.T) {
	_, err := NewAssetCleaner(NewAssetCleanerParams{
		Dependencies: dependencies.New(),
	})
	assert.ErrorIs(t, err, dependencies.ErrConfigMissing)
}

func TestRealAssetCleaner_Build(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestEnv(t, ctrl, createTestConfig())
	env.store.EXPECT().Enumerate(gomock.Any()).Return(testProject, nil)

	_, ok := env.cleaner.LastBuild()
	assert.False(t, ok)

	res, err := env.cleaner.Build(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.True(t, res.Index.Built())
	assert.Equal(t, 6, res.Stats.Items)
	assert.Equal(t, 3, res.Stats.Edges)
	assert.Equal(t, 1, res.Stats.SelfEdges)
	assert.Equal(t, int64(6), env.extractor.calls.Load())

	last, ok := env.cleaner.LastBuild()
	require.True(t, ok)
	assert.Equal(t, res.ID, last.ID)
}

func TestRealAssetCleaner_Build_FailureKeepsPreviousSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestEnv(t, ctrl, createTestConfig())
	enumerateErr := errors.New("disk on fire")
	gomock.InOrder(
		env.store.EXPECT().Enumerate(gomock.Any()).Return(testProject, nil),
		env.store.EXPECT().Enumerate(gomock.Any()).Return(nil, enumerateErr),
	)

	first, err := env.cleaner.Build(context.Background())
	require.NoError(t, err)

	_, err = env.cleaner.Build(context.Background())
	assert.ErrorIs(t, err, enumerateErr)

	last, ok := env.cleaner.LastBuild()
	require.True(t, ok)
	assert.Equal(t, first.ID, last.ID)
}

func TestRealAssetCleaner_Build_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestEnv(t, ctrl, createTestConfig())
	env.store.EXPECT().Enumerate(gomock.Any()).Return(testProject, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := env.cleaner.Build(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)

	_, ok := env.cleaner.LastBuild()
	assert.False(t, ok)
}

func TestRealAssetCleaner_FindUnused(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestEnv(t, ctrl, createTestConfig())
	env.store.EXPECT().Enumerate(gomock.Any()).Return(testProject, nil)

	res, err := env.cleaner.Build(context.Background())
	require.NoError(t, err)

	report, err := env.cleaner.FindUnused()
	require.NoError(t, err)
	assert.Equal(t, res.ID, report.BuildID)
	require.Len(t, report.Items, 1)
	assert.Equal(t, "Assets/Textures/old.png", report.Items[0].Path)
	assert.Equal(t, 1, report.Total.Count)
	assert.Equal(t, int64(1024), report.Total.Size)

	stats, ok := report.Folders.Get("Assets/Textures")
	require.True(t, ok)
	assert.Equal(t, 1, stats.Count)

	report, err = env.cleaner.FindUnused(FindUnusedOpts{IgnorePatterns: []string{"old"}})
	require.NoError(t, err)
	assert.Empty(t, report.Items)
}

func TestRealAssetCleaner_FindUnused_NotBuilt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestEnv(t, ctrl, createTestConfig())

	_, err := env.cleaner.FindUnused()
	assert.ErrorIs(t, err, ErrNotBuilt)
	assert.ErrorIs(t, err, graph.ErrUnbuiltIndex)
}

func TestRealAssetCleaner_FindReferrers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestEnv(t, ctrl, createTestConfig())
	env.store.EXPECT().Enumerate(gomock.Any()).Return(testProject, nil)

	_, err := env.cleaner.Build(context.Background())
	require.NoError(t, err)
	calls := env.extractor.calls.Load()

	report, err := env.cleaner.FindReferrers(context.Background(), "./Assets/Materials/Wood.mat")
	require.NoError(t, err)
	assert.Equal(t, "Assets/Materials/Wood.mat", report.Target)
	assert.Equal(t, []string{"Assets/Resources/boot.prefab", "Assets/Scenes/Main.unity"}, report.Referrers)
	assert.False(t, report.FellBack)
	assert.Empty(t, report.Deep)
	assert.Equal(t, calls, env.extractor.calls.Load(), "index lookups never reach the extractor")
}

func TestRealAssetCleaner_FindReferrers_NoIndexUsesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestEnv(t, ctrl, createTestConfig())
	env.store.EXPECT().Enumerate(gomock.Any()).Return(testProject, nil)

	_, err := env.cleaner.Build(context.Background())
	require.NoError(t, err)
	calls := env.extractor.calls.Load()

	report, err := env.cleaner.FindReferrers(context.Background(), "Assets/Textures/wood.png",
		FindReferrersOpts{NoIndex: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Assets/Materials/Wood.mat"}, report.Referrers)
	assert.Equal(t, 5, report.Scanned)
	assert.Equal(t, calls+5, env.extractor.calls.Load())

	report, err = env.cleaner.FindReferrers(context.Background(), "Assets/Textures/old.png",
		FindReferrersOpts{NoIndex: true})
	require.NoError(t, err)
	assert.Empty(t, report.Referrers)
	// wood.png is the only item the first scan did not cache.
	assert.Equal(t, calls+6, env.extractor.calls.Load())
}

func TestRealAssetCleaner_FindReferrers_WithoutBuild(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestEnv(t, ctrl, createTestConfig())
	env.store.EXPECT().Enumerate(gomock.Any()).Return(testProject, nil)

	report, err := env.cleaner.FindReferrers(context.Background(), "Assets/Textures/wood.png")
	require.NoError(t, err)
	assert.True(t, report.FellBack)
	assert.Equal(t, []string{"Assets/Materials/Wood.mat"}, report.Referrers)

	_, ok := env.cleaner.LastBuild()
	assert.False(t, ok, "queries never build")
}

func TestRealAssetCleaner_FindReferrers_Deep(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestEnv(t, ctrl, createTestConfig())
	env.store.EXPECT().Enumerate(gomock.Any()).Return(testProject, nil)
	env.fs.EXPECT().ReadFile("/project/Assets/Materials/Wood.mat").Return([]byte("texture: wood.png"), nil)
	env.fs.EXPECT().ReadFile("/project/Assets/Legacy/notes.txt").Return([]byte("wood.png was replaced"), nil)

	_, err := env.cleaner.Build(context.Background())
	require.NoError(t, err)

	report, err := env.cleaner.FindReferrers(context.Background(), "Assets/Textures/wood.png",
		FindReferrersOpts{Deep: true, Extensions: []string{"mat", ".TXT"}})
	require.NoError(t, err)
	assert.Equal(t, "wood.png", report.Identifier)
	assert.Equal(t, []string{"Assets/Materials/Wood.mat"}, report.Referrers)
	assert.Equal(t, []string{"Assets/Legacy/notes.txt", "Assets/Materials/Wood.mat"}, report.Deep)
	assert.Empty(t, report.DeepWarning)
}

func TestRealAssetCleaner_FindReferrers_DeepEmptyAllowlist(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := createTestConfig()
	cfg.DeepSearch.Enabled = true
	cfg.DeepSearch.Extensions = nil
	env := newTestEnv(t, ctrl, cfg)
	env.store.EXPECT().Enumerate(gomock.Any()).Return(testProject, nil)

	_, err := env.cleaner.Build(context.Background())
	require.NoError(t, err)

	report, err := env.cleaner.FindReferrers(context.Background(), "Assets/Textures/wood.png")
	require.NoError(t, err)
	assert.Empty(t, report.Deep)
	assert.NotEmpty(t, report.DeepWarning)
}

func TestRealAssetCleaner_FindReferrers_EmptyTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestEnv(t, ctrl, createTestConfig())

	_, err := env.cleaner.FindReferrers(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrTargetEmpty)
}

func TestRealAssetCleaner_DeepScan(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestEnv(t, ctrl, createTestConfig())
	env.store.EXPECT().Enumerate(gomock.Any()).Return(testProject, nil)
	env.fs.EXPECT().ReadFile("/project/Assets/Resources/boot.prefab").Return([]byte("name: Boot"), nil)

	report, err := env.cleaner.DeepScan(context.Background(), "Boot", DeepScanOpts{Extensions: []string{".prefab"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Assets/Resources/boot.prefab"}, report.Matches)
	assert.Equal(t, 1, report.Stats.Candidates)
	assert.Equal(t, int64(0), env.extractor.calls.Load(), "deep scans never ask the extractor")
}

func TestRealAssetCleaner_DeepScan_EmptyIdentifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestEnv(t, ctrl, createTestConfig())

	_, err := env.cleaner.DeepScan(context.Background(), "")
	assert.ErrorIs(t, err, ErrIdentifierEmpty)
}

func TestRealAssetCleaner_ConcurrentQueriesAndBuilds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestEnv(t, ctrl, createTestConfig())
	env.store.EXPECT().Enumerate(gomock.Any()).Return(testProject, nil).AnyTimes()

	_, err := env.cleaner.Build(context.Background())
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := env.cleaner.Build(context.Background())
			errs <- err
		}()
		go func() {
			defer wg.Done()
			report, err := env.cleaner.FindReferrers(context.Background(), "Assets/Textures/wood.png")
			if err == nil && len(report.Referrers) != 1 {
				err = errors.New("unexpected referrers")
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}
