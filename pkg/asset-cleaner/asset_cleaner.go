package assetcleaner

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/lerenn/asset-cleaner/pkg/catalog"
	"github.com/lerenn/asset-cleaner/pkg/config"
	"github.com/lerenn/asset-cleaner/pkg/deepscan"
	"github.com/lerenn/asset-cleaner/pkg/dependencies"
	"github.com/lerenn/asset-cleaner/pkg/extractor"
	"github.com/lerenn/asset-cleaner/pkg/graph"
	"github.com/lerenn/asset-cleaner/pkg/hooks"
	"github.com/lerenn/asset-cleaner/pkg/logger"
	"github.com/lerenn/asset-cleaner/pkg/roots"
)

// AssetCleaner interface provides the unused content analysis of a project.
type AssetCleaner interface {
	// Build enumerates the project and replaces the session with a fresh reference index.
	Build(ctx context.Context) (*graph.BuildResult, error)
	// FindUnused lists the items of the last build that nothing references directly.
	FindUnused(opts ...FindUnusedOpts) (*UnusedReport, error)
	// FindReferrers lists the items referencing target directly.
	FindReferrers(ctx context.Context, target string, opts ...FindReferrersOpts) (*ReferrersReport, error)
	// DeepScan searches the raw content of the project for identifier.
	DeepScan(ctx context.Context, identifier string, opts ...DeepScanOpts) (*DeepScanReport, error)
	// PromptSelectItem asks the user to pick one file of the last build.
	PromptSelectItem(title string) (string, error)
	// Init initializes the ac configuration.
	Init(opts InitOpts) error
	// LastBuild returns the result of the last successful build of the session.
	LastBuild() (*graph.BuildResult, bool)
	// SetLogger sets the logger for this instance.
	SetLogger(logger logger.Logger)
}

// NewAssetCleanerParams contains parameters for creating a new AssetCleaner instance.
type NewAssetCleanerParams struct {
	Dependencies *dependencies.Dependencies
}

type realAssetCleaner struct {
	deps *dependencies.Dependencies

	// mu makes Build exclusive: queries hold the read lock.
	mu      sync.RWMutex
	session *session
}

// session is everything derived from one configuration snapshot.
type session struct {
	cfg        config.Config
	store      catalog.Store
	extractor  extractor.Extractor
	cached     *extractor.Cached // nil when caching is disabled
	classifier *roots.Classifier
	scanner    *deepscan.Scanner
	result     *graph.BuildResult // nil until built
}

// queryExtractor returns the extractor used by point queries.
func (s *session) queryExtractor() extractor.Extractor {
	if s.cached != nil {
		return s.cached
	}
	return s.extractor
}

// NewAssetCleaner creates a new AssetCleaner instance.
func NewAssetCleaner(params NewAssetCleanerParams) (AssetCleaner, error) {
	deps := params.Dependencies
	if deps == nil {
		deps = dependencies.New()
	}
	if err := deps.Validate(); err != nil {
		return nil, err
	}

	return &realAssetCleaner{
		deps: deps,
	}, nil
}

// VerbosePrint logs a formatted message using the current logger.
func (c *realAssetCleaner) VerbosePrint(msg string, args ...interface{}) {
	if c.deps.Logger != nil {
		c.deps.Logger.Logf(msg, args...)
	}
}

// SetLogger sets the logger for this AssetCleaner instance.
func (c *realAssetCleaner) SetLogger(logger logger.Logger) {
	c.deps.Logger = logger
}

// LastBuild returns the result of the last successful build of the session.
func (c *realAssetCleaner) LastBuild() (*graph.BuildResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.session == nil || c.session.result == nil {
		return nil, false
	}
	return c.session.result, true
}

// getConfig gets the configuration from the ConfigManager with fallback.
func (c *realAssetCleaner) getConfig() (config.Config, error) {
	return c.deps.Config.GetConfigWithFallback()
}

// newSession wires the store, extractors, classifier and scanner of cfg.
func (c *realAssetCleaner) newSession(cfg config.Config) (*session, error) {
	s := &session{
		cfg: cfg,
		store: c.deps.StoreProvider(catalog.NewFileStoreParams{
			FS:          c.deps.FS,
			Logger:      c.deps.Logger,
			ProjectRoot: cfg.ProjectRoot,
			ContentDir:  cfg.ContentDir,
		}),
		extractor: c.deps.ExtractorProvider(extractor.NewGUIDExtractorParams{
			FS:          c.deps.FS,
			Logger:      c.deps.Logger,
			ProjectRoot: cfg.ProjectRoot,
		}),
		classifier: roots.New(cfg.Roots.Rules()),
		scanner: deepscan.NewScanner(deepscan.NewScannerParams{
			FS:          c.deps.FS,
			Logger:      c.deps.Logger,
			Progress:    c.deps.Progress,
			ProjectRoot: cfg.ProjectRoot,
			Workers:     cfg.DeepSearch.Workers,
		}),
	}

	if cfg.ExtractorCacheSize > 0 {
		cached, err := extractor.NewCached(s.extractor, cfg.ExtractorCacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create extractor cache: %w", err)
		}
		s.cached = cached
	}

	return s, nil
}

// currentSession returns the built session, or a fresh unbuilt one holding
// the current catalog when nothing was built yet. With prepare, the fresh
// session's extractor is ready for point queries. Callers hold the read lock.
func (c *realAssetCleaner) currentSession(ctx context.Context, prepare bool) (*session, []catalog.Item, error) {
	if c.session != nil && c.session.result != nil {
		return c.session, c.session.result.Catalog.ListItems(), nil
	}

	cfg, err := c.getConfig()
	if err != nil {
		return nil, nil, err
	}
	s, err := c.newSession(cfg)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.store.Enumerate(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to enumerate content: %w", err)
	}
	cat := catalog.New(items)

	if p, ok := s.queryExtractor().(extractor.Preparer); ok && prepare {
		if err := p.Prepare(ctx, cat.ListItems()); err != nil {
			return nil, nil, fmt.Errorf("failed to prepare extractor: %w", err)
		}
	}

	return s, cat.ListItems(), nil
}

// normalizeTarget turns a user supplied path into a project relative item path.
func normalizeTarget(target string) string {
	target = strings.TrimSpace(filepath.ToSlash(target))
	if target == "" {
		return ""
	}
	return strings.TrimPrefix(path.Clean(target), "./")
}

// executeWithHooks executes an operation with pre and post hooks.
func (c *realAssetCleaner) executeWithHooks(
	operationName string, params map[string]interface{}, operation func(results map[string]interface{}) error) error {
	_, err := executeWithHooksAndReturn(c, operationName, params,
		func(results map[string]interface{}) (struct{}, error) {
			return struct{}{}, operation(results)
		})
	return err
}

// executeWithHooksAndReturn executes an operation returning a value with pre
// and post hooks. The operation fills results with a summary for the hooks.
func executeWithHooksAndReturn[T any](
	c *realAssetCleaner,
	operationName string,
	params map[string]interface{},
	operation func(results map[string]interface{}) (T, error),
) (T, error) {
	var zero T
	ctx := &hooks.HookContext{
		OperationName: operationName,
		Parameters:    params,
		Results:       make(map[string]interface{}),
		Metadata:      make(map[string]interface{}),
	}
	// Execute pre-hooks (if hook manager is available)
	if err := c.executePreHooks(operationName, ctx); err != nil {
		return zero, err
	}
	// Execute operation
	var result T
	var resultErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				resultErr = fmt.Errorf("panic in %s: %v", operationName, r)
			}
		}()
		result, resultErr = operation(ctx.Results)
	}()
	// Update context with results
	ctx.Error = resultErr
	if resultErr == nil {
		ctx.Results["success"] = true
	}
	// Execute post-hooks or error-hooks (if hook manager is available)
	if hookErr := c.executeHooks(operationName, ctx, resultErr); hookErr != nil {
		return zero, hookErr
	}
	if resultErr != nil {
		return zero, resultErr
	}
	return result, nil
}

// executeHooks executes post-hooks or error-hooks based on the operation result.
func (c *realAssetCleaner) executeHooks(operationName string, ctx *hooks.HookContext, resultErr error) error {
	if c.deps.HookManager == nil {
		return nil
	}

	if resultErr != nil {
		return c.deps.HookManager.ExecuteErrorHooks(operationName, ctx)
	}
	return c.deps.HookManager.ExecutePostHooks(operationName, ctx)
}

// executePreHooks executes pre-hooks if hook manager is available.
func (c *realAssetCleaner) executePreHooks(operationName string, ctx *hooks.HookContext) error {
	if c.deps.HookManager == nil {
		return nil
	}
	return c.deps.HookManager.ExecutePreHooks(operationName, ctx)
}
