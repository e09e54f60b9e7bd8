// Package dependencies provides a centralized dependency container for the ac application.
// This package follows Go idioms for dependency injection by grouping related dependencies
// together and providing a fluent API for configuration.
package dependencies

import (
	"errors"

	"github.com/lerenn/asset-cleaner/pkg/catalog"
	"github.com/lerenn/asset-cleaner/pkg/config"
	"github.com/lerenn/asset-cleaner/pkg/extractor"
	"github.com/lerenn/asset-cleaner/pkg/fs"
	"github.com/lerenn/asset-cleaner/pkg/hooks"
	"github.com/lerenn/asset-cleaner/pkg/logger"
	"github.com/lerenn/asset-cleaner/pkg/progress"
	"github.com/lerenn/asset-cleaner/pkg/prompt"
)

// Validation errors for missing dependencies.
var (
	ErrFSMissing                = errors.New("fs dependency is required but not set")
	ErrConfigMissing            = errors.New("config dependency is required but not set")
	ErrLoggerMissing            = errors.New("logger dependency is required but not set")
	ErrPromptMissing            = errors.New("prompt dependency is required but not set")
	ErrHookManagerMissing       = errors.New("hook manager dependency is required but not set")
	ErrProgressMissing          = errors.New("progress dependency is required but not set")
	ErrStoreProviderMissing     = errors.New("store provider dependency is required but not set")
	ErrExtractorProviderMissing = errors.New("extractor provider dependency is required but not set")
)

// StoreProvider creates the content store of a project.
type StoreProvider func(params catalog.NewFileStoreParams) catalog.Store

// ExtractorProvider creates the dependency extractor of a project.
type ExtractorProvider func(params extractor.NewGUIDExtractorParams) extractor.Extractor

// Dependencies holds shared dependencies across the application.
type Dependencies struct {
	FS                fs.FS
	Config            config.Manager
	Logger            logger.Logger
	Prompt            prompt.Prompter
	HookManager       hooks.HookManagerInterface
	Progress          progress.Reporter
	StoreProvider     StoreProvider
	ExtractorProvider ExtractorProvider
}

// New creates a new Dependencies instance with sensible defaults.
func New() *Dependencies {
	return &Dependencies{
		FS:          fs.NewFS(),
		Logger:      logger.NewNoopLogger(),
		Prompt:      prompt.NewPrompt(),
		HookManager: hooks.NewHookManager(),
		Progress:    progress.NewNoopReporter(),
		StoreProvider: func(params catalog.NewFileStoreParams) catalog.Store {
			return catalog.NewFileStore(params)
		},
		ExtractorProvider: func(params extractor.NewGUIDExtractorParams) extractor.Extractor {
			return extractor.NewGUIDExtractor(params)
		},
		// Config is left nil: it depends on the config path chosen by the caller.
	}
}

// WithFS sets the filesystem and returns the instance for chaining.
func (d *Dependencies) WithFS(fs fs.FS) *Dependencies {
	d.FS = fs
	return d
}

// WithConfig sets the config manager and returns the instance for chaining.
func (d *Dependencies) WithConfig(cfg config.Manager) *Dependencies {
	d.Config = cfg
	return d
}

// WithLogger sets the logger and returns the instance for chaining.
func (d *Dependencies) WithLogger(logger logger.Logger) *Dependencies {
	d.Logger = logger
	return d
}

// WithPrompt sets the prompt and returns the instance for chaining.
func (d *Dependencies) WithPrompt(prompt prompt.Prompter) *Dependencies {
	d.Prompt = prompt
	return d
}

// WithHookManager sets the hook manager and returns the instance for chaining.
func (d *Dependencies) WithHookManager(hm hooks.HookManagerInterface) *Dependencies {
	d.HookManager = hm
	return d
}

// WithProgress sets the progress reporter and returns the instance for chaining.
func (d *Dependencies) WithProgress(p progress.Reporter) *Dependencies {
	d.Progress = p
	return d
}

// WithStoreProvider sets the store provider and returns the instance for chaining.
func (d *Dependencies) WithStoreProvider(sp StoreProvider) *Dependencies {
	d.StoreProvider = sp
	return d
}

// WithExtractorProvider sets the extractor provider and returns the instance for chaining.
func (d *Dependencies) WithExtractorProvider(ep ExtractorProvider) *Dependencies {
	d.ExtractorProvider = ep
	return d
}

// dependencyCheck represents a dependency validation check.
type dependencyCheck struct {
	dep interface{}
	err error
}

// Validate checks that all required dependencies are set and returns an error if any are missing.
func (d *Dependencies) Validate() error {
	checks := []dependencyCheck{
		{d.FS, ErrFSMissing},
		{d.Config, ErrConfigMissing},
		{d.Logger, ErrLoggerMissing},
		{d.Prompt, ErrPromptMissing},
		{d.HookManager, ErrHookManagerMissing},
		{d.Progress, ErrProgressMissing},
	}

	for _, check := range checks {
		if check.dep == nil {
			return check.err
		}
	}

	// A nil func boxed in interface{} is not nil.
	if d.StoreProvider == nil {
		return ErrStoreProviderMissing
	}
	if d.ExtractorProvider == nil {
		return ErrExtractorProviderMissing
	}
	return nil
}
