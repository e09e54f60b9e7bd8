package cli

import (
	"fmt"

	assetcleaner "github.com/lerenn/asset-cleaner/pkg/asset-cleaner"
	"github.com/lerenn/asset-cleaner/pkg/config"
	"github.com/lerenn/asset-cleaner/pkg/dependencies"
	defaulthooks "github.com/lerenn/asset-cleaner/pkg/hooks/default"
	"github.com/lerenn/asset-cleaner/pkg/logger"
	"github.com/lerenn/asset-cleaner/pkg/progress"
)

// NewAssetCleaner creates a new AssetCleaner instance with the appropriate ConfigManager.
// The .env file of the working directory is loaded first so its overrides apply.
func NewAssetCleaner() (assetcleaner.AssetCleaner, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadEnv, err)
	}

	deps, err := newDependencies()
	if err != nil {
		return nil, err
	}

	return assetcleaner.NewAssetCleaner(assetcleaner.NewAssetCleanerParams{
		Dependencies: deps,
	})
}

// newDependencies wires logging, hooks and progress according to the output flags.
func newDependencies() (*dependencies.Dependencies, error) {
	deps := dependencies.New().
		WithConfig(NewConfigManager())

	if !Verbose || Quiet {
		return deps, nil
	}

	l := logger.NewVerboseLogger()
	hm, err := defaulthooks.NewDefaultHooksManager(l)
	if err != nil {
		return nil, err
	}

	return deps.
		WithLogger(l).
		WithHookManager(hm).
		WithProgress(progress.NewLoggerReporter(l)), nil
}
