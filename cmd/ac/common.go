package main

import (
	"context"
	"fmt"

	"github.com/lerenn/asset-cleaner/cmd/ac/internal/cli"
	assetcleaner "github.com/lerenn/asset-cleaner/pkg/asset-cleaner"
)

// newBuiltAssetCleaner checks the initialization, creates the asset cleaner
// and builds the reference index of the project.
func newBuiltAssetCleaner(ctx context.Context) (assetcleaner.AssetCleaner, error) {
	acManager, err := newAssetCleaner()
	if err != nil {
		return nil, err
	}

	res, err := acManager.Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build reference index: %w", err)
	}
	if !cli.Quiet && res.Stats.Failed > 0 {
		fmt.Printf("Warning: %d items could not be read during the build\n", res.Stats.Failed)
	}
	return acManager, nil
}

// newAssetCleaner checks the initialization and creates the asset cleaner.
func newAssetCleaner() (assetcleaner.AssetCleaner, error) {
	if err := cli.CheckInitialization(); err != nil {
		return nil, err
	}
	return cli.NewAssetCleaner()
}
