// Package assetcleaner provides the asset cleaner facade and its error definitions.
package assetcleaner

import (
	"errors"
	"fmt"

	"github.com/lerenn/asset-cleaner/pkg/graph"
)

// Error definitions for assetcleaner package.
var (
	// Session errors.
	ErrNotBuilt = fmt.Errorf("no build in this session, run a build first: %w", graph.ErrUnbuiltIndex)

	// Query errors.
	ErrTargetEmpty     = errors.New("target path cannot be empty")
	ErrIdentifierEmpty = errors.New("identifier cannot be empty")

	// Initialization errors.
	ErrAlreadyInitialized = errors.New("configuration already exists, use --force to overwrite")
	ErrInitCancelled      = errors.New("initialization cancelled by user")
)
