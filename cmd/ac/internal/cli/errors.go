// Package cli provides common configuration and utility functions for the ac CLI.
package cli

import "errors"

// Error definitions for cli package.
var (
	// Environment loading errors.
	ErrFailedToLoadEnv = errors.New("failed to load .env file")
)
