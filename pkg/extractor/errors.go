package extractor

import "errors"

// Error definitions for extractor package.
var (
	ErrInvalidCacheSize = errors.New("extractor cache size must be positive")
	ErrMetaParse        = errors.New("failed to parse meta file")
)
