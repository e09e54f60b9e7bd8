package config

import "errors"

// Error definitions for config package.
var (
	// Configuration file errors.
	ErrConfigFileParse = errors.New("failed to parse config file")
	// Configuration validation errors.
	ErrInvalidConfig        = errors.New("invalid configuration")
	ErrProjectRootEmpty     = errors.New("project_root cannot be empty")
	ErrContentDirEmpty      = errors.New("content_dir cannot be empty")
	ErrNegativeWorkers      = errors.New("deep_search.workers cannot be negative")
	ErrInvalidProgressBatch = errors.New("progress_batch must be positive")
	ErrInvalidCacheSize     = errors.New("extractor_cache_size cannot be negative")
	// Environment override errors.
	ErrInvalidEnvValue = errors.New("invalid environment value")
	// Configuration initialization errors.
	ErrConfigNotInitialized = errors.New("ac configuration not found. Run 'ac init' to initialize")
)
