package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/lerenn/asset-cleaner/configs"
	"github.com/lerenn/asset-cleaner/pkg/roots"
)

// Config represents the application configuration.
type Config struct {
	ProjectRoot        string           `yaml:"project_root"`
	ContentDir         string           `yaml:"content_dir"`
	IgnorePatterns     []string         `yaml:"ignore_patterns"`
	Roots              RootsConfig      `yaml:"roots"`
	DeepSearch         DeepSearchConfig `yaml:"deep_search"`
	ProgressBatch      int              `yaml:"progress_batch"`
	ExtractorCacheSize int              `yaml:"extractor_cache_size"`
}

// RootsConfig configures the root classifier rules.
type RootsConfig struct {
	SceneExtensions []string `yaml:"scene_extensions"`
	ForceLoadedDirs []string `yaml:"force_loaded_dirs"`
	EditorDirs      []string `yaml:"editor_dirs"`
	StreamingDirs   []string `yaml:"streaming_dirs"`
}

// Rules converts the configuration into classifier rules.
func (r RootsConfig) Rules() roots.Rules {
	return roots.Rules{
		SceneExtensions: r.SceneExtensions,
		ForceLoadedDirs: r.ForceLoadedDirs,
		EditorDirs:      r.EditorDirs,
		StreamingDirs:   r.StreamingDirs,
	}
}

// DeepSearchConfig configures the full-text scan.
type DeepSearchConfig struct {
	Enabled    bool     `yaml:"enabled"`
	Extensions []string `yaml:"extensions"`
	Workers    int      `yaml:"workers"`
}

// Default returns the configuration embedded in the binary.
func Default() Config {
	rules := roots.DefaultRules()
	cfg := Config{
		ProjectRoot: ".",
		ContentDir:  "Assets",
		Roots: RootsConfig{
			SceneExtensions: rules.SceneExtensions,
			ForceLoadedDirs: rules.ForceLoadedDirs,
			EditorDirs:      rules.EditorDirs,
			StreamingDirs:   rules.StreamingDirs,
		},
		ProgressBatch:      200,
		ExtractorCacheSize: 4096,
	}

	// The embedded file is authoritative; the literal above only covers a broken build.
	_ = yaml.Unmarshal(configs.DefaultConfigYAML, &cfg)
	return cfg
}

// Parse decodes YAML on top of the default configuration, so omitted keys keep
// their default value.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfigFileParse, err)
	}
	return cfg, nil
}

// Validate validates the configuration values.
func (c Config) Validate() error {
	switch {
	case c.ProjectRoot == "":
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrProjectRootEmpty)
	case c.ContentDir == "":
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrContentDirEmpty)
	case c.DeepSearch.Workers < 0:
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrNegativeWorkers)
	case c.ProgressBatch <= 0:
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrInvalidProgressBatch)
	case c.ExtractorCacheSize < 0:
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrInvalidCacheSize)
	}
	return nil
}
