package config

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables overriding the configuration file.
const (
	EnvProjectRoot    = "AC_PROJECT_ROOT"
	EnvIgnorePatterns = "AC_IGNORE_PATTERNS"
	EnvDeepSearch     = "AC_DEEP_SEARCH"
)

// LoadDotEnv loads the given env files (".env" when none) into the process
// environment. Missing files are not an error and existing variables win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, iofs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// ApplyEnv returns cfg with the environment overrides found through lookup applied.
func ApplyEnv(cfg Config, lookup func(key string) (string, bool)) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if v, ok := lookup(EnvProjectRoot); ok && strings.TrimSpace(v) != "" {
		cfg.ProjectRoot = strings.TrimSpace(v)
	}

	if v, ok := lookup(EnvIgnorePatterns); ok {
		var patterns []string
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				patterns = append(patterns, p)
			}
		}
		cfg.IgnorePatterns = patterns
	}

	if v, ok := lookup(EnvDeepSearch); ok && strings.TrimSpace(v) != "" {
		enabled, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalidEnvValue, EnvDeepSearch, err)
		}
		cfg.DeepSearch.Enabled = enabled
	}

	return cfg, nil
}
