package cli

import (
	"os"
	"path/filepath"

	"github.com/lerenn/asset-cleaner/pkg/config"
)

var (
	// Quiet suppresses all output except errors and results.
	Quiet bool
	// Verbose enables verbose output.
	Verbose bool
	// ConfigPath specifies a custom config file path.
	ConfigPath string
)

// NewConfigManager creates a new Manager with the appropriate config path.
func NewConfigManager() config.Manager {
	return config.NewManager(GetConfigPath())
}

// GetConfigPath returns the config file path used by the CLI.
func GetConfigPath() string {
	if ConfigPath != "" {
		return ConfigPath
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".ac", "config.yaml")
}

// CheckInitialization checks that ac can find a project: either a configuration
// file exists or the project root is given through the environment.
func CheckInitialization() error {
	if root, ok := os.LookupEnv(config.EnvProjectRoot); ok && root != "" {
		return nil
	}

	_, err := NewConfigManager().GetConfigStrict()
	return err
}
