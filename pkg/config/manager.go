// Package config provides configuration management functionality for the ac command.
package config

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lerenn/asset-cleaner/pkg/fs"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=manager.go -destination=mocks/manager.gen.go -package=mocks

// Manager interface provides configuration management functionality with an embedded config path.
type Manager interface {
	GetConfig() (Config, error)
	GetConfigStrict() (Config, error)
	GetConfigWithFallback() (Config, error)
	SaveConfig(config Config) error
	CreateConfigDirectory() error
	GetConfigPath() string
	SetConfigPath(configPath string)
	DefaultConfig() Config
}

// NewManagerParams contains parameters for creating a new Manager.
type NewManagerParams struct {
	FS         fs.FS
	ConfigPath string
	// LookupEnv resolves environment overrides, os.LookupEnv when nil.
	LookupEnv func(key string) (string, bool)
}

// realManager manages configuration with an embedded config path.
type realManager struct {
	fs         fs.FS
	configPath string
	lookupEnv  func(key string) (string, bool)
}

// NewManager creates a new Manager instance with the specified config path.
func NewManager(configPath string) Manager {
	return NewManagerWithParams(NewManagerParams{ConfigPath: configPath})
}

// NewManagerWithParams creates a new Manager instance from explicit parameters.
func NewManagerWithParams(params NewManagerParams) Manager {
	fsys := params.FS
	if fsys == nil {
		fsys = fs.NewFS()
	}
	return &realManager{
		fs:         fsys,
		configPath: params.ConfigPath,
		lookupEnv:  params.LookupEnv,
	}
}

// GetConfig loads configuration from the embedded config path, applies
// environment overrides and validates the result.
func (c *realManager) GetConfig() (Config, error) {
	exists, err := c.fs.Exists(c.configPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to check config file: %w", err)
	}
	if !exists {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigNotInitialized, c.configPath)
	}

	data, err := c.fs.ReadFile(c.configPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := Parse(data)
	if err != nil {
		return Config{}, err
	}

	return c.finalize(config)
}

// GetConfigStrict loads configuration and returns an error if the file is missing.
func (c *realManager) GetConfigStrict() (Config, error) {
	return c.GetConfig()
}

// GetConfigWithFallback loads the configuration from the embedded config path,
// falling back to the default one when the file does not exist.
func (c *realManager) GetConfigWithFallback() (Config, error) {
	exists, err := c.fs.Exists(c.configPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to check config file: %w", err)
	}
	if exists {
		return c.GetConfig()
	}

	return c.finalize(c.DefaultConfig())
}

// SaveConfig saves configuration to the embedded config path.
func (c *realManager) SaveConfig(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	if err := c.CreateConfigDirectory(); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if err := c.fs.WriteFileAtomic(c.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	return nil
}

// CreateConfigDirectory creates the configuration directory structure.
func (c *realManager) CreateConfigDirectory() error {
	if err := c.fs.MkdirAll(filepath.Dir(c.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}

// GetConfigPath returns the embedded config path.
func (c *realManager) GetConfigPath() string {
	return c.configPath
}

// SetConfigPath updates the embedded config path.
func (c *realManager) SetConfigPath(configPath string) {
	c.configPath = configPath
}

// DefaultConfig returns the default configuration.
func (c *realManager) DefaultConfig() Config {
	return Default()
}

func (c *realManager) finalize(config Config) (Config, error) {
	config, err := ApplyEnv(config, c.lookupEnv)
	if err != nil {
		return Config{}, err
	}

	expanded, err := c.fs.ExpandPath(config.ProjectRoot)
	if err != nil {
		return Config{}, fmt.Errorf("failed to expand project_root: %w", err)
	}
	config.ProjectRoot = expanded

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}
