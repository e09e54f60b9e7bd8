package assetcleaner

import (
	"fmt"
	"path/filepath"

	"github.com/lerenn/asset-cleaner/pkg/asset-cleaner/consts"
	"github.com/lerenn/asset-cleaner/pkg/catalog"
	"github.com/lerenn/asset-cleaner/pkg/config"
)

// InitOpts contains optional parameters for Init.
type InitOpts struct {
	Force          bool
	NonInteractive bool
	ProjectRoot    string
	ContentDir     string
}

// Init initializes the ac configuration.
func (c *realAssetCleaner) Init(opts InitOpts) error {
	// Prepare parameters for hooks
	params := map[string]interface{}{
		"force":          opts.Force,
		"nonInteractive": opts.NonInteractive,
		"projectRoot":    opts.ProjectRoot,
		"contentDir":     opts.ContentDir,
	}

	// Execute with hooks
	return c.executeWithHooks(consts.Init, params, func(results map[string]interface{}) error {
		cfg, err := c.performInitialization(opts)
		if err != nil {
			return err
		}
		results["projectRoot"] = cfg.ProjectRoot
		results["configPath"] = c.deps.Config.GetConfigPath()
		return nil
	})
}

// performInitialization performs the actual initialization logic.
func (c *realAssetCleaner) performInitialization(opts InitOpts) (config.Config, error) {
	c.VerbosePrint("Starting ac initialization")

	if err := c.checkExistingConfig(opts); err != nil {
		return config.Config{}, err
	}

	cfg := c.deps.Config.DefaultConfig()

	projectRoot, err := c.getAndValidateProjectRoot(opts.ProjectRoot, cfg.ProjectRoot, opts.NonInteractive)
	if err != nil {
		return config.Config{}, err
	}
	cfg.ProjectRoot = projectRoot

	if opts.ContentDir != "" {
		cfg.ContentDir = filepath.ToSlash(opts.ContentDir)
	}

	contentDir := filepath.Join(cfg.ProjectRoot, filepath.FromSlash(cfg.ContentDir))
	exists, err := c.deps.FS.Exists(contentDir)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to check content directory: %w", err)
	}
	if !exists {
		return config.Config{}, fmt.Errorf("%w: %s", catalog.ErrContentDirNotFound, contentDir)
	}

	if err := c.deps.Config.SaveConfig(cfg); err != nil {
		return config.Config{}, fmt.Errorf("failed to save config: %w", err)
	}

	c.printInitializationSuccess(cfg)
	return cfg, nil
}

// checkExistingConfig asks before overwriting an existing configuration.
func (c *realAssetCleaner) checkExistingConfig(opts InitOpts) error {
	configPath := c.deps.Config.GetConfigPath()
	exists, err := c.deps.FS.Exists(configPath)
	if err != nil {
		return fmt.Errorf("failed to check config existence: %w", err)
	}
	if !exists || opts.Force {
		return nil
	}

	if opts.NonInteractive {
		return fmt.Errorf("%w: %s", ErrAlreadyInitialized, configPath)
	}

	confirmed, err := c.deps.Prompt.PromptForConfirmation(
		fmt.Sprintf("Configuration already exists at %s. Overwrite?", configPath), false)
	if err != nil {
		return fmt.Errorf("failed to get confirmation: %w", err)
	}
	if !confirmed {
		return ErrInitCancelled
	}
	return nil
}

// getAndValidateProjectRoot gets the project root from flag, prompt, or default
// and returns it as an absolute path.
func (c *realAssetCleaner) getAndValidateProjectRoot(
	flagProjectRoot, defaultProjectRoot string, nonInteractive bool) (string, error) {
	projectRoot := flagProjectRoot
	if projectRoot == "" && !nonInteractive {
		var err error
		projectRoot, err = c.deps.Prompt.PromptForProjectRoot(defaultProjectRoot)
		if err != nil {
			return "", fmt.Errorf("failed to get project root: %w", err)
		}
	}
	if projectRoot == "" {
		projectRoot = defaultProjectRoot
	}

	expanded, err := c.deps.FS.ExpandPath(projectRoot)
	if err != nil {
		return "", fmt.Errorf("failed to expand project root: %w", err)
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project root: %w", err)
	}
	return abs, nil
}

// printInitializationSuccess prints the success message and configuration details.
func (c *realAssetCleaner) printInitializationSuccess(cfg config.Config) {
	c.VerbosePrint("ac initialization completed successfully")
	fmt.Printf("ac initialized successfully!\n")
	fmt.Printf("Project root: %s\n", cfg.ProjectRoot)
	fmt.Printf("Content directory: %s\n", cfg.ContentDir)
	fmt.Printf("Configuration: %s\n", c.deps.Config.GetConfigPath())
}
