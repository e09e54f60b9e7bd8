package main

import (
	"github.com/lerenn/asset-cleaner/cmd/ac/internal/cli"
	assetcleaner "github.com/lerenn/asset-cleaner/pkg/asset-cleaner"
	"github.com/spf13/cobra"
)

func createInitCmd() *cobra.Command {
	var opts assetcleaner.InitOpts

	initCmd := &cobra.Command{
		Use:   "init [--force] [--project-root <path>] [--content-dir <dir>] [--non-interactive]",
		Short: "Initialize ac configuration",
		Long: `Initialize ac configuration with interactive prompts or direct path specification.

Flags:
  --force            Overwrite an existing configuration without confirmation
  --project-root     Set the project directory directly (skips interactive prompt)
  --content-dir      Content directory relative to the project root (default: Assets)
  --non-interactive  Never prompt, use flags and defaults`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			acManager, err := cli.NewAssetCleaner()
			if err != nil {
				return err
			}

			return acManager.Init(opts)
		},
	}

	// Add flags
	initCmd.Flags().BoolVarP(&opts.Force, "force", "f", false,
		"Overwrite an existing configuration without confirmation")
	initCmd.Flags().StringVarP(&opts.ProjectRoot, "project-root", "p", "",
		"Set the project directory directly (skips interactive prompt)")
	initCmd.Flags().StringVar(&opts.ContentDir, "content-dir", "",
		"Content directory relative to the project root")
	initCmd.Flags().BoolVar(&opts.NonInteractive, "non-interactive", false, "Never prompt, use flags and defaults")

	return initCmd
}
