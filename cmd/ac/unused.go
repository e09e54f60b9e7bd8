package main

import (
	"os"

	assetcleaner "github.com/lerenn/asset-cleaner/pkg/asset-cleaner"
	"github.com/spf13/cobra"
)

func createUnusedCmd() *cobra.Command {
	var format string
	var ignorePatterns []string

	unusedCmd := &cobra.Command{
		Use:   "unused [--format text|yaml] [--ignore <pattern>]",
		Short: "List content nothing references",
		Long: `Build the reference index of the project and list the items that are neither
referenced by another item, structural roots (scenes, Resources, Editor...), nor ignored.

Detection is one hop only: an item referenced only by unused items is still reported as used.

Examples:
  ac unused
  ac unused --format yaml > unused.yaml
  ac unused --ignore ThirdParty --ignore .shader`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			acManager, err := newBuiltAssetCleaner(cmd.Context())
			if err != nil {
				return err
			}

			report, err := acManager.FindUnused(assetcleaner.FindUnusedOpts{IgnorePatterns: ignorePatterns})
			if err != nil {
				return err
			}

			return writeUnused(os.Stdout, report, format)
		},
	}

	// Add flags
	unusedCmd.Flags().StringVarP(&format, "format", "o", formatText, "Output format (text or yaml)")
	unusedCmd.Flags().StringArrayVarP(&ignorePatterns, "ignore", "i", nil,
		"Additional substring to ignore (repeatable)")

	return unusedCmd
}
