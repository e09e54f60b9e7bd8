package main

import (
	"os"

	assetcleaner "github.com/lerenn/asset-cleaner/pkg/asset-cleaner"
	"github.com/spf13/cobra"
)

func createSearchCmd() *cobra.Command {
	var opts assetcleaner.DeepScanOpts

	searchCmd := &cobra.Command{
		Use:   "search <identifier> [--ext <extension>]",
		Short: "Search raw file content for an identifier",
		Long: `Search the raw content of every file matching the deep search extensions for
an identifier (a GUID, a file name, a type name...) and list the matching files.

Examples:
  ac search 0123456789abcdef0123456789abcdef
  ac search PlayerController --ext .cs --ext .prefab`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			acManager, err := newAssetCleaner()
			if err != nil {
				return err
			}

			report, err := acManager.DeepScan(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}

			writeDeepScan(os.Stdout, report)
			return nil
		},
	}

	// Add flags
	searchCmd.Flags().StringArrayVarP(&opts.Extensions, "ext", "e", nil,
		"File extension to search (repeatable, overrides the configuration)")

	return searchCmd
}
