package main

import (
	"fmt"
	"os"

	assetcleaner "github.com/lerenn/asset-cleaner/pkg/asset-cleaner"
	"github.com/spf13/cobra"
)

func createRefsCmd() *cobra.Command {
	var opts assetcleaner.FindReferrersOpts

	refsCmd := &cobra.Command{
		Use:   "refs [path...] [--no-index] [--deep] [--ext <extension>]",
		Short: "List the items referencing a path",
		Long: `List the items directly referencing each given path.

Without a path, an interactive list of every item of the project is shown.
With --no-index every item is asked for its dependencies instead of building the index first.
With --deep the raw content of the files matching the deep search extensions is also
searched for the item GUID, which finds references the dependency graph misses.

Examples:
  ac refs Assets/Textures/wood.png
  ac refs Assets/Materials/Wood.mat Assets/Textures/wood.png --no-index
  ac refs Assets/Prefabs/Player.prefab --deep --ext .json --ext .txt
  ac refs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var acManager assetcleaner.AssetCleaner
			var err error
			if opts.NoIndex && len(args) > 0 {
				acManager, err = newAssetCleaner()
			} else {
				acManager, err = newBuiltAssetCleaner(ctx)
			}
			if err != nil {
				return err
			}

			targets := args
			if len(targets) == 0 {
				selected, err := acManager.PromptSelectItem("Select the item to look up")
				if err != nil {
					return err
				}
				targets = []string{selected}
			}

			for i, target := range targets {
				report, err := acManager.FindReferrers(ctx, target, opts)
				if err != nil {
					return fmt.Errorf("failed to find referrers of %s: %w", target, err)
				}
				if i > 0 {
					fmt.Println()
				}
				writeReferrers(os.Stdout, report)
			}
			return nil
		},
	}

	// Add flags
	refsCmd.Flags().BoolVar(&opts.NoIndex, "no-index", false, "Scan every item instead of using the reference index")
	refsCmd.Flags().BoolVar(&opts.Deep, "deep", false, "Also search raw file content for the item identifier")
	refsCmd.Flags().StringArrayVarP(&opts.Extensions, "ext", "e", nil,
		"Deep search file extension (repeatable, overrides the configuration)")

	return refsCmd
}
