package main

import (
	"os"

	"github.com/spf13/cobra"
)

func createFoldersCmd() *cobra.Command {
	var depth int

	foldersCmd := &cobra.Command{
		Use:   "folders [--depth <n>]",
		Short: "Show unused content per folder",
		Long: `Build the reference index of the project and show, for every folder, how many
unused items it holds anywhere beneath it and their total size.

Examples:
  ac folders
  ac folders --depth 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			acManager, err := newBuiltAssetCleaner(cmd.Context())
			if err != nil {
				return err
			}

			report, err := acManager.FindUnused()
			if err != nil {
				return err
			}

			writeFolders(os.Stdout, report.Folders, depth)
			return nil
		},
	}

	// Add flags
	foldersCmd.Flags().IntVarP(&depth, "depth", "d", 0, "Maximum folder depth to print (0 prints everything)")

	return foldersCmd
}
