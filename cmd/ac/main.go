// Package main provides the command-line interface for the ac application.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/lerenn/asset-cleaner/cmd/ac/internal/cli"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "ac",
		Short: "Asset Cleaner - unused content finder",
		Long: `A CLI tool that builds the dependency graph of a game project content folder ` +
			`and reports the assets nothing references.`,
		SilenceUsage: true,
	}

	// Add global flags
	rootCmd.PersistentFlags().BoolVarP(&cli.Quiet, "quiet", "q", false, "Suppress all output except errors and results")
	rootCmd.PersistentFlags().BoolVarP(&cli.Verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&cli.ConfigPath, "config", "c", "", "Specify a custom config file path")

	// Add subcommands
	rootCmd.AddCommand(
		createInitCmd(),
		createUnusedCmd(),
		createFoldersCmd(),
		createRefsCmd(),
		createSearchCmd(),
	)

	// Interrupts cancel long builds and scans between batches.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatal(err)
	}
}
