// Package main is the entry point for the marquee CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	registerQuitHandler()
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "marquee",
		Short:        "Menu selector with live previews of the highlighted item",
		Version:      version,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "path to marquee.toml (default: search upwards from the working directory)")

	root.AddCommand(
		selectCmd(),
		replCmd(),
		statusCmd(),
		initCmd(),
		itemsCmd(),
	)

	return root
}
