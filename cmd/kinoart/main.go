package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags
var Version = "dev"

// configDir overrides the config directory; empty means the OS default
var configDir string

func main() {
	rootCmd := &cobra.Command{
		Use:   "kinoart",
		Short: "Browse and resolve Jellyfin artwork",
		Long: "Kinoart picks the image Jellyfin clients would show for an item, builds its URL\n" +
			"and renders blurhash placeholders, from the terminal or over HTTP.",
		Version: Version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory holding config.yaml")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(
		newBrowseCmd(),
		newImageCmd(),
		newLogoCmd(),
		newPlaceholderCmd(),
		newFeaturesCmd(),
		newServeCmd(),
		newSetupCmd(),
		newLogoutCmd(),
		newCacheCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
