package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmcdole/kinoart/internal/adapter"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the item cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cached items",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Cache.Dir == "" {
				fmt.Println(styleDim.Render("cache is memory only, nothing to clear"))
				return nil
			}
			if err := adapter.ClearCache(cfg.Cache.Dir); err != nil {
				return err
			}
			fmt.Println(styleSuccess.Render("✓ Cleared " + cfg.Cache.Dir))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			dir := cfg.Cache.Dir
			if dir == "" {
				fmt.Println(styleDim.Render("memory only"))
				return nil
			}
			fmt.Println(dir)
			return nil
		},
	})

	return cmd
}
