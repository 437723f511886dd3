package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mmcdole/kinoart/internal/page"
	"github.com/mmcdole/kinoart/internal/tui"
)

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse libraries and inspect artwork (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd.Context())
		},
	}
}

func runBrowse(ctx context.Context) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	routes, err := a.cfg.RouteTable()
	if err != nil {
		return fmt.Errorf("invalid route config: %w", err)
	}
	nav := page.NewNavigator(page.NewStore(), routes, a.logger)

	model := tui.NewModel(a.svc, a.decoder, nav, a.imageDefaults(), a.logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	a.logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	a.logger.Info("shutting down")
	return nil
}
