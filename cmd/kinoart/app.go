package main

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/kinoart/internal/adapter"
	"github.com/mmcdole/kinoart/internal/adapter/source/jellyfin"
	"github.com/mmcdole/kinoart/internal/artwork"
	"github.com/mmcdole/kinoart/internal/placeholder"
	"github.com/mmcdole/kinoart/internal/service"
	"github.com/mmcdole/kinoart/internal/store"
)

var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(10)
	styleHeader  = lipgloss.NewStyle().Bold(true)
)

// app holds the wired components shared by the commands
type app struct {
	cfg     *adapter.Config
	logger  *slog.Logger
	store   *store.ItemStore
	svc     *service.ArtworkService
	decoder *placeholder.Decoder
}

func loadConfig() (*adapter.Config, *slog.Logger, error) {
	cfg, err := adapter.NewLoader(configDir).Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// newApp connects to the configured server
func newApp() (*app, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireServer(); err != nil {
		return nil, err
	}

	logger.Info("starting kinoart", "version", Version, "server", cfg.Server.URL)

	client := jellyfin.NewClient(cfg.Server.URL, cfg.Server.Token, cfg.Server.UserID, logger)

	itemStore, err := store.NewItemStore(cfg.Cache.Dir, cfg.Server.URL)
	if err != nil {
		logger.Warn("failed to open cache, continuing in memory", "error", err)
		itemStore, _ = store.NewItemStore("", "")
	}

	resolver, err := artwork.NewResolver(cfg.Server.URL, logger)
	if err != nil {
		itemStore.Close()
		return nil, err
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		store:   itemStore,
		svc:     service.NewArtworkService(client, itemStore, resolver, logger),
		decoder: placeholder.NewDecoder(cfg.Placeholder.Workers, logger),
	}, nil
}

func (a *app) Close() {
	a.decoder.Close()
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close cache", "error", err)
	}
}

// imageDefaults returns the configured image options
func (a *app) imageDefaults() artwork.Options {
	return artwork.Options{
		Quality: a.cfg.Images.Quality,
		Width:   a.cfg.Images.Width,
		Ratio:   a.cfg.Images.Ratio,
	}
}
