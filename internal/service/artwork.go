package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmcdole/kinoart/internal/artwork"
	"github.com/mmcdole/kinoart/internal/domain"
	"github.com/mmcdole/kinoart/internal/metrics"
)

// ArtworkService loads items through the cache and resolves their artwork
type ArtworkService struct {
	repo     domain.ItemRepository
	store    domain.ItemStore
	resolver *artwork.Resolver
	logger   *slog.Logger
}

// NewArtworkService wires a repository, its cache and a resolver together
func NewArtworkService(repo domain.ItemRepository, store domain.ItemStore, resolver *artwork.Resolver, logger *slog.Logger) *ArtworkService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArtworkService{repo: repo, store: store, resolver: resolver, logger: logger}
}

// Resolver returns the artwork resolver
func (s *ArtworkService) Resolver() *artwork.Resolver {
	return s.resolver
}

// Item returns an item, from the cache when possible
func (s *ArtworkService) Item(ctx context.Context, itemID string) (*domain.Item, error) {
	if item, ok := s.store.GetItem(itemID); ok {
		metrics.ItemCacheLookups.WithLabelValues("hit").Inc()
		return item, nil
	}
	metrics.ItemCacheLookups.WithLabelValues("miss").Inc()
	return s.fetch(ctx, itemID)
}

// Detail always asks the server so that cast lists are current, and falls
// back to the cached record when the server is unreachable.
func (s *ArtworkService) Detail(ctx context.Context, itemID string) (*domain.Item, error) {
	item, err := s.fetch(ctx, itemID)
	if err == nil {
		return item, nil
	}
	if errors.Is(err, domain.ErrServerOffline) {
		if cached, ok := s.store.GetItem(itemID); ok {
			s.logger.Warn("server offline, using cached item", "item", itemID)
			return cached, nil
		}
	}
	return nil, err
}

func (s *ArtworkService) fetch(ctx context.Context, itemID string) (*domain.Item, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", itemID, err)
	}
	if err := s.store.SaveItem(item); err != nil {
		s.logger.Warn("failed to cache item", "item", itemID, "error", err)
	}
	return item, nil
}

// Views returns the user's libraries
func (s *ArtworkService) Views(ctx context.Context) ([]*domain.Item, error) {
	return s.list(ctx, "", func(ctx context.Context) ([]*domain.Item, error) {
		return s.repo.GetViews(ctx)
	})
}

// Children returns the children of an item
func (s *ArtworkService) Children(ctx context.Context, parentID string) ([]*domain.Item, error) {
	return s.list(ctx, parentID, func(ctx context.Context) ([]*domain.Item, error) {
		return s.repo.GetChildren(ctx, parentID)
	})
}

func (s *ArtworkService) list(ctx context.Context, parentID string, load func(context.Context) ([]*domain.Item, error)) ([]*domain.Item, error) {
	if items, ok := s.store.GetChildren(parentID); ok {
		metrics.ItemCacheLookups.WithLabelValues("hit").Inc()
		return items, nil
	}
	metrics.ItemCacheLookups.WithLabelValues("miss").Inc()

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveChildren(parentID, items); err != nil {
		s.logger.Warn("failed to cache children", "parent", parentID, "error", err)
	}
	return items, nil
}

// Refresh drops cached data for an item and its children, or everything when
// itemID is empty
func (s *ArtworkService) Refresh(itemID string) {
	if itemID == "" {
		s.store.InvalidateAll()
		s.logger.Debug("cache cleared")
		return
	}
	s.store.Invalidate(itemID)
	s.logger.Debug("item invalidated", "item", itemID)
}

// ImageInfo resolves the image for an item by id
func (s *ArtworkService) ImageInfo(ctx context.Context, itemID string, opts artwork.Options) (domain.ImageURLInfo, domain.ImageSelection, error) {
	item, err := s.Item(ctx, itemID)
	if err != nil {
		return domain.ImageURLInfo{}, domain.ImageSelection{}, err
	}
	info, sel := s.Explain(item, opts)
	return info, sel, nil
}

// Explain resolves the image for a loaded item and records the matched rule
func (s *ArtworkService) Explain(item *domain.Item, opts artwork.Options) (domain.ImageURLInfo, domain.ImageSelection) {
	info, sel := s.resolver.Explain(item, opts)
	metrics.ImageSelectionsTotal.WithLabelValues(sel.Rule).Inc()
	return info, sel
}

// Logo resolves the logo for an item by id
func (s *ArtworkService) Logo(ctx context.Context, itemID string, opts artwork.LogoOptions) (domain.ImageURLInfo, error) {
	item, err := s.Item(ctx, itemID)
	if err != nil {
		return domain.ImageURLInfo{}, err
	}
	return s.resolver.Logo(item, opts), nil
}

// BackdropHash returns the blurhash of the backdrop shown behind an item's
// detail page: its own first backdrop, else the inherited one
func BackdropHash(item *domain.Item) string {
	return artwork.Blurhash(item, domain.ImageBackdrop, 0, true)
}
