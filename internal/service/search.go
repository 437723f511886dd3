package service

import (
	"context"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/kinoart/internal/domain"
)

// Search performs a server search and ranks the results locally. When the
// server cannot be reached it searches the cached items instead.
func (s *ArtworkService) Search(ctx context.Context, query string) ([]*domain.Item, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	s.logger.Debug("searching", "query", query)

	results, err := s.repo.Search(ctx, query)
	if err != nil {
		s.logger.Warn("server search failed, falling back to cache", "error", err)
		return s.FilterCached(query), nil
	}

	for _, item := range results {
		if err := s.store.SaveItem(item); err != nil {
			s.logger.Warn("failed to cache search result", "item", item.ID, "error", err)
		}
	}

	ranked := rankResults(results, query)
	s.logger.Debug("search complete", "query", query, "results", len(ranked))
	return ranked, nil
}

// FilterCached fuzzy matches the query against the names of every cached item
func (s *ArtworkService) FilterCached(query string) []*domain.Item {
	if query == "" {
		return nil
	}

	items := s.store.AllItems()
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.DisplayTitle()
	}

	matches := fuzzy.RankFindFold(query, names)
	sort.Stable(matches)

	results := make([]*domain.Item, 0, len(matches))
	for _, m := range matches {
		results = append(results, items[m.OriginalIndex])
	}
	return results
}

// rankResults orders server results by how well their names match
func rankResults(items []*domain.Item, query string) []*domain.Item {
	query = strings.ToLower(query)

	type rankedItem struct {
		item  *domain.Item
		score int
	}
	ranked := make([]rankedItem, 0, len(items))
	for _, item := range items {
		ranked = append(ranked, rankedItem{item: item, score: matchScore(strings.ToLower(item.Name), query, item)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score < ranked[j].score
	})

	out := make([]*domain.Item, len(ranked))
	for i, r := range ranked {
		out[i] = r.item
	}
	return out
}

// matchScore is lower for better matches
func matchScore(name, query string, item *domain.Item) int {
	switch {
	case name == query:
		return 0
	case strings.HasPrefix(name, query):
		return 10
	case strings.Contains(name, query):
		return 50
	}

	score := 100 + fuzzy.LevenshteinDistance(query, name)

	// Top-level titles beat episodes and tracks for single-word queries
	if len(strings.Fields(query)) == 1 && (item.Type == domain.KindMovie || item.Type == domain.KindSeries) {
		score -= 10
	}
	return score
}
