package query

import (
	"context"
	"fmt"
	"sort"

	"github.com/tair/plant-catalog/internal/catalog/domain"
)

const (
	// DefaultTrendingLimit applies when the caller gives no positive limit
	DefaultTrendingLimit = 3
	// MaxTrendingLimit bounds a single leaderboard
	MaxTrendingLimit = 100
)

// GetTrendingQuery represents the query for the most favorited items
type GetTrendingQuery struct {
	Limit int
}

// GetTrendingHandler handles get trending query
type GetTrendingHandler struct {
	repo domain.FavoriteRepository
}

// NewGetTrendingHandler creates a new get trending handler
func NewGetTrendingHandler(repo domain.FavoriteRepository) *GetTrendingHandler {
	return &GetTrendingHandler{repo: repo}
}

// Handle recomputes the leaderboard from the current edge counts
func (h *GetTrendingHandler) Handle(ctx context.Context, query GetTrendingQuery) ([]domain.TrendingEntry, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}
	if limit > MaxTrendingLimit {
		limit = MaxTrendingLimit
	}

	entries, err := h.repo.FavoriteCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute trending: %w", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].FavoriteCount != entries[j].FavoriteCount {
			return entries[i].FavoriteCount > entries[j].FavoriteCount
		}
		return entries[i].Item.ID < entries[j].Item.ID
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	if entries == nil {
		entries = []domain.TrendingEntry{}
	}
	return entries, nil
}
