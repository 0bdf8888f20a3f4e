package query

import (
	"context"
	"fmt"

	"github.com/tair/plant-catalog/internal/catalog/domain"
)

// GetStatsQuery represents the query to get catalog statistics
type GetStatsQuery struct{}

// CatalogStats represents catalog statistics
type CatalogStats struct {
	TotalItems     int64   `json:"total_items"`
	TotalFavorites int64   `json:"total_favorites"`
	FavoritedItems int64   `json:"favorited_items"`
	AverageCost    float64 `json:"average_cost"`
	MinCost        float64 `json:"min_cost"`
	MaxCost        float64 `json:"max_cost"`
}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	repo domain.FavoriteRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.FavoriteRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(ctx context.Context, query GetStatsQuery) (*CatalogStats, error) {
	// one pass over the per-item counts covers both the catalog and the edges
	entries, err := h.repo.FavoriteCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog stats: %w", err)
	}

	stats := &CatalogStats{TotalItems: int64(len(entries))}
	var totalCost float64
	for i, e := range entries {
		stats.TotalFavorites += e.FavoriteCount
		if e.FavoriteCount > 0 {
			stats.FavoritedItems++
		}
		totalCost += e.Item.Cost
		if i == 0 || e.Item.Cost < stats.MinCost {
			stats.MinCost = e.Item.Cost
		}
		if e.Item.Cost > stats.MaxCost {
			stats.MaxCost = e.Item.Cost
		}
	}

	if stats.TotalItems > 0 {
		stats.AverageCost = totalCost / float64(stats.TotalItems)
	}

	return stats, nil
}
