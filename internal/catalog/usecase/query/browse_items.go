package query

import (
	"context"
	"fmt"
	"sort"

	"github.com/tair/plant-catalog/internal/catalog/domain"
)

// BrowseItemsQuery represents a browse or filter request
type BrowseItemsQuery struct {
	Criteria domain.Criteria
}

// BrowseItemsHandler handles browse items query
type BrowseItemsHandler struct {
	repo domain.CatalogRepository
}

// NewBrowseItemsHandler creates a new browse items handler
func NewBrowseItemsHandler(repo domain.CatalogRepository) *BrowseItemsHandler {
	return &BrowseItemsHandler{repo: repo}
}

// Handle returns the catalog in id order when no text criteria are given,
// otherwise the matching items by descending relevance with ascending id
// breaking ties. The cost ceiling applies in both modes.
func (h *BrowseItemsHandler) Handle(ctx context.Context, query BrowseItemsQuery) ([]domain.Item, error) {
	composed := domain.Compose(query.Criteria)

	if !composed.RankingActive {
		items, err := h.repo.FindAll(ctx, composed.MaxCost)
		if err != nil {
			return nil, fmt.Errorf("failed to list items: %w", err)
		}
		if items == nil {
			items = []domain.Item{}
		}
		return items, nil
	}

	scored, err := h.repo.Search(ctx, composed.SearchText, composed.MaxCost)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}

	return rank(scored, composed.MaxCost), nil
}

// rank drops non-matches and orders by score desc, id asc
func rank(scored []domain.ScoredItem, maxCost *float64) []domain.Item {
	matches := make([]domain.ScoredItem, 0, len(scored))
	for _, s := range scored {
		if s.Score > 0 && s.Item.WithinCost(maxCost) {
			matches = append(matches, s)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Item.ID < matches[j].Item.ID
	})

	items := make([]domain.Item, len(matches))
	for i, m := range matches {
		items[i] = m.Item
	}
	return items
}
