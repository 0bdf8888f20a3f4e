package query

import (
	"context"
	"fmt"

	"github.com/tair/plant-catalog/internal/catalog/domain"
)

// GetItemQuery represents the query to get an item by ID.
// UserID is zero for guests.
type GetItemQuery struct {
	ItemID uint
	UserID uint
}

// ItemView is an item with the caller's favorite flag
type ItemView struct {
	domain.Item
	IsFavorite *bool `json:"is_favorite,omitempty"`
}

// GetItemHandler handles get item query
type GetItemHandler struct {
	items     domain.CatalogRepository
	favorites domain.FavoriteRepository
}

// NewGetItemHandler creates a new get item handler
func NewGetItemHandler(items domain.CatalogRepository, favorites domain.FavoriteRepository) *GetItemHandler {
	return &GetItemHandler{items: items, favorites: favorites}
}

// Handle executes the get item query
func (h *GetItemHandler) Handle(ctx context.Context, query GetItemQuery) (*ItemView, error) {
	if query.ItemID == 0 {
		return nil, fmt.Errorf("item id is required: %w", domain.ErrInvalidInput)
	}

	item, err := h.items.FindByID(ctx, query.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	view := &ItemView{Item: *item}
	if query.UserID != 0 {
		favorited, err := h.favorites.IsFavorite(ctx, query.UserID, query.ItemID)
		if err != nil {
			return nil, fmt.Errorf("failed to check favorite: %w", err)
		}
		view.IsFavorite = &favorited
	}
	return view, nil
}
