package query

import (
	"context"
	"fmt"

	"github.com/tair/plant-catalog/internal/catalog/domain"
)

// ListFavoritesQuery represents the query to list a user's favorites
type ListFavoritesQuery struct {
	UserID uint
}

// ListFavoritesHandler handles list favorites query
type ListFavoritesHandler struct {
	repo domain.FavoriteRepository
}

// NewListFavoritesHandler creates a new list favorites handler
func NewListFavoritesHandler(repo domain.FavoriteRepository) *ListFavoritesHandler {
	return &ListFavoritesHandler{repo: repo}
}

// Handle returns the favorited items ordered by id
func (h *ListFavoritesHandler) Handle(ctx context.Context, query ListFavoritesQuery) ([]domain.Item, error) {
	if query.UserID == 0 {
		return nil, fmt.Errorf("favorites require a user: %w", domain.ErrUnauthorized)
	}

	items, err := h.repo.ListFavorites(ctx, query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	if items == nil {
		items = []domain.Item{}
	}
	return items, nil
}

// IsFavoriteQuery represents the query to check a single favorite
type IsFavoriteQuery struct {
	UserID uint
	ItemID uint
}

// IsFavoriteHandler handles is favorite query
type IsFavoriteHandler struct {
	repo domain.FavoriteRepository
}

// NewIsFavoriteHandler creates a new is favorite handler
func NewIsFavoriteHandler(repo domain.FavoriteRepository) *IsFavoriteHandler {
	return &IsFavoriteHandler{repo: repo}
}

// Handle executes the is favorite query
func (h *IsFavoriteHandler) Handle(ctx context.Context, query IsFavoriteQuery) (bool, error) {
	if query.UserID == 0 {
		return false, fmt.Errorf("favorites require a user: %w", domain.ErrUnauthorized)
	}
	if query.ItemID == 0 {
		return false, fmt.Errorf("item id is required: %w", domain.ErrInvalidInput)
	}

	favorited, err := h.repo.IsFavorite(ctx, query.UserID, query.ItemID)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return favorited, nil
}
