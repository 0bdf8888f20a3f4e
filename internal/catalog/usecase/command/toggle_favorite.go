package command

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/plant-catalog/internal/catalog/domain"
	"github.com/tair/plant-catalog/pkg/logger"
)

// ToggleFavoriteCommand represents the command to flip a favorite
type ToggleFavoriteCommand struct {
	UserID uint
	ItemID uint
}

// ToggleResult is the pair's state after the toggle
type ToggleResult struct {
	ItemID    uint `json:"item_id"`
	Favorited bool `json:"favorite"`
}

// ToggleFavoriteHandler handles toggle favorite command
type ToggleFavoriteHandler struct {
	items     domain.CatalogRepository
	favorites domain.FavoriteRepository
	publisher domain.EventPublisher
}

// NewToggleFavoriteHandler creates a new toggle favorite handler.
// publisher may be nil.
func NewToggleFavoriteHandler(items domain.CatalogRepository, favorites domain.FavoriteRepository, publisher domain.EventPublisher) *ToggleFavoriteHandler {
	return &ToggleFavoriteHandler{items: items, favorites: favorites, publisher: publisher}
}

// Handle executes the toggle favorite command. The store performs the
// check-and-flip as one atomic step; this handler never retries it.
func (h *ToggleFavoriteHandler) Handle(ctx context.Context, cmd ToggleFavoriteCommand) (*ToggleResult, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("favorites require a user: %w", domain.ErrUnauthorized)
	}
	if cmd.ItemID == 0 {
		return nil, fmt.Errorf("item id is required: %w", domain.ErrInvalidInput)
	}

	// Check if item exists
	if _, err := h.items.FindByID(ctx, cmd.ItemID); err != nil {
		return nil, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	favorited, err := h.favorites.Toggle(ctx, cmd.UserID, cmd.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	h.publish(ctx, domain.FavoriteToggled{
		UserID:     cmd.UserID,
		ItemID:     cmd.ItemID,
		Favorited:  favorited,
		OccurredAt: time.Now().UTC(),
	})

	return &ToggleResult{ItemID: cmd.ItemID, Favorited: favorited}, nil
}

// publish is best effort: the toggle has already committed
func (h *ToggleFavoriteHandler) publish(ctx context.Context, event domain.FavoriteToggled) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishFavoriteToggled(ctx, event); err != nil {
		logger.Warn(ctx).
			Err(err).
			Uint("user_id", event.UserID).
			Uint("item_id", event.ItemID).
			Msg("Failed to publish favorite toggled event")
	}
}
