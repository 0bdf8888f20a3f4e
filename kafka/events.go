package kafka

import "time"

// FavoriteToggledEvent is published after a favorite toggle commits
type FavoriteToggledEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	UserID    uint      `json:"user_id"`
	ItemID    uint      `json:"item_id"`
	Favorited bool      `json:"favorited"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeFavoriteToggled = "favorite.toggled"
)

// Kafka topics
const (
	TopicFavoriteToggled = "favorite-toggled"
)
