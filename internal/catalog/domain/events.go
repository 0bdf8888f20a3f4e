package domain

import "time"

// FavoriteToggled is emitted after a toggle commits
type FavoriteToggled struct {
	UserID     uint
	ItemID     uint
	Favorited  bool
	OccurredAt time.Time
}
