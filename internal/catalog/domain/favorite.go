package domain

import "time"

// Favorite is the (user, item) membership edge. At most one exists per pair.
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_favorites_user_item"`
	ItemID    uint      `json:"item_id" gorm:"not null;uniqueIndex:idx_user_favorites_user_item;index"`
	Item      *Item     `json:"-" gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Favorite) TableName() string {
	return "user_favorites"
}
