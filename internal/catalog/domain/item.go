package domain

import "time"

// Item represents a plant in the catalog
type Item struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"not null"`
	ScientificName string    `json:"scientific_name" gorm:"uniqueIndex"`
	ImageURL       string    `json:"image_url"`
	Description    string    `json:"description"`
	HowToGrow      string    `json:"how_to_grow"`
	HealthBenefit  string    `json:"health_benefit"`
	FoundInNature  string    `json:"found_in_nature"`
	Citation       string    `json:"citation"`
	Cost           float64   `json:"cost" gorm:"type:numeric(10,2);not null;default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Item) TableName() string {
	return "items"
}

// SearchableText joins the fields covered by relevance scoring.
// ImageURL is deliberately excluded.
func (i *Item) SearchableText() string {
	return i.Name + " " + i.ScientificName + " " + i.Description + " " +
		i.HowToGrow + " " + i.HealthBenefit + " " + i.FoundInNature + " " + i.Citation
}

// WithinCost reports whether the item satisfies an optional cost ceiling
func (i *Item) WithinCost(maxCost *float64) bool {
	return maxCost == nil || i.Cost <= *maxCost
}

// ScoredItem is an item together with its store-computed relevance score
type ScoredItem struct {
	Item  Item
	Score float64
}

// TrendingEntry is an item and the number of users who favorited it
type TrendingEntry struct {
	Item          Item  `json:"item"`
	FavoriteCount int64 `json:"favorite_count"`
}
