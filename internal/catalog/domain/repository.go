package domain

import "context"

// CatalogRepository is the read side of the item catalog
type CatalogRepository interface {
	FindByID(ctx context.Context, id uint) (*Item, error)
	// FindAll returns items within the cost ceiling in catalog (ascending id) order.
	FindAll(ctx context.Context, maxCost *float64) ([]Item, error)
	// Search returns items whose text matches searchText with a non-zero
	// relevance score, restricted by the cost ceiling. Order is unspecified.
	Search(ctx context.Context, searchText string, maxCost *float64) ([]ScoredItem, error)
	Count(ctx context.Context) (int64, error)
}

// FavoriteRepository owns the favorite edges. Toggle is the only mutator.
type FavoriteRepository interface {
	// Toggle atomically flips the (user, item) edge and returns the new state.
	Toggle(ctx context.Context, userID, itemID uint) (bool, error)
	IsFavorite(ctx context.Context, userID, itemID uint) (bool, error)
	// ListFavorites returns the user's favorited items ordered by id.
	ListFavorites(ctx context.Context, userID uint) ([]Item, error)
	// FavoriteCounts returns every catalog item with its edge count,
	// including items nobody favorited.
	FavoriteCounts(ctx context.Context) ([]TrendingEntry, error)
}

// ItemSeeder inserts catalog records. Only development seeding uses it.
type ItemSeeder interface {
	CreateIfAbsent(ctx context.Context, item *Item) (bool, error)
}

// Store bundles everything a storage backend provides
type Store interface {
	CatalogRepository
	FavoriteRepository
	ItemSeeder
	Ping(ctx context.Context) error
	Close() error
}

// EventPublisher receives domain events after state changes commit
type EventPublisher interface {
	PublishFavoriteToggled(ctx context.Context, event FavoriteToggled) error
}
