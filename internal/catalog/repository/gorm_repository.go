package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/plant-catalog/internal/catalog/domain"
)

// searchVectorDDL adds the generated full-text column the relevance query runs
// against. Weighting follows field importance: name first, citation last.
const searchVectorDDL = `ALTER TABLE items ADD COLUMN IF NOT EXISTS search_vector tsvector
GENERATED ALWAYS AS (
	setweight(to_tsvector('english', coalesce(name, '') || ' ' || coalesce(scientific_name, '')), 'A') ||
	setweight(to_tsvector('english', coalesce(health_benefit, '') || ' ' || coalesce(description, '')), 'B') ||
	setweight(to_tsvector('english', coalesce(found_in_nature, '') || ' ' || coalesce(how_to_grow, '')), 'C') ||
	setweight(to_tsvector('english', coalesce(citation, '')), 'D')
) STORED`

const searchVectorIndexDDL = `CREATE INDEX IF NOT EXISTS idx_items_search_vector ON items USING GIN (search_vector)`

// searchSQL ranks items against an OR-query built from the search text, so
// an item matching any term is returned and more matches rank higher.
const searchSQL = `SELECT items.*, ts_rank(items.search_vector, q.query) AS score
FROM items, (SELECT replace(plainto_tsquery('english', @text)::text, '&', '|')::tsquery AS query) AS q
WHERE items.search_vector @@ q.query`

const favoriteCountsSQL = `SELECT items.*, COUNT(user_favorites.id) AS favorite_count
FROM items
LEFT JOIN user_favorites ON user_favorites.item_id = items.id
GROUP BY items.id
ORDER BY items.id ASC`

type scoredRow struct {
	domain.Item `gorm:"embedded"`
	Score       float64
}

type countRow struct {
	domain.Item   `gorm:"embedded"`
	FavoriteCount int64
}

// GormCatalogRepository is the PostgreSQL store
type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// AutoMigrate creates the tables, the favorite uniqueness index and the
// full-text column with its GIN index.
func (r *GormCatalogRepository) AutoMigrate(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	if err := db.AutoMigrate(&domain.Item{}, &domain.Favorite{}); err != nil {
		return fmt.Errorf("failed to migrate catalog tables: %w", err)
	}
	if err := db.Exec(searchVectorDDL).Error; err != nil {
		return fmt.Errorf("failed to add search vector: %w", err)
	}
	if err := db.Exec(searchVectorIndexDDL).Error; err != nil {
		return fmt.Errorf("failed to index search vector: %w", err)
	}
	return nil
}

// CreateIfAbsent dedupes on scientific name. Items without one are always
// inserted, storing NULL so the unique index ignores them.
func (r *GormCatalogRepository) CreateIfAbsent(ctx context.Context, item *domain.Item) (bool, error) {
	if item.ScientificName == "" {
		if err := r.db.WithContext(ctx).Omit("scientific_name").Create(item).Error; err != nil {
			return false, classify("create item", err)
		}
		return true, nil
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "scientific_name"}}, DoNothing: true}).
		Create(item)
	if res.Error != nil {
		return false, classify("create item", res.Error)
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	var existing domain.Item
	if err := r.db.WithContext(ctx).Where("scientific_name = ?", item.ScientificName).First(&existing).Error; err != nil {
		return false, classify("find seeded item", err)
	}
	item.ID = existing.ID
	return false, nil
}

func (r *GormCatalogRepository) FindByID(ctx context.Context, id uint) (*domain.Item, error) {
	var item domain.Item
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, classify(fmt.Sprintf("item %d", id), err)
	}
	return &item, nil
}

func (r *GormCatalogRepository) FindAll(ctx context.Context, maxCost *float64) ([]domain.Item, error) {
	query := r.db.WithContext(ctx).Order("id ASC")
	if maxCost != nil {
		query = query.Where("cost <= ?", *maxCost)
	}

	items := []domain.Item{}
	if err := query.Find(&items).Error; err != nil {
		return nil, classify("list items", err)
	}
	return items, nil
}

func (r *GormCatalogRepository) Search(ctx context.Context, searchText string, maxCost *float64) ([]domain.ScoredItem, error) {
	sql := searchSQL
	args := map[string]interface{}{"text": searchText}
	if maxCost != nil {
		sql += " AND items.cost <= @max_cost"
		args["max_cost"] = *maxCost
	}

	var rows []scoredRow
	if err := r.db.WithContext(ctx).Raw(sql, args).Scan(&rows).Error; err != nil {
		return nil, classify("search items", err)
	}

	results := make([]domain.ScoredItem, 0, len(rows))
	for _, row := range rows {
		results = append(results, domain.ScoredItem{Item: row.Item, Score: row.Score})
	}
	return results, nil
}

func (r *GormCatalogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Item{}).Count(&count).Error; err != nil {
		return 0, classify("count items", err)
	}
	return count, nil
}

// Toggle serializes on a transaction-scoped advisory lock keyed by the pair,
// then deletes the edge or inserts it. The unique index stays the backstop.
func (r *GormCatalogRepository) Toggle(ctx context.Context, userID, itemID uint) (bool, error) {
	var favorited bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?::int4, ?::int4)", int32(userID), int32(itemID)).Error; err != nil {
			return err
		}

		res := tx.Where("user_id = ? AND item_id = ?", userID, itemID).Delete(&domain.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			favorited = false
			return nil
		}

		res = tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&domain.Favorite{UserID: userID, ItemID: itemID})
		if res.Error != nil {
			return res.Error
		}
		// RowsAffected == 0 means the edge already exists; either way it is present now.
		favorited = true
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return true, nil
		}
		return false, classify(fmt.Sprintf("toggle favorite %d/%d", userID, itemID), err)
	}
	return favorited, nil
}

func (r *GormCatalogRepository) IsFavorite(ctx context.Context, userID, itemID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Count(&count).Error
	if err != nil {
		return false, classify("check favorite", err)
	}
	return count > 0, nil
}

func (r *GormCatalogRepository) ListFavorites(ctx context.Context, userID uint) ([]domain.Item, error) {
	items := []domain.Item{}
	err := r.db.WithContext(ctx).
		Joins("JOIN user_favorites ON user_favorites.item_id = items.id").
		Where("user_favorites.user_id = ?", userID).
		Order("items.id ASC").
		Find(&items).Error
	if err != nil {
		return nil, classify("list favorites", err)
	}
	return items, nil
}

func (r *GormCatalogRepository) FavoriteCounts(ctx context.Context) ([]domain.TrendingEntry, error) {
	var rows []countRow
	if err := r.db.WithContext(ctx).Raw(favoriteCountsSQL).Scan(&rows).Error; err != nil {
		return nil, classify("count favorites", err)
	}

	entries := make([]domain.TrendingEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.TrendingEntry{Item: row.Item, FavoriteCount: row.FavoriteCount})
	}
	return entries, nil
}

func (r *GormCatalogRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return classify("ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return classify("ping", err)
	}
	return nil
}

func (r *GormCatalogRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
