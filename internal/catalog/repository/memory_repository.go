package repository

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/tair/plant-catalog/internal/catalog/domain"
)

// MemoryCatalogRepository keeps the catalog and favorite edges in process.
// It backs development runs and tests; relevance is a TF-IDF token overlap.
type MemoryCatalogRepository struct {
	mu        sync.RWMutex
	items     []domain.Item // ascending id
	byID      map[uint]int
	terms     map[uint]map[string]int
	favorites map[pairKey]time.Time
	nextID    uint
	locks     *keyedLock
}

// NewMemoryCatalogRepository creates an empty in-memory store
func NewMemoryCatalogRepository() *MemoryCatalogRepository {
	return &MemoryCatalogRepository{
		byID:      make(map[uint]int),
		terms:     make(map[uint]map[string]int),
		favorites: make(map[pairKey]time.Time),
		nextID:    1,
		locks:     newKeyedLock(),
	}
}

func ctxErr(op string, ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
	return nil
}

// CreateIfAbsent inserts item unless one with the same scientific name exists.
// Ids are assigned sequentially and never reused.
func (r *MemoryCatalogRepository) CreateIfAbsent(ctx context.Context, item *domain.Item) (bool, error) {
	if err := ctxErr("create item", ctx); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ScientificName != "" {
		for _, existing := range r.items {
			if existing.ScientificName == item.ScientificName {
				item.ID = existing.ID
				return false, nil
			}
		}
	}

	now := time.Now()
	item.ID = r.nextID
	item.CreatedAt = now
	item.UpdatedAt = now
	r.nextID++

	r.byID[item.ID] = len(r.items)
	r.items = append(r.items, *item)

	tf := make(map[string]int)
	for _, tok := range tokenize(item.SearchableText()) {
		tf[tok]++
	}
	r.terms[item.ID] = tf

	return true, nil
}

func (r *MemoryCatalogRepository) FindByID(ctx context.Context, id uint) (*domain.Item, error) {
	if err := ctxErr("find item", ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}
	item := r.items[idx]
	return &item, nil
}

func (r *MemoryCatalogRepository) FindAll(ctx context.Context, maxCost *float64) ([]domain.Item, error) {
	if err := ctxErr("list items", ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]domain.Item, 0, len(r.items))
	for i := range r.items {
		if r.items[i].WithinCost(maxCost) {
			items = append(items, r.items[i])
		}
	}
	return items, nil
}

// Search scores every item against the query tokens.
// score = sum over distinct query tokens of tf * (1 + ln(N/df)).
func (r *MemoryCatalogRepository) Search(ctx context.Context, searchText string, maxCost *float64) ([]domain.ScoredItem, error) {
	if err := ctxErr("search items", ctx); err != nil {
		return nil, err
	}

	query := uniqueTokens(searchText)
	results := []domain.ScoredItem{}
	if len(query) == 0 {
		return results, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	n := float64(len(r.items))
	idf := make(map[string]float64, len(query))
	for _, tok := range query {
		df := 0
		for _, tf := range r.terms {
			if tf[tok] > 0 {
				df++
			}
		}
		if df > 0 {
			idf[tok] = 1 + math.Log(n/float64(df))
		}
	}

	for i := range r.items {
		item := r.items[i]
		if !item.WithinCost(maxCost) {
			continue
		}
		tf := r.terms[item.ID]
		score := 0.0
		for tok, weight := range idf {
			score += float64(tf[tok]) * weight
		}
		if score > 0 {
			results = append(results, domain.ScoredItem{Item: item, Score: score})
		}
	}
	return results, nil
}

func (r *MemoryCatalogRepository) Count(ctx context.Context) (int64, error) {
	if err := ctxErr("count items", ctx); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

// Toggle flips the edge while holding the pair's lock. The store mutex is
// taken only around the map reads and the write, so toggles on other pairs
// proceed in between.
func (r *MemoryCatalogRepository) Toggle(ctx context.Context, userID, itemID uint) (bool, error) {
	key := pairKey{userID: userID, itemID: itemID}
	unlock := r.locks.Lock(key)
	defer unlock()

	if err := ctxErr("toggle favorite", ctx); err != nil {
		return false, err
	}

	r.mu.RLock()
	_, exists := r.byID[itemID]
	_, present := r.favorites[key]
	r.mu.RUnlock()

	if !exists {
		return false, fmt.Errorf("item %d: %w", itemID, domain.ErrNotFound)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if present {
		delete(r.favorites, key)
		return false, nil
	}
	r.favorites[key] = time.Now()
	return true, nil
}

func (r *MemoryCatalogRepository) IsFavorite(ctx context.Context, userID, itemID uint) (bool, error) {
	if err := ctxErr("check favorite", ctx); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.favorites[pairKey{userID: userID, itemID: itemID}]
	return ok, nil
}

func (r *MemoryCatalogRepository) ListFavorites(ctx context.Context, userID uint) ([]domain.Item, error) {
	if err := ctxErr("list favorites", ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	items := []domain.Item{}
	for key := range r.favorites {
		if key.userID != userID {
			continue
		}
		if idx, ok := r.byID[key.itemID]; ok {
			items = append(items, r.items[idx])
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *MemoryCatalogRepository) FavoriteCounts(ctx context.Context) ([]domain.TrendingEntry, error) {
	if err := ctxErr("count favorites", ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[uint]int64)
	for key := range r.favorites {
		counts[key.itemID]++
	}

	entries := make([]domain.TrendingEntry, 0, len(r.items))
	for _, item := range r.items {
		entries = append(entries, domain.TrendingEntry{Item: item, FavoriteCount: counts[item.ID]})
	}
	return entries, nil
}

func (r *MemoryCatalogRepository) Ping(ctx context.Context) error {
	return ctxErr("ping", ctx)
}

func (r *MemoryCatalogRepository) Close() error {
	return nil
}
