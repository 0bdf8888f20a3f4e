package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tair/plant-catalog/internal/catalog/domain"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		scientific_name TEXT UNIQUE,
		image_url TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		how_to_grow TEXT NOT NULL DEFAULT '',
		health_benefit TEXT NOT NULL DEFAULT '',
		found_in_nature TEXT NOT NULL DEFAULT '',
		citation TEXT NOT NULL DEFAULT '',
		cost REAL NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_favorites (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		item_id INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
		created_at DATETIME NOT NULL,
		UNIQUE (user_id, item_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_user_favorites_item_id ON user_favorites(item_id)`,
	`CREATE VIRTUAL TABLE IF NOT EXISTS items_fts USING fts5(
		name, scientific_name, description, how_to_grow, health_benefit, found_in_nature, citation,
		content='items', content_rowid='id', tokenize='porter unicode61'
	)`,
	`CREATE TRIGGER IF NOT EXISTS items_ai AFTER INSERT ON items BEGIN
		INSERT INTO items_fts(rowid, name, scientific_name, description, how_to_grow, health_benefit, found_in_nature, citation)
		VALUES (new.id, new.name, new.scientific_name, new.description, new.how_to_grow, new.health_benefit, new.found_in_nature, new.citation);
	END`,
	`CREATE TRIGGER IF NOT EXISTS items_ad AFTER DELETE ON items BEGIN
		INSERT INTO items_fts(items_fts, rowid, name, scientific_name, description, how_to_grow, health_benefit, found_in_nature, citation)
		VALUES ('delete', old.id, old.name, old.scientific_name, old.description, old.how_to_grow, old.health_benefit, old.found_in_nature, old.citation);
	END`,
	`CREATE TRIGGER IF NOT EXISTS items_au AFTER UPDATE ON items BEGIN
		INSERT INTO items_fts(items_fts, rowid, name, scientific_name, description, how_to_grow, health_benefit, found_in_nature, citation)
		VALUES ('delete', old.id, old.name, old.scientific_name, old.description, old.how_to_grow, old.health_benefit, old.found_in_nature, old.citation);
		INSERT INTO items_fts(rowid, name, scientific_name, description, how_to_grow, health_benefit, found_in_nature, citation)
		VALUES (new.id, new.name, new.scientific_name, new.description, new.how_to_grow, new.health_benefit, new.found_in_nature, new.citation);
	END`,
}

const itemColumns = `items.id, items.name, items.scientific_name, items.image_url, items.description,
	items.how_to_grow, items.health_benefit, items.found_in_nature, items.citation, items.cost,
	items.created_at, items.updated_at`

// SQLiteCatalogRepository is the embedded single-file store.
// Relevance comes from an FTS5 index kept in sync by triggers.
type SQLiteCatalogRepository struct {
	db    *sql.DB
	locks *keyedLock
}

// SQLiteDSN builds the modernc DSN for a database path; ":memory:" opens a
// private in-memory database.
func SQLiteDSN(path string) string {
	if path == "" || path == ":memory:" {
		return "file::memory:?_pragma=foreign_keys(1)"
	}
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// NewSQLiteCatalogRepository opens the database and applies the schema
func NewSQLiteCatalogRepository(ctx context.Context, path string) (*SQLiteCatalogRepository, error) {
	db, err := sql.Open("sqlite", SQLiteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// one connection: in-memory databases are per connection, and it keeps writers serialized
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply sqlite schema: %w", err)
		}
	}

	return &SQLiteCatalogRepository{db: db, locks: newKeyedLock()}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner, extra ...any) (domain.Item, error) {
	var item domain.Item
	var scientificName sql.NullString
	dest := []any{
		&item.ID, &item.Name, &scientificName, &item.ImageURL, &item.Description,
		&item.HowToGrow, &item.HealthBenefit, &item.FoundInNature, &item.Citation, &item.Cost,
		&item.CreatedAt, &item.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return domain.Item{}, err
	}
	item.ScientificName = scientificName.String
	return item, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *SQLiteCatalogRepository) CreateIfAbsent(ctx context.Context, item *domain.Item) (bool, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `INSERT INTO items
		(name, scientific_name, image_url, description, how_to_grow, health_benefit, found_in_nature, citation, cost, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(scientific_name) DO NOTHING`,
		item.Name, nullable(item.ScientificName), item.ImageURL, item.Description, item.HowToGrow,
		item.HealthBenefit, item.FoundInNature, item.Citation, item.Cost, now, now)
	if err != nil {
		return false, classify("create item", err)
	}

	if n, _ := res.RowsAffected(); n > 0 {
		id, err := res.LastInsertId()
		if err != nil {
			return false, classify("create item", err)
		}
		item.ID = uint(id)
		item.CreatedAt, item.UpdatedAt = now, now
		return true, nil
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, `SELECT id FROM items WHERE scientific_name = ?`, item.ScientificName).Scan(&id); err != nil {
		return false, classify("find seeded item", err)
	}
	item.ID = uint(id)
	return false, nil
}

func (r *SQLiteCatalogRepository) FindByID(ctx context.Context, id uint) (*domain.Item, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE items.id = ?`, id)
	item, err := scanItem(row)
	if err != nil {
		return nil, classify(fmt.Sprintf("item %d", id), err)
	}
	return &item, nil
}

func (r *SQLiteCatalogRepository) FindAll(ctx context.Context, maxCost *float64) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	var args []any
	if maxCost != nil {
		query += ` WHERE items.cost <= ?`
		args = append(args, *maxCost)
	}
	query += ` ORDER BY items.id ASC`

	return r.queryItems(ctx, "list items", query, args...)
}

func (r *SQLiteCatalogRepository) queryItems(ctx context.Context, op, query string, args ...any) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, classify(op, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return items, nil
}

// ftsQuery turns free text into an FTS5 OR-expression of quoted terms
func ftsQuery(searchText string) string {
	tokens := uniqueTokens(searchText)
	for i, tok := range tokens {
		tokens[i] = `"` + strings.ReplaceAll(tok, `"`, `""`) + `"`
	}
	return strings.Join(tokens, " OR ")
}

// Search scores with bm25, negated so that better matches are larger and
// every match is strictly positive.
func (r *SQLiteCatalogRepository) Search(ctx context.Context, searchText string, maxCost *float64) ([]domain.ScoredItem, error) {
	match := ftsQuery(searchText)
	results := []domain.ScoredItem{}
	if match == "" {
		return results, nil
	}

	query := `SELECT ` + itemColumns + `, -bm25(items_fts) AS score
		FROM items_fts JOIN items ON items.id = items_fts.rowid
		WHERE items_fts MATCH ?`
	args := []any{match}
	if maxCost != nil {
		query += ` AND items.cost <= ?`
		args = append(args, *maxCost)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("search items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var score float64
		item, err := scanItem(rows, &score)
		if err != nil {
			return nil, classify("search items", err)
		}
		results = append(results, domain.ScoredItem{Item: item, Score: score})
	}
	if err := rows.Err(); err != nil {
		return nil, classify("search items", err)
	}
	return results, nil
}

func (r *SQLiteCatalogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
		return 0, classify("count items", err)
	}
	return count, nil
}

// Toggle holds the pair lock across a transaction that checks the item,
// then deletes the edge or inserts it.
func (r *SQLiteCatalogRepository) Toggle(ctx context.Context, userID, itemID uint) (bool, error) {
	unlock := r.locks.Lock(pairKey{userID: userID, itemID: itemID})
	defer unlock()

	op := fmt.Sprintf("toggle favorite %d/%d", userID, itemID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, classify(op, err)
	}
	defer tx.Rollback() //nolint:errcheck

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM items WHERE id = ?`, itemID).Scan(&exists); err != nil {
		return false, classify(op, err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM user_favorites WHERE user_id = ? AND item_id = ?`, userID, itemID)
	if err != nil {
		return false, classify(op, err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, classify(op, err)
	}

	favorited := removed == 0
	if favorited {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO user_favorites (user_id, item_id, created_at) VALUES (?, ?, ?)`,
			userID, itemID, time.Now().UTC())
		if err != nil && !isUniqueViolation(err) {
			return false, classify(op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, classify(op, err)
	}
	return favorited, nil
}

func (r *SQLiteCatalogRepository) IsFavorite(ctx context.Context, userID, itemID uint) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_favorites WHERE user_id = ? AND item_id = ?`, userID, itemID).Scan(&count)
	if err != nil {
		return false, classify("check favorite", err)
	}
	return count > 0, nil
}

func (r *SQLiteCatalogRepository) ListFavorites(ctx context.Context, userID uint) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items
		JOIN user_favorites ON user_favorites.item_id = items.id
		WHERE user_favorites.user_id = ?
		ORDER BY items.id ASC`
	return r.queryItems(ctx, "list favorites", query, userID)
}

func (r *SQLiteCatalogRepository) FavoriteCounts(ctx context.Context) ([]domain.TrendingEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+itemColumns+`, COUNT(user_favorites.id)
		FROM items
		LEFT JOIN user_favorites ON user_favorites.item_id = items.id
		GROUP BY items.id
		ORDER BY items.id ASC`)
	if err != nil {
		return nil, classify("count favorites", err)
	}
	defer rows.Close()

	entries := []domain.TrendingEntry{}
	for rows.Next() {
		var count int64
		item, err := scanItem(rows, &count)
		if err != nil {
			return nil, classify("count favorites", err)
		}
		entries = append(entries, domain.TrendingEntry{Item: item, FavoriteCount: count})
	}
	if err := rows.Err(); err != nil {
		return nil, classify("count favorites", err)
	}
	return entries, nil
}

func (r *SQLiteCatalogRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return classify("ping", err)
	}
	return nil
}

func (r *SQLiteCatalogRepository) Close() error {
	if err := r.db.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		return err
	}
	return nil
}
