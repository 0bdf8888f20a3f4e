package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/plant-catalog/internal/catalog/domain"
)

var tracer = otel.Tracer("catalog-repository")

// StoreWithTracing wraps any Store with a span per call
type StoreWithTracing struct {
	domain.Store
	backend string
}

// NewStoreWithTracing creates a new tracing decorator; backend names the
// database system on every span.
func NewStoreWithTracing(store domain.Store, backend string) *StoreWithTracing {
	return &StoreWithTracing{Store: store, backend: backend}
}

func (r *StoreWithTracing) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("db.system", r.backend))
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// Helper function to add database error details to span
func addDBErrorToSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// FindByID with tracing
func (r *StoreWithTracing) FindByID(ctx context.Context, id uint) (*domain.Item, error) {
	ctx, span := r.start(ctx, "repository.FindByID", attribute.Int("item.id", int(id)))
	defer span.End()

	item, err := r.Store.FindByID(ctx, id)
	if err != nil {
		addDBErrorToSpan(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.String("item.name", item.Name))
	return item, nil
}

// FindAll with tracing
func (r *StoreWithTracing) FindAll(ctx context.Context, maxCost *float64) ([]domain.Item, error) {
	ctx, span := r.start(ctx, "repository.FindAll", attribute.Bool("query.cost_ceiling", maxCost != nil))
	defer span.End()

	items, err := r.Store.FindAll(ctx, maxCost)
	if err != nil {
		addDBErrorToSpan(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(items)))
	return items, nil
}

// Search with tracing
func (r *StoreWithTracing) Search(ctx context.Context, searchText string, maxCost *float64) ([]domain.ScoredItem, error) {
	ctx, span := r.start(ctx, "repository.Search",
		attribute.String("query.text", searchText),
		attribute.Bool("query.cost_ceiling", maxCost != nil),
	)
	defer span.End()

	results, err := r.Store.Search(ctx, searchText, maxCost)
	if err != nil {
		addDBErrorToSpan(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(results)))
	return results, nil
}

// Count with tracing
func (r *StoreWithTracing) Count(ctx context.Context) (int64, error) {
	ctx, span := r.start(ctx, "repository.Count")
	defer span.End()

	count, err := r.Store.Count(ctx)
	if err != nil {
		addDBErrorToSpan(span, err)
		return 0, err
	}

	span.SetAttributes(attribute.Int64("result.count", count))
	return count, nil
}

// Toggle with tracing
func (r *StoreWithTracing) Toggle(ctx context.Context, userID, itemID uint) (bool, error) {
	ctx, span := r.start(ctx, "repository.Toggle",
		attribute.Int("user.id", int(userID)),
		attribute.Int("item.id", int(itemID)),
	)
	defer span.End()

	favorited, err := r.Store.Toggle(ctx, userID, itemID)
	if err != nil {
		addDBErrorToSpan(span, err)
		return false, err
	}

	span.SetAttributes(attribute.Bool("favorite.state", favorited))
	return favorited, nil
}

// IsFavorite with tracing
func (r *StoreWithTracing) IsFavorite(ctx context.Context, userID, itemID uint) (bool, error) {
	ctx, span := r.start(ctx, "repository.IsFavorite",
		attribute.Int("user.id", int(userID)),
		attribute.Int("item.id", int(itemID)),
	)
	defer span.End()

	ok, err := r.Store.IsFavorite(ctx, userID, itemID)
	addDBErrorToSpan(span, err)
	return ok, err
}

// ListFavorites with tracing
func (r *StoreWithTracing) ListFavorites(ctx context.Context, userID uint) ([]domain.Item, error) {
	ctx, span := r.start(ctx, "repository.ListFavorites", attribute.Int("user.id", int(userID)))
	defer span.End()

	items, err := r.Store.ListFavorites(ctx, userID)
	if err != nil {
		addDBErrorToSpan(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(items)))
	return items, nil
}

// FavoriteCounts with tracing
func (r *StoreWithTracing) FavoriteCounts(ctx context.Context) ([]domain.TrendingEntry, error) {
	ctx, span := r.start(ctx, "repository.FavoriteCounts")
	defer span.End()

	entries, err := r.Store.FavoriteCounts(ctx)
	if err != nil {
		addDBErrorToSpan(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(entries)))
	return entries, nil
}

// CreateIfAbsent with tracing
func (r *StoreWithTracing) CreateIfAbsent(ctx context.Context, item *domain.Item) (bool, error) {
	ctx, span := r.start(ctx, "repository.CreateIfAbsent",
		attribute.String("item.name", item.Name),
		attribute.String("item.scientific_name", item.ScientificName),
	)
	defer span.End()

	created, err := r.Store.CreateIfAbsent(ctx, item)
	if err != nil {
		addDBErrorToSpan(span, err)
		return false, err
	}

	span.SetAttributes(attribute.Int("item.id", int(item.ID)), attribute.Bool("item.created", created))
	return created, nil
}
