package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tair/plant-catalog/internal/catalog/domain"
	"github.com/tair/plant-catalog/pkg/logger"
)

// BreakerConfig tunes the store circuit breaker
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// DefaultBreakerConfig trips after five consecutive store failures and probes
// again after thirty seconds.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "catalog-store",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// StoreWithBreaker fails fast with ErrStoreUnavailable while the backend is
// down. Not-found, invalid-input and caller-cancelled outcomes count as
// successes.
type StoreWithBreaker struct {
	store domain.Store
	cb    *gobreaker.CircuitBreaker[any]
}

// NewStoreWithBreaker wraps store with a circuit breaker
func NewStoreWithBreaker(store domain.Store, cfg BreakerConfig) *StoreWithBreaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// A caller abandoning its own request says nothing about the backend.
		// Deadlines still count: a store too slow to answer is unavailable.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || !errors.Is(err, domain.ErrStoreUnavailable)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn(context.Background()).
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Store circuit breaker changed state")
		},
	}

	return &StoreWithBreaker{
		store: store,
		cb:    gobreaker.NewCircuitBreaker[any](settings),
	}
}

// State reports the breaker state for health output
func (s *StoreWithBreaker) State() string {
	return s.cb.State().String()
}

func call[T any](s *StoreWithBreaker, op string, fn func() (T, error)) (T, error) {
	var zero T
	out, err := s.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
		}
		return zero, err
	}
	return out.(T), nil
}

func (s *StoreWithBreaker) FindByID(ctx context.Context, id uint) (*domain.Item, error) {
	return call(s, "find item", func() (*domain.Item, error) { return s.store.FindByID(ctx, id) })
}

func (s *StoreWithBreaker) FindAll(ctx context.Context, maxCost *float64) ([]domain.Item, error) {
	return call(s, "list items", func() ([]domain.Item, error) { return s.store.FindAll(ctx, maxCost) })
}

func (s *StoreWithBreaker) Search(ctx context.Context, searchText string, maxCost *float64) ([]domain.ScoredItem, error) {
	return call(s, "search items", func() ([]domain.ScoredItem, error) {
		return s.store.Search(ctx, searchText, maxCost)
	})
}

func (s *StoreWithBreaker) Count(ctx context.Context) (int64, error) {
	return call(s, "count items", func() (int64, error) { return s.store.Count(ctx) })
}

func (s *StoreWithBreaker) Toggle(ctx context.Context, userID, itemID uint) (bool, error) {
	return call(s, "toggle favorite", func() (bool, error) { return s.store.Toggle(ctx, userID, itemID) })
}

func (s *StoreWithBreaker) IsFavorite(ctx context.Context, userID, itemID uint) (bool, error) {
	return call(s, "check favorite", func() (bool, error) { return s.store.IsFavorite(ctx, userID, itemID) })
}

func (s *StoreWithBreaker) ListFavorites(ctx context.Context, userID uint) ([]domain.Item, error) {
	return call(s, "list favorites", func() ([]domain.Item, error) { return s.store.ListFavorites(ctx, userID) })
}

func (s *StoreWithBreaker) FavoriteCounts(ctx context.Context) ([]domain.TrendingEntry, error) {
	return call(s, "count favorites", func() ([]domain.TrendingEntry, error) { return s.store.FavoriteCounts(ctx) })
}

func (s *StoreWithBreaker) CreateIfAbsent(ctx context.Context, item *domain.Item) (bool, error) {
	return call(s, "create item", func() (bool, error) { return s.store.CreateIfAbsent(ctx, item) })
}

// Ping bypasses the breaker so health checks see the real backend
func (s *StoreWithBreaker) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *StoreWithBreaker) Close() error {
	return s.store.Close()
}
