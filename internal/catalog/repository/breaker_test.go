package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tair/plant-catalog/internal/catalog/domain"
)

// flakyStore fails FindAll with ErrStoreUnavailable while down is set
type flakyStore struct {
	*MemoryCatalogRepository
	down  bool
	calls int
}

func (s *flakyStore) FindAll(ctx context.Context, maxCost *float64) ([]domain.Item, error) {
	s.calls++
	if s.down {
		return nil, fmt.Errorf("list items: %w: connection refused", domain.ErrStoreUnavailable)
	}
	return s.MemoryCatalogRepository.FindAll(ctx, maxCost)
}

func testBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Hour,
		FailureThreshold: 3,
	}
}

func TestStoreWithBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	ctx := context.Background()
	inner := &flakyStore{MemoryCatalogRepository: NewMemoryCatalogRepository(), down: true}
	store := NewStoreWithBreaker(inner, testBreakerConfig())

	for i := 0; i < 3; i++ {
		if _, err := store.FindAll(ctx, nil); !errors.Is(err, domain.ErrStoreUnavailable) {
			t.Fatalf("call %d error = %v, want ErrStoreUnavailable", i, err)
		}
	}
	if store.State() != "open" {
		t.Fatalf("State() = %q, want open", store.State())
	}

	inner.down = false
	_, err := store.FindAll(ctx, nil)
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("open breaker error = %v, want ErrStoreUnavailable", err)
	}
	if inner.calls != 3 {
		t.Errorf("inner store called %d times, want 3 (open breaker must not call through)", inner.calls)
	}
}

func TestStoreWithBreaker_NotFoundDoesNotTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStoreWithBreaker(NewMemoryCatalogRepository(), testBreakerConfig())

	for i := 0; i < 10; i++ {
		if _, err := store.FindByID(ctx, 404); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("FindByID() error = %v, want ErrNotFound", err)
		}
	}
	if store.State() != "closed" {
		t.Errorf("State() = %q, want closed", store.State())
	}
}

func TestStoreWithBreaker_PassesResultsThrough(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryCatalogRepository()
	if _, err := SeedCatalog(ctx, inner); err != nil {
		t.Fatalf("SeedCatalog() error = %v", err)
	}
	store := NewStoreWithBreaker(inner, DefaultBreakerConfig())

	items, err := store.FindAll(ctx, nil)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(items) != 12 {
		t.Errorf("FindAll() returned %d items, want 12", len(items))
	}

	favorited, err := store.Toggle(ctx, 1, items[0].ID)
	if err != nil || !favorited {
		t.Errorf("Toggle() = %v, %v; want true, nil", favorited, err)
	}
}

func TestStoreWithBreaker_CallerCancellationDoesNotTrip(t *testing.T) {
	inner := NewMemoryCatalogRepository()
	if _, err := SeedCatalog(context.Background(), inner); err != nil {
		t.Fatalf("SeedCatalog() error = %v", err)
	}
	store := NewStoreWithBreaker(inner, DefaultBreakerConfig())

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 10; i++ {
		if _, err := store.FindAll(cancelled, nil); !errors.Is(err, context.Canceled) {
			t.Fatalf("call %d error = %v, want context.Canceled", i, err)
		}
	}
	if store.State() != "closed" {
		t.Fatalf("State() = %q, want closed", store.State())
	}

	items, err := store.FindAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("FindAll() after cancellations error = %v", err)
	}
	if len(items) != 12 {
		t.Errorf("FindAll() returned %d items, want 12", len(items))
	}
}

func TestStoreWithBreaker_DeadlineExceededTrips(t *testing.T) {
	store := NewStoreWithBreaker(NewMemoryCatalogRepository(), testBreakerConfig())

	expired, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	for i := 0; i < 3; i++ {
		if _, err := store.FindAll(expired, nil); !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("call %d error = %v, want context.DeadlineExceeded", i, err)
		}
	}
	if store.State() != "open" {
		t.Errorf("State() = %q, want open", store.State())
	}
}
