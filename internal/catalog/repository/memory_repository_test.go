package repository

import (
	"context"
	"testing"
	"time"
)

func TestMemoryToggle_OtherPairsProceedWhilePairHeld(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCatalogRepository()
	if _, err := SeedCatalog(ctx, store); err != nil {
		t.Fatalf("SeedCatalog() error = %v", err)
	}

	unlock := store.locks.Lock(pairKey{userID: 1, itemID: 1})

	blocked := make(chan bool, 1)
	go func() {
		favorited, err := store.Toggle(ctx, 1, 1)
		if err != nil {
			t.Errorf("Toggle(1, 1) error = %v", err)
		}
		blocked <- favorited
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if favorited, err := store.Toggle(ctx, 1, 2); err != nil || !favorited {
			t.Errorf("Toggle(1, 2) = %v, %v; want true, nil", favorited, err)
		}
		if ok, err := store.IsFavorite(ctx, 1, 1); err != nil || ok {
			t.Errorf("IsFavorite(1, 1) = %v, %v; want false, nil", ok, err)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("toggle on another pair waited for a held pair")
	}

	select {
	case <-blocked:
		t.Fatal("Toggle(1, 1) finished while its pair was held")
	default:
	}

	unlock()
	select {
	case favorited := <-blocked:
		if !favorited {
			t.Error("Toggle(1, 1) = false after release, want true")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Toggle(1, 1) did not finish after release")
	}
}
