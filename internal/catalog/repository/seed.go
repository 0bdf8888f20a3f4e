package repository

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tair/plant-catalog/internal/catalog/domain"
	"github.com/tair/plant-catalog/pkg/logger"
)

//go:embed seed_plants.json
var seedPlants []byte

// SeedItems returns the bundled starter catalog
func SeedItems() ([]domain.Item, error) {
	var items []domain.Item
	if err := json.Unmarshal(seedPlants, &items); err != nil {
		return nil, fmt.Errorf("failed to decode seed catalog: %w", err)
	}
	return items, nil
}

// SeedCatalog inserts the starter catalog, skipping plants whose scientific
// name is already present. Safe to run on every start.
func SeedCatalog(ctx context.Context, seeder domain.ItemSeeder) (int, error) {
	items, err := SeedItems()
	if err != nil {
		return 0, err
	}

	created := 0
	for i := range items {
		ok, err := seeder.CreateIfAbsent(ctx, &items[i])
		if err != nil {
			return created, fmt.Errorf("failed to seed %q: %w", items[i].ScientificName, err)
		}
		if ok {
			created++
		}
	}

	logger.Info(ctx).
		Int("created", created).
		Int("total", len(items)).
		Msg("Catalog seeded")
	return created, nil
}
