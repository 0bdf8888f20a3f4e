package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/tair/plant-catalog/internal/catalog/repository"
	"github.com/tair/plant-catalog/internal/config"
)

func testConfig(driver string) *config.Config {
	return &config.Config{
		Store:   config.StoreConfig{Driver: driver, SQLitePath: ":memory:"},
		Breaker: config.BreakerConfig{Enabled: true, FailureThreshold: 2},
	}
}

func TestOpenStore(t *testing.T) {
	t.Parallel()

	for _, driver := range []string{config.DriverMemory, config.DriverSQLite} {
		driver := driver
		t.Run(driver, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			store, err := OpenStore(ctx, testConfig(driver))
			if err != nil {
				t.Fatalf("OpenStore() error = %v", err)
			}
			defer store.Close()

			if _, ok := store.(*repository.StoreWithBreaker); !ok {
				t.Errorf("store = %T, want breaker-wrapped store", store)
			}
			if err := store.Ping(ctx); err != nil {
				t.Errorf("Ping() error = %v", err)
			}
			n, err := repository.SeedCatalog(ctx, store)
			if err != nil || n != 12 {
				t.Errorf("SeedCatalog() = %d, %v; want 12", n, err)
			}
		})
	}
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := OpenStore(context.Background(), testConfig("cassandra"))
	if err == nil || !strings.Contains(err.Error(), "cassandra") {
		t.Errorf("OpenStore() error = %v, want unknown driver", err)
	}
}

func TestInitializeHandlers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cfg := testConfig(config.DriverMemory)
	cfg.Breaker.Enabled = false
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	if _, err := repository.SeedCatalog(ctx, store); err != nil {
		t.Fatalf("SeedCatalog() error = %v", err)
	}

	handler, err := InitializeHTTPHandler(store, nil)
	if err != nil {
		t.Fatalf("InitializeHTTPHandler() error = %v", err)
	}
	router := mux.NewRouter()
	handler.RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/items/3", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Aloe Vera") {
		t.Errorf("GET /api/items/3 = %d %s", rec.Code, rec.Body.String())
	}

	grpcServer, err := InitializeGRPCServer(store, nil)
	if err != nil {
		t.Fatalf("InitializeGRPCServer() error = %v", err)
	}
	item, err := grpcServer.GetItem(ctx, wrapperspb.UInt32(3))
	if err != nil {
		t.Fatalf("GetItem() error = %v", err)
	}
	if got := item.GetFields()["name"].GetStringValue(); got != "Aloe Vera" {
		t.Errorf("GetItem() name = %q, want Aloe Vera", got)
	}
}
