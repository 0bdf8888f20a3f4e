package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/tair/plant-catalog/internal/catalog/domain"
	"github.com/tair/plant-catalog/internal/catalog/repository"
	"github.com/tair/plant-catalog/internal/catalog/usecase/command"
	"github.com/tair/plant-catalog/internal/catalog/usecase/query"
	"github.com/tair/plant-catalog/pkg/auth"
)

func init() {
	auth.Configure("grpc-test-secret", time.Hour)
}

func newCatalogServer(store domain.Store) *CatalogGRPCServer {
	return NewCatalogGRPCServer(
		command.NewToggleFavoriteHandler(store, store, nil),
		query.NewBrowseItemsHandler(store),
		query.NewGetItemHandler(store, store),
		query.NewListFavoritesHandler(store),
		query.NewIsFavoriteHandler(store),
		query.NewGetTrendingHandler(store),
	)
}

// dial starts an in-process server over bufconn and returns a connection to it
func dial(t *testing.T, store domain.Store) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	server, _ := NewServer(newCatalogServer(store))
	go func() { _ = server.Serve(lis) }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func seeded(t *testing.T) domain.Store {
	t.Helper()
	store := repository.NewMemoryCatalogRepository()
	if _, err := repository.SeedCatalog(context.Background(), store); err != nil {
		t.Fatalf("SeedCatalog() error = %v", err)
	}
	return store
}

func asUser(t *testing.T, userID uint) context.Context {
	t.Helper()
	token, err := auth.GenerateToken(userID, "grpc-user", "user")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
}

func guest(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func itemNames(list *structpb.ListValue) []string {
	var out []string
	for _, v := range list.GetValues() {
		out = append(out, ItemFromStruct(v.GetStructValue()).Name)
	}
	return out
}

func TestBrowseItems(t *testing.T) {
	t.Parallel()
	client := NewCatalogServiceClient(dial(t, seeded(t)))

	tests := []struct {
		name      string
		criteria  map[string]interface{}
		wantCount int
		wantFirst string
	}{
		{name: "no criteria", criteria: map[string]interface{}{}, wantCount: 12, wantFirst: "Lavender"},
		{name: "cost only", criteria: map[string]interface{}{"max_cost": 4.0}, wantCount: 2, wantFirst: "Mint"},
		{name: "text and cost", criteria: map[string]interface{}{"benefit": "anxiety", "max_cost": 4.5}, wantCount: 2},
		{name: "no match", criteria: map[string]interface{}{"name": "granite"}, wantCount: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := structpb.NewStruct(tt.criteria)
			if err != nil {
				t.Fatalf("NewStruct() error = %v", err)
			}
			list, err := client.BrowseItems(guest(t), req)
			if err != nil {
				t.Fatalf("BrowseItems() error = %v", err)
			}
			got := itemNames(list)
			if len(got) != tt.wantCount {
				t.Fatalf("BrowseItems() = %v, want %d items", got, tt.wantCount)
			}
			if tt.wantFirst != "" && got[0] != tt.wantFirst {
				t.Errorf("first item = %s, want %s", got[0], tt.wantFirst)
			}
		})
	}
}

func TestBrowseItems_BadCriteria(t *testing.T) {
	t.Parallel()
	client := NewCatalogServiceClient(dial(t, seeded(t)))

	req, _ := structpb.NewStruct(map[string]interface{}{"max_cost": "cheap"})
	_, err := client.BrowseItems(guest(t), req)
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("code = %v, want InvalidArgument", status.Code(err))
	}
}

func TestToggleFavoriteRoundTrip(t *testing.T) {
	t.Parallel()
	client := NewCatalogServiceClient(dial(t, seeded(t)))
	ctx := asUser(t, 21)

	first, err := client.ToggleFavorite(ctx, wrapperspb.UInt32(1))
	if err != nil || !first.GetValue() {
		t.Fatalf("first ToggleFavorite() = %v, %v; want true", first.GetValue(), err)
	}

	is, err := client.IsFavorite(ctx, wrapperspb.UInt32(1))
	if err != nil || !is.GetValue() {
		t.Errorf("IsFavorite() = %v, %v; want true", is.GetValue(), err)
	}

	view, err := client.GetItem(ctx, wrapperspb.UInt32(1))
	if err != nil {
		t.Fatalf("GetItem() error = %v", err)
	}
	if !view.GetFields()["is_favorite"].GetBoolValue() {
		t.Error("GetItem() is_favorite = false, want true")
	}

	list, err := client.ListFavorites(ctx, &emptypb.Empty{})
	if err != nil {
		t.Fatalf("ListFavorites() error = %v", err)
	}
	if got := itemNames(list); len(got) != 1 || got[0] != "Lavender" {
		t.Errorf("ListFavorites() = %v, want [Lavender]", got)
	}

	trending, err := client.GetTrending(guest(t), wrapperspb.Int32(1))
	if err != nil {
		t.Fatalf("GetTrending() error = %v", err)
	}
	top := trending.GetValues()[0].GetStructValue().GetFields()
	if top["favorite_count"].GetNumberValue() != 1 ||
		ItemFromStruct(top["item"].GetStructValue()).ID != 1 {
		t.Errorf("GetTrending() top = %v", top)
	}

	second, err := client.ToggleFavorite(ctx, wrapperspb.UInt32(1))
	if err != nil || second.GetValue() {
		t.Errorf("second ToggleFavorite() = %v, %v; want false", second.GetValue(), err)
	}
}

func TestErrorCodes(t *testing.T) {
	t.Parallel()
	client := NewCatalogServiceClient(dial(t, seeded(t)))

	tests := []struct {
		name string
		call func() error
		want codes.Code
	}{
		{
			name: "toggle without token",
			call: func() error {
				_, err := client.ToggleFavorite(guest(t), wrapperspb.UInt32(1))
				return err
			},
			want: codes.Unauthenticated,
		},
		{
			name: "list with forged token",
			call: func() error {
				ctx := metadata.AppendToOutgoingContext(guest(t), "authorization", "Bearer forged")
				_, err := client.ListFavorites(ctx, &emptypb.Empty{})
				return err
			},
			want: codes.Unauthenticated,
		},
		{
			name: "toggle unknown item",
			call: func() error {
				_, err := client.ToggleFavorite(asUser(t, 2), wrapperspb.UInt32(999))
				return err
			},
			want: codes.NotFound,
		},
		{
			name: "zero item id",
			call: func() error {
				_, err := client.IsFavorite(asUser(t, 2), wrapperspb.UInt32(0))
				return err
			},
			want: codes.InvalidArgument,
		},
		{
			name: "unknown item lookup",
			call: func() error {
				_, err := client.GetItem(guest(t), wrapperspb.UInt32(404))
				return err
			},
			want: codes.NotFound,
		},
		{
			name: "trending limit too large",
			call: func() error {
				_, err := client.GetTrending(guest(t), wrapperspb.Int32(101))
				return err
			},
			want: codes.InvalidArgument,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := status.Code(tt.call()); got != tt.want {
				t.Errorf("code = %v, want %v", got, tt.want)
			}
		})
	}
}

// brokenStore reports every read as a transient failure
type brokenStore struct {
	*repository.MemoryCatalogRepository
}

func (brokenStore) FindAll(context.Context, *float64) ([]domain.Item, error) {
	return nil, domain.ErrStoreUnavailable
}

func TestStoreUnavailableIsUnavailable(t *testing.T) {
	t.Parallel()
	client := NewCatalogServiceClient(dial(t, brokenStore{repository.NewMemoryCatalogRepository()}))

	_, err := client.BrowseItems(guest(t), &structpb.Struct{})
	if status.Code(err) != codes.Unavailable {
		t.Errorf("code = %v, want Unavailable", status.Code(err))
	}
}

func TestHealthService(t *testing.T) {
	t.Parallel()
	conn := dial(t, seeded(t))

	resp, err := healthpb.NewHealthClient(conn).Check(guest(t), &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("status = %v, want SERVING", resp.GetStatus())
	}
}
