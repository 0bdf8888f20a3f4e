package grpc

import (
	"context"
	"errors"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/tair/plant-catalog/internal/catalog/domain"
	"github.com/tair/plant-catalog/internal/catalog/usecase/command"
	"github.com/tair/plant-catalog/internal/catalog/usecase/query"
	"github.com/tair/plant-catalog/pkg/logger"
)

// CatalogGRPCServer implements the CatalogService gRPC server
type CatalogGRPCServer struct {
	UnimplementedCatalogServiceServer

	// Command handlers
	toggleHandler *command.ToggleFavoriteHandler

	// Query handlers
	browseHandler     *query.BrowseItemsHandler
	getItemHandler    *query.GetItemHandler
	favoritesHandler  *query.ListFavoritesHandler
	isFavoriteHandler *query.IsFavoriteHandler
	trendingHandler   *query.GetTrendingHandler
}

// NewCatalogGRPCServer creates a new gRPC server
func NewCatalogGRPCServer(
	toggleHandler *command.ToggleFavoriteHandler,
	browseHandler *query.BrowseItemsHandler,
	getItemHandler *query.GetItemHandler,
	favoritesHandler *query.ListFavoritesHandler,
	isFavoriteHandler *query.IsFavoriteHandler,
	trendingHandler *query.GetTrendingHandler,
) *CatalogGRPCServer {
	return &CatalogGRPCServer{
		toggleHandler:     toggleHandler,
		browseHandler:     browseHandler,
		getItemHandler:    getItemHandler,
		favoritesHandler:  favoritesHandler,
		isFavoriteHandler: isFavoriteHandler,
		trendingHandler:   trendingHandler,
	}
}

// NewServer builds a grpc.Server with the catalog service, the standard
// health service and the interceptor chain registered
func NewServer(catalog *CatalogGRPCServer) (*grpc.Server, *health.Server) {
	server := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			RecoveryInterceptor,
			MetricsInterceptor,
			LoggingInterceptor,
			AuthInterceptor,
		),
	)

	RegisterCatalogServiceServer(server, catalog)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)

	return server, healthServer
}

// BrowseItems returns every item or the ranked matches for the criteria
func (s *CatalogGRPCServer) BrowseItems(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	criteria, err := criteriaFromStruct(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	items, err := s.browseHandler.Handle(ctx, query.BrowseItemsQuery{Criteria: criteria})
	if err != nil {
		return nil, toStatus(ctx, err, "failed to browse items")
	}

	return encode(itemsToList(items))
}

// GetItem returns one item, flagged for the caller when authenticated
func (s *CatalogGRPCServer) GetItem(ctx context.Context, req *wrapperspb.UInt32Value) (*structpb.Struct, error) {
	view, err := s.getItemHandler.Handle(ctx, query.GetItemQuery{
		ItemID: uint(req.GetValue()),
		UserID: UserIDFromContext(ctx),
	})
	if err != nil {
		return nil, toStatus(ctx, err, "failed to get item")
	}

	return encode(itemViewToStruct(view))
}

// ToggleFavorite flips the caller's favorite for an item and returns the new state
func (s *CatalogGRPCServer) ToggleFavorite(ctx context.Context, req *wrapperspb.UInt32Value) (*wrapperspb.BoolValue, error) {
	result, err := s.toggleHandler.Handle(ctx, command.ToggleFavoriteCommand{
		UserID: UserIDFromContext(ctx),
		ItemID: uint(req.GetValue()),
	})
	if err != nil {
		return nil, toStatus(ctx, err, "failed to toggle favorite")
	}

	return wrapperspb.Bool(result.Favorited), nil
}

// IsFavorite reports whether the caller has favorited the item
func (s *CatalogGRPCServer) IsFavorite(ctx context.Context, req *wrapperspb.UInt32Value) (*wrapperspb.BoolValue, error) {
	favorited, err := s.isFavoriteHandler.Handle(ctx, query.IsFavoriteQuery{
		UserID: UserIDFromContext(ctx),
		ItemID: uint(req.GetValue()),
	})
	if err != nil {
		return nil, toStatus(ctx, err, "failed to check favorite")
	}

	return wrapperspb.Bool(favorited), nil
}

// ListFavorites returns the caller's favorite items
func (s *CatalogGRPCServer) ListFavorites(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	items, err := s.favoritesHandler.Handle(ctx, query.ListFavoritesQuery{UserID: UserIDFromContext(ctx)})
	if err != nil {
		return nil, toStatus(ctx, err, "failed to list favorites")
	}

	return encode(itemsToList(items))
}

// GetTrending returns the most favorited items; zero or negative means the default size
func (s *CatalogGRPCServer) GetTrending(ctx context.Context, req *wrapperspb.Int32Value) (*structpb.ListValue, error) {
	limit := int(req.GetValue())
	if limit > query.MaxTrendingLimit {
		return nil, status.Errorf(codes.InvalidArgument, "limit must be at most %d", query.MaxTrendingLimit)
	}

	entries, err := s.trendingHandler.Handle(ctx, query.GetTrendingQuery{Limit: limit})
	if err != nil {
		return nil, toStatus(ctx, err, "failed to compute trending items")
	}

	return encode(trendingToList(entries))
}

func encode[T any](msg T, err error) (T, error) {
	if err != nil {
		logger.Logger.Error().Err(err).Msg("gRPC: failed to encode response")
		var zero T
		return zero, status.Error(codes.Internal, "failed to encode response")
	}
	return msg, nil
}

// toStatus maps domain error kinds onto gRPC codes
func toStatus(ctx context.Context, err error, message string) error {
	code := codes.Internal
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		code = codes.InvalidArgument
	case errors.Is(err, domain.ErrUnauthorized):
		code = codes.Unauthenticated
	case errors.Is(err, domain.ErrNotFound):
		code = codes.NotFound
	case errors.Is(err, domain.ErrStoreUnavailable), errors.Is(err, context.DeadlineExceeded):
		code = codes.Unavailable
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	}

	logger.Warn(ctx).Err(err).Str("grpc_code", code.String()).Msg("gRPC: " + message)
	return status.Error(code, message)
}
