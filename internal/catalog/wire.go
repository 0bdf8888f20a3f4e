//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"

	"github.com/tair/plant-catalog/internal/catalog/delivery/grpc"
	"github.com/tair/plant-catalog/internal/catalog/delivery/http"
	"github.com/tair/plant-catalog/internal/catalog/domain"
	"github.com/tair/plant-catalog/internal/catalog/usecase/command"
	"github.com/tair/plant-catalog/internal/catalog/usecase/query"
)

// Command Handlers Providers
func ProvideToggleFavoriteHandler(store domain.Store, publisher domain.EventPublisher) *command.ToggleFavoriteHandler {
	return command.NewToggleFavoriteHandler(store, store, publisher)
}

// Query Handlers Providers
func ProvideBrowseItemsHandler(store domain.Store) *query.BrowseItemsHandler {
	return query.NewBrowseItemsHandler(store)
}

func ProvideGetItemHandler(store domain.Store) *query.GetItemHandler {
	return query.NewGetItemHandler(store, store)
}

func ProvideListFavoritesHandler(store domain.Store) *query.ListFavoritesHandler {
	return query.NewListFavoritesHandler(store)
}

func ProvideIsFavoriteHandler(store domain.Store) *query.IsFavoriteHandler {
	return query.NewIsFavoriteHandler(store)
}

func ProvideGetTrendingHandler(store domain.Store) *query.GetTrendingHandler {
	return query.NewGetTrendingHandler(store)
}

func ProvideGetStatsHandler(store domain.Store) *query.GetStatsHandler {
	return query.NewGetStatsHandler(store)
}

// Wire sets
var CommandHandlerSet = wire.NewSet(
	ProvideToggleFavoriteHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideBrowseItemsHandler,
	ProvideGetItemHandler,
	ProvideListFavoritesHandler,
	ProvideIsFavoriteHandler,
	ProvideGetTrendingHandler,
	ProvideGetStatsHandler,
)

var AllHandlersSet = wire.NewSet(
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(store domain.Store, publisher domain.EventPublisher) (*http.CatalogHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewCatalogHandlerWithDI,
	)
	return nil, nil
}

// InitializeGRPCServer initializes gRPC server with all dependencies
func InitializeGRPCServer(store domain.Store, publisher domain.EventPublisher) (*grpc.CatalogGRPCServer, error) {
	wire.Build(
		AllHandlersSet,
		grpc.NewCatalogGRPCServer,
	)
	return nil, nil
}
