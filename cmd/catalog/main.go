package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	_ "github.com/tair/plant-catalog/docs"
	"github.com/tair/plant-catalog/internal/catalog"
	grpcDelivery "github.com/tair/plant-catalog/internal/catalog/delivery/grpc"
	httpDelivery "github.com/tair/plant-catalog/internal/catalog/delivery/http"
	"github.com/tair/plant-catalog/internal/catalog/domain"
	"github.com/tair/plant-catalog/internal/catalog/repository"
	"github.com/tair/plant-catalog/internal/config"
	"github.com/tair/plant-catalog/internal/server"
	"github.com/tair/plant-catalog/kafka"
	"github.com/tair/plant-catalog/pkg/auth"
	"github.com/tair/plant-catalog/pkg/logger"
	"github.com/tair/plant-catalog/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Init(cfg.Service.Name, !cfg.IsProduction())
	logger.SetLevel(cfg.Service.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.Service.Name).
		Str("environment", cfg.Service.Environment).
		Str("log_level", cfg.Service.LogLevel).
		Str("store", cfg.Store.Driver).
		Msg("Starting catalog service")

	auth.Configure(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize tracer
	tp, err := tracing.InitTracer(tracing.Config{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		JaegerEndpoint: cfg.Tracing.JaegerEndpoint,
		Enabled:        cfg.Tracing.Enabled,
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := catalog.OpenStore(ctx, cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to open catalog store")
	}
	defer store.Close()

	if cfg.Store.Seed {
		inserted, err := repository.SeedCatalog(ctx, store)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to seed catalog")
		}
		logger.Logger.Info().Int("inserted", inserted).Msg("Catalog seeded")
	}

	publisher := newPublisher(cfg)
	if closer, ok := publisher.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	redisClient := newRedisClient(ctx, cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Initialize handlers with Wire DI
	handler, err := catalog.InitializeHTTPHandler(store, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize HTTP handler")
	}
	grpcCatalog, err := catalog.InitializeGRPCServer(store, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize gRPC server")
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr(),
		Handler:           newRouter(cfg, handler, redisClient),
		ReadHeaderTimeout: 10 * time.Second,
	}
	grpcServer, healthServer := grpcDelivery.NewServer(grpcCatalog)

	supervisor := server.NewSupervisor(cfg.Service.Name, cfg.Server.ShutdownTimeout)
	supervisor.Add(server.NewHTTPService(httpServer, cfg.Server.ShutdownTimeout))
	supervisor.Add(server.NewGRPCService(grpcServer, healthServer,
		server.TCPListener(cfg.Server.GRPCAddr()), cfg.Server.ShutdownTimeout))

	logger.Logger.Info().
		Int("http_port", cfg.Server.HTTPPort).
		Int("grpc_port", cfg.Server.GRPCPort).
		Str("metrics_endpoint", "/metrics").
		Str("swagger", "/swagger/index.html").
		Msg("Servers starting")

	if err := supervisor.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Logger.Error().Err(err).Msg("Supervisor stopped with error")
	}

	logger.Logger.Info().Msg("Catalog service stopped")
}

func newRouter(cfg *config.Config, handler *httpDelivery.CatalogHandler, redisClient *redis.Client) http.Handler {
	router := mux.NewRouter()

	middlewareConfig := httpDelivery.DefaultMiddlewareConfig()
	middlewareConfig.EnableTracing = cfg.Tracing.Enabled
	middlewareConfig.TimeoutDuration = cfg.Server.RequestTimeout
	middlewareConfig.CORSOptions.AllowedOrigins = cfg.Server.CORSOrigins
	middlewareConfig.RateLimiter = httpDelivery.NewRateLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	httpDelivery.RegisterMiddlewares(router, middlewareConfig)

	handler.RegisterRoutes(router)
	router.Handle("/metrics", promhttp.Handler())
	httpDelivery.RegisterSwaggerDocs(router, nil)

	return httpDelivery.SetupCORS(middlewareConfig)(router)
}

// newPublisher returns nil when Kafka is not configured or unreachable;
// favorites still work, events are just not emitted
func newPublisher(cfg *config.Config) domain.EventPublisher {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Logger.Info().Msg("Kafka brokers not configured, favorite events disabled")
		return nil
	}
	publisher, err := kafka.NewPublisher(cfg.Kafka.Brokers)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Kafka unavailable, favorite events disabled")
		return nil
	}
	return publisher
}

// newRedisClient returns nil without an address; an unreachable Redis is
// kept because the rate limiter falls back per request
func newRedisClient(ctx context.Context, cfg *config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis not reachable, rate limiting falls back to local limiter")
	} else {
		logger.Logger.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to Redis")
	}
	return client
}

