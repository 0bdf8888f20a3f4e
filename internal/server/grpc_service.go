package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/tair/plant-catalog/pkg/logger"
)

// ListenFunc opens the listener a gRPC server accepts on
type ListenFunc func() (net.Listener, error)

// TCPListener listens on a TCP address such as ":9090"
func TCPListener(addr string) ListenFunc {
	return func() (net.Listener, error) {
		return net.Listen("tcp", addr)
	}
}

// GRPCService runs a gRPC server under a suture supervisor
type GRPCService struct {
	server          *grpc.Server
	health          *health.Server
	listen          ListenFunc
	shutdownTimeout time.Duration
}

// NewGRPCService wraps server. healthServer may be nil; when set it is
// switched to NOT_SERVING before the server drains.
func NewGRPCService(server *grpc.Server, healthServer *health.Server, listen ListenFunc, shutdownTimeout time.Duration) *GRPCService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &GRPCService{
		server:          server,
		health:          healthServer,
		listen:          listen,
		shutdownTimeout: shutdownTimeout,
	}
}

// Serve blocks until ctx is canceled or the server fails
func (s *GRPCService) Serve(ctx context.Context) error {
	lis, err := s.listen()
	if err != nil {
		return fmt.Errorf("grpc listen failed: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("grpc server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		logger.Logger.Info().Msg("Shutting down gRPC server")
		if s.health != nil {
			s.health.Shutdown()
		}

		stopped := make(chan struct{})
		go func() {
			s.server.GracefulStop()
			close(stopped)
		}()

		select {
		case <-stopped:
		case <-time.After(s.shutdownTimeout):
			logger.Logger.Warn().Msg("gRPC graceful stop timed out, forcing stop")
			s.server.Stop()
		}

		<-errCh
		return ctx.Err()
	}
}

// Serving reports whether the health server currently advertises service as serving
func (s *GRPCService) Serving(ctx context.Context, service string) bool {
	if s.health == nil {
		return false
	}
	resp, err := s.health.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	return err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
}

func (s *GRPCService) String() string {
	return "grpc-server"
}
