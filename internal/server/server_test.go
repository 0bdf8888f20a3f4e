package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

// fakeHTTPServer blocks in ListenAndServe until Shutdown is called
type fakeHTTPServer struct {
	mu       sync.Mutex
	started  chan struct{}
	stop     chan struct{}
	shutdown bool
	failWith error
}

func newFakeHTTPServer() *fakeHTTPServer {
	return &fakeHTTPServer{started: make(chan struct{}, 1), stop: make(chan struct{})}
}

func (f *fakeHTTPServer) ListenAndServe() error {
	f.started <- struct{}{}
	if f.failWith != nil {
		return f.failWith
	}
	<-f.stop
	return http.ErrServerClosed
}

func (f *fakeHTTPServer) Shutdown(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.shutdown {
		f.shutdown = true
		close(f.stop)
	}
	return nil
}

func (f *fakeHTTPServer) wasShutdown() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shutdown
}

func TestHTTPService_GracefulShutdown(t *testing.T) {
	t.Parallel()

	fake := newFakeHTTPServer()
	svc := NewHTTPService(fake, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	<-fake.started
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
	if !fake.wasShutdown() {
		t.Error("Shutdown was not called")
	}
}

func TestHTTPService_ListenFailure(t *testing.T) {
	t.Parallel()

	fake := newFakeHTTPServer()
	fake.failWith = errors.New("address already in use")
	svc := NewHTTPService(fake, time.Second)

	err := svc.Serve(context.Background())
	if err == nil || !errors.Is(err, fake.failWith) {
		t.Errorf("Serve() error = %v, want wrapped listen failure", err)
	}
}

func TestSupervisor_RunsGRPCAndHTTP(t *testing.T) {
	t.Parallel()

	lis := bufconn.Listen(1 << 16)
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	grpcSvc := NewGRPCService(grpcServer, healthServer, func() (net.Listener, error) { return lis, nil }, time.Second)
	fake := newFakeHTTPServer()

	sup := NewSupervisor("catalog-test", time.Second)
	sup.Add(NewHTTPService(fake, time.Second))
	sup.Add(grpcSvc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	<-fake.started

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	defer conn.Close()

	callCtx, callCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer callCancel()
	resp, err := healthpb.NewHealthClient(conn).Check(callCtx, &healthpb.HealthCheckRequest{}, grpc.WaitForReady(true))
	if err != nil || resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("health check = %v, %v; want SERVING", resp.GetStatus(), err)
	}

	cancel()
	select {
	case <-errCh:
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor did not stop")
	}

	if !fake.wasShutdown() {
		t.Error("HTTP server was not shut down")
	}
	if grpcSvc.Serving(context.Background(), "") {
		t.Error("health should report NOT_SERVING after shutdown")
	}
}

func TestGRPCService_ListenFailure(t *testing.T) {
	t.Parallel()

	want := errors.New("port taken")
	svc := NewGRPCService(grpc.NewServer(), nil, func() (net.Listener, error) { return nil, want }, time.Second)

	if err := svc.Serve(context.Background()); !errors.Is(err, want) {
		t.Errorf("Serve() error = %v, want %v", err, want)
	}
}
