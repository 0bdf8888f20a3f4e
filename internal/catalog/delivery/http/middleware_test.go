package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, Response{Success: true})
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()
	valid := tokenFor(t, 42)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   uint
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc.def.ghi", wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK, wantUser: 42},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotUser uint
			handler := AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
				gotUser = UserIDFromContext(r.Context())
				okHandler(w, r)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if gotUser != tt.wantUser {
				t.Errorf("user = %d, want %d", gotUser, tt.wantUser)
			}
		})
	}
}

func TestOptionalAuthMiddleware_GuestPassesThrough(t *testing.T) {
	t.Parallel()

	called := false
	handler := OptionalAuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if id := UserIDFromContext(r.Context()); id != 0 {
			t.Errorf("guest user id = %d, want 0", id)
		}
		okHandler(w, r)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer expired-or-forged")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called || rec.Code != http.StatusOK {
		t.Errorf("invalid optional token should fall back to guest, got %d called=%v", rec.Code, called)
	}
}

func TestRequestIDAndSecurityHeaders(t *testing.T) {
	t.Parallel()

	router := mux.NewRouter()
	config := DefaultMiddlewareConfig()
	config.EnableTracing = false
	RegisterMiddlewares(router, config)
	router.HandleFunc("/ping", okHandler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID not generated")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing")
	}

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "caller-id")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "caller-id" {
		t.Errorf("X-Request-ID = %q, want caller-id", got)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Parallel()

	handler := RecoveryMiddleware()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestRateLimiter_LocalFallback(t *testing.T) {
	t.Parallel()

	unreachable := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = unreachable.Close() })

	tests := []struct {
		name  string
		redis *redis.Client
	}{
		{name: "no redis", redis: nil},
		{name: "redis down", redis: unreachable},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			limiter := NewRateLimiter(tt.redis, 3, time.Minute)
			handler := limiter.Middleware(http.HandlerFunc(okHandler))

			send := func(remoteAddr string) *httptest.ResponseRecorder {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				req.RemoteAddr = remoteAddr
				rec := httptest.NewRecorder()
				handler.ServeHTTP(rec, req)
				return rec
			}

			for i := 0; i < 3; i++ {
				if rec := send("10.0.0.1:5000"); rec.Code != http.StatusOK {
					t.Fatalf("request %d = %d, want 200", i+1, rec.Code)
				}
			}

			rec := send("10.0.0.1:5001")
			if rec.Code != http.StatusTooManyRequests {
				t.Fatalf("fourth request = %d, want 429", rec.Code)
			}
			if retry, err := strconv.Atoi(rec.Header().Get("Retry-After")); err != nil || retry < 1 {
				t.Errorf("Retry-After = %q", rec.Header().Get("Retry-After"))
			}
			if rec.Header().Get("X-RateLimit-Limit") != "3" {
				t.Errorf("X-RateLimit-Limit = %q", rec.Header().Get("X-RateLimit-Limit"))
			}

			// other clients have their own budget
			if rec := send("10.0.0.2:5000"); rec.Code != http.StatusOK {
				t.Errorf("other client = %d, want 200", rec.Code)
			}
		})
	}
}

func TestRateLimiter_IdentifiesUsersByToken(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:1234"
	if got := identifier(req); got != "ip:192.0.2.7" {
		t.Errorf("guest identifier = %q", got)
	}

	req.Header.Set("Authorization", "Bearer "+tokenFor(t, 9))
	if got := identifier(req); got != "user:9" {
		t.Errorf("user identifier = %q, want user:9", got)
	}
}

func TestRateLimiter_NormalizesConfig(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(nil, 0, 0)
	if limiter.maxRequests != 1 || limiter.window != time.Minute {
		t.Errorf("limits = %d/%v, want 1/1m", limiter.maxRequests, limiter.window)
	}
	allowed, _, _, backend := limiter.allow(context.Background(), "x")
	if !allowed || backend != "local" {
		t.Errorf("first call allowed=%v backend=%s", allowed, backend)
	}
}

func TestRateLimiter_EvictsIdleLocalBuckets(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(nil, 2, time.Minute)
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }

	for i := 0; i < 1000; i++ {
		limiter.checkLocal("ip:10.1." + strconv.Itoa(i/256) + "." + strconv.Itoa(i%256))
	}
	if n := limiter.localSize(); n != 1000 {
		t.Fatalf("localSize() = %d, want 1000", n)
	}

	// one client stays active half a window later
	clock = clock.Add(30 * time.Second)
	limiter.checkLocal("ip:10.1.0.0")

	clock = clock.Add(31 * time.Second)
	limiter.checkLocal("ip:192.0.2.1")
	if n := limiter.localSize(); n != 2 {
		t.Errorf("localSize() after a window = %d, want 2 (active client and newcomer)", n)
	}

	clock = clock.Add(2 * time.Minute)
	limiter.checkLocal("ip:192.0.2.2")
	if n := limiter.localSize(); n != 1 {
		t.Errorf("localSize() after idle period = %d, want 1", n)
	}
}

func TestRateLimiter_EvictionKeepsActiveBudget(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(nil, 2, time.Minute)
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }

	const busy = "ip:10.0.0.9"
	for i := 0; i < 2; i++ {
		if allowed, _, _ := limiter.checkLocal(busy); !allowed {
			t.Fatalf("request %d denied", i+1)
		}
	}
	clock = clock.Add(45 * time.Second)
	limiter.checkLocal(busy)
	entry := limiter.local[busy]

	// another client triggers the sweep twenty seconds later
	clock = clock.Add(20 * time.Second)
	limiter.checkLocal("ip:10.0.0.10")

	if limiter.local[busy] != entry {
		t.Fatal("sweep replaced the bucket of a client seen within the window")
	}
	if tokens := entry.limiter.TokensAt(clock); tokens >= 2 {
		t.Errorf("busy bucket holds %.2f tokens, want its spent budget kept", tokens)
	}
}

func TestRateLimiter_SkipsHealthAndMetrics(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(nil, 1, time.Minute)
	handler := limiter.Middleware(http.HandlerFunc(okHandler))

	send := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "10.9.9.9:4000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 5; i++ {
		for _, path := range []string{"/health", "/metrics"} {
			if code := send(path); code != http.StatusOK {
				t.Fatalf("%s request %d = %d, want 200", path, i+1, code)
			}
		}
	}

	if code := send("/api/items"); code != http.StatusOK {
		t.Fatalf("first api request = %d, want 200", code)
	}
	if code := send("/api/items"); code != http.StatusTooManyRequests {
		t.Errorf("second api request = %d, want 429", code)
	}
}
