package http

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/tair/plant-catalog/pkg/auth"
	"github.com/tair/plant-catalog/pkg/logger"
)

// RateLimiter implements a sliding-window limit shared through Redis.
// Without Redis, or while Redis errors, a per-process token bucket
// enforces the same average rate.
type RateLimiter struct {
	redis       *redis.Client
	maxRequests int
	window      time.Duration

	mu        sync.Mutex
	local     map[string]*localEntry
	lastSweep time.Time
	now       func() time.Time
}

// localEntry is one client's fallback bucket
type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// unlimitedPaths serve probes and scrapers, which often share one address
var unlimitedPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// NewRateLimiter creates a new rate limiter; redisClient may be nil
func NewRateLimiter(redisClient *redis.Client, maxRequests int, window time.Duration) *RateLimiter {
	if maxRequests <= 0 {
		maxRequests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		redis:       redisClient,
		maxRequests: maxRequests,
		window:      window,
		local:       make(map[string]*localEntry),
		now:         time.Now,
	}
}

// identifier is the user id for valid bearer tokens, otherwise the client IP
func identifier(r *http.Request) string {
	if token, ok := bearerToken(r); ok {
		if claims, err := auth.ValidateToken(token); err == nil {
			return fmt.Sprintf("user:%d", claims.UserID)
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

// Middleware enforces the limit on every path except health and metrics
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if unlimitedPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		id := identifier(r)

		allowed, remaining, resetTime, backend := rl.allow(r.Context(), id)

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.maxRequests))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			rateLimited.WithLabelValues(backend).Inc()
			logger.Logger.Warn().
				Str("identifier", id).
				Int("limit", rl.maxRequests).
				Str("backend", backend).
				Msg("Rate limit exceeded")

			retryAfter := time.Until(resetTime).Round(time.Second)
			if retryAfter < time.Second {
				retryAfter = time.Second
			}
			w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			respondError(w, http.StatusTooManyRequests,
				fmt.Sprintf("Too many requests. Try again in %v", retryAfter))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ctx context.Context, id string) (bool, int, time.Time, string) {
	if rl.redis != nil {
		allowed, remaining, reset, err := rl.checkLimit(ctx, id)
		if err == nil {
			return allowed, remaining, reset, "redis"
		}
		logger.Logger.Error().
			Err(err).
			Str("identifier", id).
			Msg("Rate limiter error, using local limiter")
	}
	allowed, remaining, reset := rl.checkLocal(id)
	return allowed, remaining, reset, "local"
}

// checkLimit checks if request is within rate limit using sliding window
func (rl *RateLimiter) checkLimit(ctx context.Context, id string) (bool, int, time.Time, error) {
	key := fmt.Sprintf("ratelimit:%s", id)
	now := time.Now()
	windowStart := now.Add(-rl.window)

	pipe := rl.redis.Pipeline()

	// Remove old entries outside the window
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixNano()))

	// Count requests in current window
	countCmd := pipe.ZCard(ctx, key)

	// Add current request
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	})

	pipe.Expire(ctx, key, rl.window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := countCmd.Val()
	remaining := rl.maxRequests - int(count) - 1
	if remaining < 0 {
		remaining = 0
	}

	return count < int64(rl.maxRequests), remaining, now.Add(rl.window), nil
}

func (rl *RateLimiter) checkLocal(id string) (bool, int, time.Time) {
	now := rl.now()

	rl.mu.Lock()
	rl.sweep(now)
	entry, ok := rl.local[id]
	if !ok {
		every := rate.Every(rl.window / time.Duration(rl.maxRequests))
		entry = &localEntry{limiter: rate.NewLimiter(every, rl.maxRequests)}
		rl.local[id] = entry
	}
	entry.lastSeen = now
	rl.mu.Unlock()

	allowed := entry.limiter.AllowN(now, 1)
	remaining := int(entry.limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return allowed, remaining, now.Add(rl.window)
}

// sweep drops buckets idle for a full window, at most once per window.
// Such a bucket has refilled completely, so dropping it loses no state.
// Callers hold rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	rl.lastSweep = now
	for id, entry := range rl.local {
		if now.Sub(entry.lastSeen) >= rl.window {
			delete(rl.local, id)
		}
	}
}

// localSize returns the number of tracked fallback buckets
func (rl *RateLimiter) localSize() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.local)
}
