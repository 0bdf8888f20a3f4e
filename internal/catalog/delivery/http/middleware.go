package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/tair/plant-catalog/pkg/auth"
	"github.com/tair/plant-catalog/pkg/logger"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UsernameKey contextKey = "username"
	RoleKey     contextKey = "role"
)

// bearerToken extracts the token from "Bearer <token>"
func bearerToken(r *http.Request) (string, bool) {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func withClaims(ctx context.Context, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, UsernameKey, claims.Username)
	return context.WithValue(ctx, RoleKey, claims.Role)
}

// UserIDFromContext returns the authenticated user, or zero for guests
func UserIDFromContext(ctx context.Context) uint {
	id, _ := ctx.Value(UserIDKey).(uint)
	return id
}

// AuthMiddleware validates the JWT and rejects guests
func AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			logger.Logger.Warn().Msg("Missing authorization header")
			respondError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		token, ok := bearerToken(r)
		if !ok {
			logger.Logger.Warn().Msg("Invalid authorization header format")
			respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Invalid token")
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		logger.Logger.Debug().
			Uint("user_id", claims.UserID).
			Str("username", claims.Username).
			Msg("User authenticated")

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	}
}

// OptionalAuthMiddleware validates JWT token if present, but doesn't require it
func OptionalAuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token, ok := bearerToken(r); ok {
			claims, err := auth.ValidateToken(token)
			if err == nil {
				logger.Logger.Debug().
					Uint("user_id", claims.UserID).
					Str("username", claims.Username).
					Msg("Optional auth: User identified")
				r = r.WithContext(withClaims(r.Context(), claims))
			}
		}

		next.ServeHTTP(w, r)
	}
}
