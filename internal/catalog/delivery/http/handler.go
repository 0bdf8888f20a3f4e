package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"github.com/tair/plant-catalog/internal/catalog/domain"
	"github.com/tair/plant-catalog/internal/catalog/usecase/command"
	"github.com/tair/plant-catalog/internal/catalog/usecase/query"
	"github.com/tair/plant-catalog/pkg/logger"
)

// CatalogHandler handles HTTP requests for the catalog using CQRS pattern
type CatalogHandler struct {
	// Command handlers
	toggleHandler *command.ToggleFavoriteHandler

	// Query handlers
	browseHandler     *query.BrowseItemsHandler
	getItemHandler    *query.GetItemHandler
	favoritesHandler  *query.ListFavoritesHandler
	isFavoriteHandler *query.IsFavoriteHandler
	trendingHandler   *query.GetTrendingHandler
	statsHandler      *query.GetStatsHandler

	store domain.Store
}

// NewCatalogHandler creates a new catalog handler with CQRS pattern (manual DI)
func NewCatalogHandler(store domain.Store, publisher domain.EventPublisher) *CatalogHandler {
	return NewCatalogHandlerWithDI(
		command.NewToggleFavoriteHandler(store, store, publisher),
		query.NewBrowseItemsHandler(store),
		query.NewGetItemHandler(store, store),
		query.NewListFavoritesHandler(store),
		query.NewIsFavoriteHandler(store),
		query.NewGetTrendingHandler(store),
		query.NewGetStatsHandler(store),
		store,
	)
}

// NewCatalogHandlerWithDI creates a new catalog handler using dependency injection
// This is used by Wire for automatic dependency injection
func NewCatalogHandlerWithDI(
	toggleHandler *command.ToggleFavoriteHandler,
	browseHandler *query.BrowseItemsHandler,
	getItemHandler *query.GetItemHandler,
	favoritesHandler *query.ListFavoritesHandler,
	isFavoriteHandler *query.IsFavoriteHandler,
	trendingHandler *query.GetTrendingHandler,
	statsHandler *query.GetStatsHandler,
	store domain.Store,
) *CatalogHandler {
	return &CatalogHandler{
		toggleHandler:     toggleHandler,
		browseHandler:     browseHandler,
		getItemHandler:    getItemHandler,
		favoritesHandler:  favoritesHandler,
		isFavoriteHandler: isFavoriteHandler,
		trendingHandler:   trendingHandler,
		statsHandler:      statsHandler,
		store:             store,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *CatalogHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		requestSummary.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	// Public routes (guests may browse, filter and see trending)
	router.HandleFunc("/api/items", h.metricsMiddleware("/api/items", OptionalAuthMiddleware(h.BrowseItems))).Methods("GET")
	router.HandleFunc("/api/items/filter", h.metricsMiddleware("/api/items/filter", OptionalAuthMiddleware(h.FilterItems))).Methods("POST")
	router.HandleFunc("/api/items/trending", h.metricsMiddleware("/api/items/trending", h.GetTrending)).Methods("GET")
	router.HandleFunc("/api/items/stats", h.metricsMiddleware("/api/items/stats", h.GetStats)).Methods("GET")
	router.HandleFunc("/api/items/{id:[0-9]+}", h.metricsMiddleware("/api/items/{id}", OptionalAuthMiddleware(h.GetItem))).Methods("GET")

	// Favorite routes (login required)
	router.HandleFunc("/api/favorites", h.metricsMiddleware("/api/favorites", AuthMiddleware(h.ListFavorites))).Methods("GET")
	router.HandleFunc("/api/favorites/{itemId:[0-9]+}", h.metricsMiddleware("/api/favorites/{itemId}", AuthMiddleware(h.IsFavorite))).Methods("GET")
	router.HandleFunc("/api/favorites/{itemId:[0-9]+}/toggle", h.metricsMiddleware("/api/favorites/{itemId}/toggle", AuthMiddleware(h.ToggleFavorite))).Methods("POST")
	router.HandleFunc("/api/favorite/toggle", h.metricsMiddleware("/api/favorite/toggle", AuthMiddleware(h.ToggleFavoriteBody))).Methods("POST")

	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
}

// BrowseItems handles GET /api/items
func (h *CatalogHandler) BrowseItems(w http.ResponseWriter, r *http.Request) {
	req, err := filterFromQuery(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.browse(w, r, req)
}

// FilterItems handles POST /api/items/filter
func (h *CatalogHandler) FilterItems(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if err := parseAndValidateRequest(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.browse(w, r, req)
}

func (h *CatalogHandler) browse(w http.ResponseWriter, r *http.Request, req FilterRequest) {
	items, err := h.browseHandler.Handle(r.Context(), query.BrowseItemsQuery{Criteria: req.Criteria()})
	if err != nil {
		respondDomainError(r.Context(), w, err, "Failed to browse items")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"items": items,
			"total": len(items),
		},
	})
}

// GetItem handles GET /api/items/{id}
func (h *CatalogHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	item, err := h.getItemHandler.Handle(r.Context(), query.GetItemQuery{
		ItemID: id,
		UserID: UserIDFromContext(r.Context()),
	})
	if err != nil {
		respondDomainError(r.Context(), w, err, "Failed to get item")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: item})
}

// GetTrending handles GET /api/items/trending
func (h *CatalogHandler) GetTrending(w http.ResponseWriter, r *http.Request) {
	req := TrendingRequest{}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		req.Limit = limit
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, validationError(err).Error())
		return
	}

	entries, err := h.trendingHandler.Handle(r.Context(), query.GetTrendingQuery{Limit: req.Limit})
	if err != nil {
		respondDomainError(r.Context(), w, err, "Failed to compute trending items")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: entries})
}

// GetStats handles GET /api/items/stats
func (h *CatalogHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(r.Context(), query.GetStatsQuery{})
	if err != nil {
		respondDomainError(r.Context(), w, err, "Failed to get statistics")
		return
	}

	totalItems.Set(float64(stats.TotalItems))
	respondJSON(w, http.StatusOK, Response{Success: true, Data: stats})
}

// ListFavorites handles GET /api/favorites
func (h *CatalogHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	items, err := h.favoritesHandler.Handle(r.Context(), query.ListFavoritesQuery{
		UserID: UserIDFromContext(r.Context()),
	})
	if err != nil {
		respondDomainError(r.Context(), w, err, "Failed to list favorites")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: items})
}

// IsFavorite handles GET /api/favorites/{itemId}
func (h *CatalogHandler) IsFavorite(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}

	favorited, err := h.isFavoriteHandler.Handle(r.Context(), query.IsFavoriteQuery{
		UserID: UserIDFromContext(r.Context()),
		ItemID: itemID,
	})
	if err != nil {
		respondDomainError(r.Context(), w, err, "Failed to check favorite")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    command.ToggleResult{ItemID: itemID, Favorited: favorited},
	})
}

// ToggleFavorite handles POST /api/favorites/{itemId}/toggle
func (h *CatalogHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}
	h.toggle(w, r, itemID)
}

// ToggleFavoriteBody handles POST /api/favorite/toggle
func (h *CatalogHandler) ToggleFavoriteBody(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if err := parseAndValidateRequest(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Target() == 0 {
		respondError(w, http.StatusBadRequest, "plant_id is required")
		return
	}
	h.toggle(w, r, req.Target())
}

func (h *CatalogHandler) toggle(w http.ResponseWriter, r *http.Request, itemID uint) {
	result, err := h.toggleHandler.Handle(r.Context(), command.ToggleFavoriteCommand{
		UserID: UserIDFromContext(r.Context()),
		ItemID: itemID,
	})
	if err != nil {
		favoriteToggles.WithLabelValues("error").Inc()
		respondDomainError(r.Context(), w, err, "Failed to toggle favorite")
		return
	}

	message := "Removed from favorites"
	label := "removed"
	if result.Favorited {
		message = "Added to favorites"
		label = "added"
	}
	favoriteToggles.WithLabelValues(label).Inc()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    result,
	})
}

// breakerState is implemented by stores guarded by a circuit breaker
type breakerState interface {
	State() string
}

// HealthCheck handles GET /health
func (h *CatalogHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"store": "up"}
	if b, ok := h.store.(breakerState); ok {
		status["breaker"] = b.State()
	}

	if err := h.store.Ping(r.Context()); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Health check failed")
		status["store"] = "down"
		respondJSON(w, http.StatusServiceUnavailable, Response{
			Success: false,
			Data:    status,
			Error:   "Database connection failed",
		})
		return
	}

	if count, err := h.store.Count(r.Context()); err == nil {
		totalItems.Set(float64(count))
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Catalog service is healthy",
		Data:    status,
	})
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	if err != nil || id == 0 {
		respondError(w, http.StatusBadRequest, "Invalid item ID")
		return 0, false
	}
	return uint(id), true
}

// statusFor maps domain error kinds onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrStoreUnavailable), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondDomainError(ctx context.Context, w http.ResponseWriter, err error, message string) {
	status := statusFor(err)

	event := logger.Warn(ctx)
	if status >= http.StatusInternalServerError {
		event = logger.Error(ctx)
	}
	event.Err(err).Int("status", status).Msg(message)

	switch status {
	case http.StatusNotFound:
		message = "Item not found"
	case http.StatusUnauthorized:
		message = "Login required"
	case http.StatusBadRequest:
		message = "Invalid input"
	case http.StatusServiceUnavailable:
		message = "Catalog temporarily unavailable"
	}
	respondError(w, status, message)
}

// Helper function for error responses
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Response{
		Success: false,
		Error:   message,
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
