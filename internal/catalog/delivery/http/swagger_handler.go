package http

import (
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	if swaggerHandler == nil {
		swaggerHandler = httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))
	}
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// BrowseItems godoc
// @Summary Browse the catalog
// @Description List every item in catalog order. Optional text parameters switch to relevance ranking; max_cost always narrows.
// @Tags Items
// @Produce json
// @Param name query string false "Name terms"
// @Param benefit query string false "Benefit terms"
// @Param description query string false "Description terms"
// @Param location query string false "Location terms"
// @Param max_cost query number false "Cost ceiling; non-positive means none"
// @Success 200 {object} object{success=bool,data=object{items=array,total=int}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /api/items [get]
func (h *CatalogHandler) BrowseItemsDoc() {}

// FilterItems godoc
// @Summary Filter and rank items
// @Description Compose optional criteria into a relevance query. An empty body returns the whole catalog.
// @Tags Items
// @Accept json
// @Produce json
// @Param request body object{name=string,benefit=string,description=string,location=string,max_cost=number} true "Criteria"
// @Success 200 {object} object{success=bool,data=object{items=array,total=int}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /api/items/filter [post]
func (h *CatalogHandler) FilterItemsDoc() {}

// GetItem godoc
// @Summary Get item by ID
// @Description Get a catalog item; is_favorite is included for authenticated callers
// @Tags Items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/items/{id} [get]
func (h *CatalogHandler) GetItemDoc() {}

// GetTrending godoc
// @Summary Most favorited items
// @Description Items ordered by favorite count, ties by ascending id
// @Tags Items
// @Produce json
// @Param limit query int false "Entries to return (default 3, max 100)"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /api/items/trending [get]
func (h *CatalogHandler) GetTrendingDoc() {}

// GetStats godoc
// @Summary Get catalog statistics
// @Tags Items
// @Produce json
// @Success 200 {object} object{success=bool,data=object}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /api/items/stats [get]
func (h *CatalogHandler) GetStatsDoc() {}

// ListFavorites godoc
// @Summary List my favorites
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/favorites [get]
func (h *CatalogHandler) ListFavoritesDoc() {}

// IsFavorite godoc
// @Summary Check a favorite
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Param itemId path int true "Item ID"
// @Success 200 {object} object{success=bool,data=object{item_id=int,favorite=bool}}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/favorites/{itemId} [get]
func (h *CatalogHandler) IsFavoriteDoc() {}

// ToggleFavorite godoc
// @Summary Toggle a favorite
// @Description Flip the caller's favorite on an item and return the new state
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Param itemId path int true "Item ID"
// @Success 200 {object} object{success=bool,message=string,data=object{item_id=int,favorite=bool}}
// @Failure 401 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /api/favorites/{itemId}/toggle [post]
func (h *CatalogHandler) ToggleFavoriteDoc() {}

// ToggleFavoriteBody godoc
// @Summary Toggle a favorite (body form)
// @Tags Favorites
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{plant_id=int} true "Item to toggle"
// @Success 200 {object} object{success=bool,message=string,data=object{item_id=int,favorite=bool}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 401 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/favorite/toggle [post]
func (h *CatalogHandler) ToggleFavoriteBodyDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *CatalogHandler) HealthCheckDoc() {}
