package main

// @title Plant Catalog API
// @version 1.0
// @description Plant catalog browsing, relevance filtering, favorites and trending, with full observability (logging, tracing, metrics)
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Items
// @tag.description Catalog browsing, filtering and trending endpoints

// @tag.name Favorites
// @tag.description Per-user favorite endpoints (login required)

// @tag.name Health
// @tag.description Health check endpoints

// @tag.name Swagger
// @tag.description Swagger documentation endpoints
