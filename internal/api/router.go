package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Stock-Chart-Service-Backend/internal/api/middleware"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/config"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(systemService *service.SystemService, stockService *service.StockService, searchService *service.SearchService, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/stocks", func(r chi.Router) {
			stockHandler := handlers.NewStockHandler(stockService)
			searchHandler := handlers.NewSearchHandler(searchService)
			r.Get("/historical", stockHandler.Historical)
			r.Get("/intraday", stockHandler.Intraday)
			r.Get("/search", searchHandler.Search)
		})
	})

	return r
}
