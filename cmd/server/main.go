package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/api"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/config"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/database"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/marketstack"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/repository"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Marketstack.APIKey == "" {
		log.Printf("Warning: MARKETSTACK_API_KEY is not set; stock requests will fail until it is configured")
	}

	// Open symbol-cache database (runs migrations)
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create the provider client and repositories
	client := marketstack.NewClient(cfg.Marketstack.BaseURL, cfg.Marketstack.APIKey)
	symbolRepo := repository.NewSymbolRepository(db)

	// Create services
	systemService := service.NewSystemService(db, cfg.Marketstack.APIKey != "")
	stockService := service.NewStockService(client)
	searchService := service.NewSearchService(client, symbolRepo)

	// Create router
	router := api.NewRouter(systemService, stockService, searchService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
