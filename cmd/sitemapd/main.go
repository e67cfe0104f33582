package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/siteroots/schema-sitemap/config"
	"github.com/siteroots/schema-sitemap/internal/api"
	"github.com/siteroots/schema-sitemap/internal/importer"
	"github.com/siteroots/schema-sitemap/internal/models"
	"github.com/siteroots/schema-sitemap/internal/sitemap"
	"github.com/siteroots/schema-sitemap/internal/storage"
	"github.com/siteroots/schema-sitemap/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize storage
	store, err := newStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	// Initialize database tables
	if err := store.Initialize(); err != nil {
		log.Fatalf("Failed to initialize database tables: %v", err)
	}

	// Observability for the export pipeline
	logger, err := utils.NewComponentLogger("sitemap")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	// Wire the generation pipeline
	site := sitemap.SiteInfo{
		Name:        cfg.Site.Name,
		Description: cfg.Site.Description,
		BaseURL:     cfg.Site.BaseURL,
		Locale:      cfg.Site.Locale,
		Currency:    cfg.Site.Currency,
	}
	ordering := models.Ordering{
		Field:     cfg.Sitemap.OrderBy,
		Direction: cfg.Sitemap.OrderDirection,
	}

	source := sitemap.NewSource(store, cfg.Sitemap.Kinds, ordering, logger)
	cache := sitemap.NewDocumentCache(cfg.GetCacheTTL())
	generator := sitemap.NewGenerator(source, site, cache, logger)

	importDefaults := importer.Config{
		UserAgent:      cfg.Importer.UserAgent,
		MaxDepth:       cfg.Importer.MaxDepth,
		AllowedDomains: cfg.Importer.AllowedDomains,
		DefaultLocale:  cfg.Site.Locale,
	}

	// Initialize API server
	server := api.NewServer(cfg.Server.Port, store, generator, cfg.Sitemap.ContentType, importDefaults, logger)

	// Start the API server
	go func() {
		log.Printf("Starting API server on port %d", cfg.Server.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start API server: %v", err)
		}
	}()

	// Wait for shutdown
	waitForShutdown(server)
}

func newStore(cfg *config.Config) (storage.Store, error) {
	if cfg.Database.Driver == "postgres" {
		return storage.NewPostgresStore(cfg.Database.URL)
	}
	return storage.NewSQLiteStore(cfg.Database.Path)
}

func waitForShutdown(server *api.Server) {
	// Handle system signals for shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutting down...")

	// Graceful server shutdown
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}
	log.Println("Server shut down gracefully")
}
