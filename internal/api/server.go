package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/siteroots/schema-sitemap/internal/importer"
	"github.com/siteroots/schema-sitemap/internal/sitemap"
	"github.com/siteroots/schema-sitemap/internal/storage"
)

type Server struct {
	router    *gin.Engine
	port      int
	server    *http.Server
	generator *sitemap.Generator
}

func NewServer(port int, store storage.Store, generator *sitemap.Generator, contentType string, importDefaults importer.Config, logger sitemap.Logger) *Server {
	router := gin.Default()

	// Setup CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Create handler
	handler := NewHandler(store, generator, contentType, importDefaults, logger)

	// Public export endpoints. These always answer 200; failures degrade to
	// an empty document.
	router.GET("/sitemap-schema.json", handler.ServeSitemap)
	router.GET("/sitemap-schema-download.json", handler.ServeSitemapDownload)

	// Setup admin routes
	api := router.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})

		// Content routes
		content := api.Group("/content")
		{
			content.GET("", handler.ListContent)
			content.GET("/:id", handler.GetContent)
			content.POST("", handler.UpsertContent)
		}

		// Product routes
		api.POST("/products", handler.UpsertProduct)

		// Sitemap settings routes
		settings := api.Group("/settings")
		{
			settings.GET("/sitemap", handler.GetSitemapSettings)
			settings.PUT("/sitemap", handler.UpdateSitemapSettings)
		}

		// Import trigger
		api.POST("/import", handler.StartImport)
	}

	return &Server{
		router:    router,
		port:      port,
		generator: generator,
	}
}

// Router exposes the handler tree for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	// The cached document does not outlive the service.
	s.generator.PurgeCache()

	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
