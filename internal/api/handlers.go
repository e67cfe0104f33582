package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/siteroots/schema-sitemap/internal/importer"
	"github.com/siteroots/schema-sitemap/internal/models"
	"github.com/siteroots/schema-sitemap/internal/sitemap"
	"github.com/siteroots/schema-sitemap/internal/storage"
	"github.com/siteroots/schema-sitemap/internal/utils"
)

type Handler struct {
	store          storage.Store
	generator      *sitemap.Generator
	contentType    string
	importDefaults importer.Config
	logger         sitemap.Logger
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type PaginationResponse struct {
	Data  interface{} `json:"data"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

type SitemapSettings struct {
	Kinds []string `json:"kinds"`
}

func NewHandler(store storage.Store, generator *sitemap.Generator, contentType string, importDefaults importer.Config, logger sitemap.Logger) *Handler {
	if contentType == "" {
		contentType = "application/ld+json"
	}
	if logger == nil {
		logger = sitemap.NopLogger()
	}

	return &Handler{
		store:          store,
		generator:      generator,
		contentType:    contentType,
		importDefaults: importDefaults,
		logger:         logger,
	}
}

// Content handlers
func (h *Handler) ListContent(c *gin.Context) {
	page, limit := getPaginationParams(c)
	offset := (page - 1) * limit

	items, err := h.store.ListContentItems(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch content"})
		return
	}

	if items == nil {
		items = []*models.ContentItem{}
	}

	c.JSON(http.StatusOK, PaginationResponse{
		Data:  items,
		Page:  page,
		Limit: limit,
	})
}

func (h *Handler) GetContent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid content ID"})
		return
	}

	item, err := h.store.GetContentItem(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch content"})
		return
	}

	if item == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Content not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) UpsertContent(c *gin.Context) {
	var item models.ContentItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid content data"})
		return
	}

	if item.Title == "" || item.URL == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Title and URL are required"})
		return
	}

	now := time.Now()
	if item.Kind == "" {
		item.Kind = models.KindPost
	}
	if item.Status == "" {
		item.Status = models.StatusPublish
	}
	if item.PublishedAt.IsZero() {
		item.PublishedAt = now
	}
	if item.ModifiedAt.IsZero() {
		item.ModifiedAt = now
	}

	if err := h.store.UpsertContentItem(c.Request.Context(), &item); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save content"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Product handlers
func (h *Handler) UpsertProduct(c *gin.Context) {
	var detail models.ProductDetail
	if err := c.ShouldBindJSON(&detail); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid product data"})
		return
	}

	if detail.ContentID == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "content_id is required"})
		return
	}

	item, err := h.store.GetContentItem(c.Request.Context(), detail.ContentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch content"})
		return
	}

	if item == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Content not found"})
		return
	}

	if detail.StockStatus == "" {
		detail.StockStatus = models.StockInStock
	}
	if detail.Type == "" {
		detail.Type = models.ProductTypeSimple
		if len(detail.Variants) > 0 {
			detail.Type = models.ProductTypeVariable
		}
	}

	if err := h.store.UpsertProductDetail(c.Request.Context(), &detail); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save product"})
		return
	}

	c.JSON(http.StatusCreated, detail)
}

// Sitemap settings handlers
func (h *Handler) GetSitemapSettings(c *gin.Context) {
	raw, err := h.store.GetSetting(c.Request.Context(), storage.SettingSitemapKinds)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch settings"})
		return
	}

	settings := SitemapSettings{Kinds: []string{models.KindPost, models.KindPage}}
	if raw != "" {
		json.Unmarshal([]byte(raw), &settings.Kinds)
	}

	c.JSON(http.StatusOK, settings)
}

func (h *Handler) UpdateSitemapSettings(c *gin.Context) {
	var settings SitemapSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid settings data"})
		return
	}

	if len(settings.Kinds) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "At least one content kind is required"})
		return
	}

	for _, kind := range settings.Kinds {
		switch kind {
		case models.KindPost, models.KindPage, models.KindCustom, models.KindProduct:
		default:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown content kind: " + kind})
			return
		}
	}

	raw, err := json.Marshal(settings.Kinds)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to encode settings"})
		return
	}

	if err := h.store.PutSetting(c.Request.Context(), storage.SettingSitemapKinds, string(raw)); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// Import handler
func (h *Handler) StartImport(c *gin.Context) {
	var importConfig importer.Config
	if err := c.ShouldBindJSON(&importConfig); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid import config"})
		return
	}

	if importConfig.SitemapURL == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "sitemapUrl is required"})
		return
	}

	importConfig.ID = uuid.New()
	if importConfig.UserAgent == "" {
		importConfig.UserAgent = h.importDefaults.UserAgent
	}
	if importConfig.MaxDepth == 0 {
		importConfig.MaxDepth = h.importDefaults.MaxDepth
	}
	if len(importConfig.AllowedDomains) == 0 {
		importConfig.AllowedDomains = h.importDefaults.AllowedDomains
	}
	if importConfig.DefaultLocale == "" {
		importConfig.DefaultLocale = h.importDefaults.DefaultLocale
	}

	// Run the import in a goroutine; the request only acknowledges the job.
	go func(cfg importer.Config) {
		logger, err := utils.NewComponentLogger("importer")
		if err != nil {
			h.logger.LogError("Failed to create import logger: %v", err)
			return
		}
		defer logger.Close()

		logger.LogInfo("Starting import %s for %s", cfg.ID, cfg.SitemapURL)

		imp := importer.NewImporter(h.store, &cfg, logger)
		if err := imp.Run(context.Background()); err != nil {
			logger.LogError("Import %s failed: %v", cfg.ID, err)
		} else {
			logger.LogInfo("Import %s completed", cfg.ID)
		}
	}(importConfig)

	c.JSON(http.StatusAccepted, importConfig)
}

// Utility functions
func getPaginationParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	return page, limit
}
