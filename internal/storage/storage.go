package storage

import (
	"context"

	"github.com/siteroots/schema-sitemap/internal/models"
)

// Setting keys persisted in the settings table.
const (
	SettingSitemapKinds = "sitemap_kinds"
)

type Store interface {
	Initialize() error
	Close() error

	// Content operations
	UpsertContentItem(ctx context.Context, item *models.ContentItem) error
	GetContentItem(ctx context.Context, id int64) (*models.ContentItem, error)
	ListContentItems(ctx context.Context, limit, offset int) ([]*models.ContentItem, error)
	ListPublishedContent(ctx context.Context, kinds []string, ordering models.Ordering) ([]*models.ContentItem, error)

	// Product operations
	UpsertProductDetail(ctx context.Context, detail *models.ProductDetail) error
	GetProductDetail(ctx context.Context, contentID int64) (*models.ProductDetail, error)

	// Settings operations
	GetSetting(ctx context.Context, key string) (string, error)
	PutSetting(ctx context.Context, key, value string) error
}
