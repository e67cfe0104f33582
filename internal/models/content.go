package models

import "time"

// Content kinds recognized by the exporter. Anything else coming out of the
// store is treated as KindCustom.
const (
	KindPost    = "post"
	KindPage    = "page"
	KindCustom  = "custom"
	KindProduct = "product"
)

// Publish statuses stored on a content item.
const (
	StatusPublish = "publish"
	StatusDraft   = "draft"
)

// Stock statuses for commerce products.
const (
	StockInStock    = "in_stock"
	StockOutOfStock = "out_of_stock"
)

// Product types. Variable products carry variants.
const (
	ProductTypeSimple   = "simple"
	ProductTypeVariable = "variable"
)

// ContentItem is an immutable snapshot of one publishable unit read from the
// content store at generation time.
type ContentItem struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	URL          string    `json:"url"`
	Excerpt      string    `json:"excerpt"`
	Kind         string    `json:"kind"`
	Status       string    `json:"status"`
	Author       string    `json:"author"`
	Locale       string    `json:"locale"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	MenuOrder    int       `json:"menu_order"`
	PublishedAt  time.Time `json:"published_at"`
	ModifiedAt   time.Time `json:"modified_at"`
}

// ProductDetail augments a product-kind content item with commerce data.
// Prices are carried as strings so values like "19.99" survive round trips
// without float coercion.
type ProductDetail struct {
	ContentID     int64           `json:"content_id"`
	SKU           string          `json:"sku"`
	Price         string          `json:"price"`
	Currency      string          `json:"currency"`
	StockStatus   string          `json:"stock_status"`
	ImageURL      string          `json:"image_url,omitempty"`
	Categories    []string        `json:"categories,omitempty"`
	GalleryImages []string        `json:"gallery_images,omitempty"`
	Type          string          `json:"type"`
	Variants      []VariantDetail `json:"variants,omitempty"`
}

// VariantDetail is one purchasable variation of a variable product.
type VariantDetail struct {
	ID          int64             `json:"id"`
	SKU         string            `json:"sku"`
	Name        string            `json:"name"`
	Price       string            `json:"price"`
	StockStatus string            `json:"stock_status"`
	URL         string            `json:"url"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// IsVariable reports whether the product carries variants.
func (p *ProductDetail) IsVariable() bool {
	return p.Type == ProductTypeVariable
}

// Ordering describes how the content query sorts its results.
type Ordering struct {
	Field     string
	Direction string
}

// DefaultOrdering is menu order ascending, matching how site owners arrange
// their content by hand.
func DefaultOrdering() Ordering {
	return Ordering{Field: "menu_order", Direction: "asc"}
}
