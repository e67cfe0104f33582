package models

import "time"

// SchemaTimestampLayout renders timestamps with an explicit numeric UTC
// offset, so midnight UTC comes out as "2024-01-01T00:00:00+00:00" rather
// than the RFC3339 "Z" form. Importers downstream match on the offset form.
const SchemaTimestampLayout = "2006-01-02T15:04:05-07:00"

// Availability and condition URLs from the schema.org vocabulary.
const (
	AvailabilityInStock    = "https://schema.org/InStock"
	AvailabilityOutOfStock = "https://schema.org/OutOfStock"
	ConditionNew           = "https://schema.org/NewCondition"
)

// SitemapDocument is the top-level ItemList served at /sitemap-schema.json.
// Field order and names are the wire contract; consumers depend on them.
type SitemapDocument struct {
	Context         string      `json:"@context"`
	Type            string      `json:"@type"`
	Name            string      `json:"name"`
	Description     string      `json:"description,omitempty"`
	URL             string      `json:"url"`
	DateGenerated   string      `json:"dateGenerated"`
	NumberOfItems   int         `json:"numberOfItems"`
	ItemListElement []ListEntry `json:"itemListElement"`
}

// ListEntry is one ListItem in the document. Position is 1-based and follows
// input order.
type ListEntry struct {
	Type        string          `json:"@type"`
	Position    int             `json:"position"`
	URL         string          `json:"url"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Item        *ItemDescriptor `json:"item,omitempty"`
}

// ItemDescriptor is the nested description of the referenced content. The
// generic shape covers posts/pages/custom types; the product fields are only
// set when commerce detail resolved.
type ItemDescriptor struct {
	Type          string           `json:"@type"`
	Headline      string           `json:"headline"`
	DatePublished string           `json:"datePublished"`
	DateModified  string           `json:"dateModified"`
	Author        *PersonRef       `json:"author,omitempty"`
	Description   string           `json:"description,omitempty"`
	URL           string           `json:"url"`
	InLanguage    string           `json:"inLanguage,omitempty"`
	Image         *ImageObject     `json:"image,omitempty"`
	SKU           string           `json:"sku,omitempty"`
	Brand         *BrandRef        `json:"brand,omitempty"`
	Category      string           `json:"category,omitempty"`
	AdditionalImg []string         `json:"additionalImage,omitempty"`
	Offers        *Offer           `json:"offers,omitempty"`
	HasVariant    []VariantProduct `json:"hasVariant,omitempty"`
}

// PersonRef is a schema.org Person reference.
type PersonRef struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// BrandRef is a schema.org Brand reference.
type BrandRef struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// ImageObject is a schema.org ImageObject reference.
type ImageObject struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

// Offer carries the commerce terms of a product entry.
type Offer struct {
	Type          string `json:"@type"`
	URL           string `json:"url"`
	PriceCurrency string `json:"priceCurrency"`
	Price         string `json:"price"`
	Availability  string `json:"availability"`
	ItemCondition string `json:"itemCondition"`
}

// VariantProduct is one hasVariant member of a variable product.
type VariantProduct struct {
	Type          string            `json:"@type"`
	SKU           string            `json:"sku"`
	Name          string            `json:"name"`
	Price         string            `json:"price"`
	PriceCurrency string            `json:"priceCurrency"`
	Availability  string            `json:"availability"`
	URL           string            `json:"url"`
	Attributes    map[string]string `json:"attributes,omitempty"`
}

// FormatSchemaTime renders t in the document timestamp layout.
func FormatSchemaTime(t time.Time) string {
	return t.Format(SchemaTimestampLayout)
}

// AvailabilityURL maps a stock status to its schema.org availability URL.
// Anything that is not explicitly in stock reads as out of stock.
func AvailabilityURL(stockStatus string) string {
	if stockStatus == StockInStock {
		return AvailabilityInStock
	}
	return AvailabilityOutOfStock
}
