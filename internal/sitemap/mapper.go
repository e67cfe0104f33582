package sitemap

import (
	"fmt"
	"strings"

	"github.com/siteroots/schema-sitemap/internal/models"
)

// SiteInfo is the site identity stamped onto documents. Passed in explicitly
// at construction so generation never reads ambient state.
type SiteInfo struct {
	Name        string
	Description string
	BaseURL     string
	Locale      string
	Currency    string
}

// Mapper converts one content item into a ListEntry, branching on kind.
type Mapper struct {
	site SiteInfo
}

func NewMapper(site SiteInfo) *Mapper {
	return &Mapper{site: site}
}

// MapToEntry builds the entry for item at the given 1-based position. A nil
// detail for a product-kind item degrades to the generic shape.
func (m *Mapper) MapToEntry(item *models.ContentItem, position int, detail *models.ProductDetail) models.ListEntry {
	entry := models.ListEntry{
		Type:     "ListItem",
		Position: position,
		URL:      item.URL,
		Name:     item.Title,
	}

	locale := item.Locale
	if locale == "" {
		locale = m.site.Locale
	}

	descriptor := &models.ItemDescriptor{
		Type:          kindLabel(item.Kind),
		Headline:      item.Title,
		DatePublished: models.FormatSchemaTime(item.PublishedAt),
		DateModified:  models.FormatSchemaTime(item.ModifiedAt),
		Description:   StripHTML(item.Excerpt),
		URL:           item.URL,
		InLanguage:    locale,
	}

	if item.Author != "" {
		descriptor.Author = &models.PersonRef{Type: "Person", Name: item.Author}
	}

	if item.ThumbnailURL != "" {
		descriptor.Image = &models.ImageObject{Type: "ImageObject", URL: item.ThumbnailURL}
	}

	if detail != nil {
		m.applyProduct(item, detail, descriptor)
	}

	entry.Item = descriptor
	return entry
}

func (m *Mapper) applyProduct(item *models.ContentItem, detail *models.ProductDetail, descriptor *models.ItemDescriptor) {
	descriptor.Type = "Product"

	descriptor.SKU = detail.SKU
	if strings.TrimSpace(descriptor.SKU) == "" {
		descriptor.SKU = fmt.Sprintf("SKU-%d", item.ID)
	}

	descriptor.Brand = &models.BrandRef{Type: "Brand", Name: m.site.Name}
	descriptor.Category = strings.Join(detail.Categories, ", ")

	if descriptor.Image == nil && detail.ImageURL != "" {
		descriptor.Image = &models.ImageObject{Type: "ImageObject", URL: detail.ImageURL}
	}

	if len(detail.GalleryImages) > 0 {
		descriptor.AdditionalImg = detail.GalleryImages
	}

	currency := detail.Currency
	if currency == "" {
		currency = m.site.Currency
	}

	descriptor.Offers = &models.Offer{
		Type:          "Offer",
		URL:           item.URL,
		PriceCurrency: currency,
		Price:         detail.Price,
		Availability:  models.AvailabilityURL(detail.StockStatus),
		ItemCondition: models.ConditionNew,
	}

	if !detail.IsVariable() || len(detail.Variants) == 0 {
		return
	}

	variants := make([]models.VariantProduct, 0, len(detail.Variants))
	for _, v := range detail.Variants {
		sku := v.SKU
		if strings.TrimSpace(sku) == "" {
			sku = fmt.Sprintf("VAR-%d", v.ID)
		}

		variants = append(variants, models.VariantProduct{
			Type:          "Product",
			SKU:           sku,
			Name:          v.Name,
			Price:         v.Price,
			PriceCurrency: currency,
			Availability:  models.AvailabilityURL(v.StockStatus),
			URL:           v.URL,
			Attributes:    v.Attributes,
		})
	}
	descriptor.HasVariant = variants
}

// kindLabel capitalizes the kind tag for the descriptor type: "post" becomes
// "Post", unknown kinds become "Custom".
func kindLabel(kind string) string {
	switch kind {
	case models.KindPost, models.KindPage, models.KindCustom, models.KindProduct:
		return strings.ToUpper(kind[:1]) + kind[1:]
	default:
		return "Custom"
	}
}
