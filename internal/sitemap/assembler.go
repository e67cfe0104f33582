package sitemap

import (
	"context"
	"time"

	"github.com/siteroots/schema-sitemap/internal/models"
)

// Generator assembles the sitemap document: fetch content, map each item in
// input order, stamp site identity and generation time. Generate consults the
// cache first; Assemble always builds fresh.
type Generator struct {
	source *Source
	mapper *Mapper
	cache  *DocumentCache
	site   SiteInfo
	logger Logger
	now    func() time.Time
}

func NewGenerator(source *Source, site SiteInfo, cache *DocumentCache, logger Logger) *Generator {
	if logger == nil {
		logger = NopLogger()
	}

	return &Generator{
		source: source,
		mapper: NewMapper(site),
		cache:  cache,
		site:   site,
		logger: logger,
		now:    time.Now,
	}
}

// Generate returns the cached document when live, otherwise assembles fresh
// and stores the result.
func (g *Generator) Generate(ctx context.Context) *models.SitemapDocument {
	if doc := g.cache.Get(); doc != nil {
		g.logger.LogDebug("serving cached sitemap document")
		return doc
	}

	doc := g.Assemble(ctx)
	g.cache.Put(doc)
	return doc
}

// Assemble walks the content collection in store order, assigning 1-based
// positions. Deterministic for a fixed input sequence and clock.
func (g *Generator) Assemble(ctx context.Context) *models.SitemapDocument {
	items := g.source.FetchPublishedContent(ctx)

	entries := make([]models.ListEntry, 0, len(items))
	position := 1
	for _, item := range items {
		var detail *models.ProductDetail
		if item.Kind == models.KindProduct {
			detail = g.source.FetchProductDetail(ctx, item)
		}

		entries = append(entries, g.mapper.MapToEntry(item, position, detail))
		position++
	}

	g.logger.LogInfo("assembled sitemap document with %d entries", len(entries))

	return &models.SitemapDocument{
		Context:         "https://schema.org",
		Type:            "ItemList",
		Name:            g.site.Name,
		Description:     g.site.Description,
		URL:             g.site.BaseURL,
		DateGenerated:   models.FormatSchemaTime(g.now()),
		NumberOfItems:   len(entries),
		ItemListElement: entries,
	}
}

// PurgeCache drops any cached document. Called when the service shuts down.
func (g *Generator) PurgeCache() {
	g.cache.Purge()
}
