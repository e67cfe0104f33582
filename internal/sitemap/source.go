package sitemap

import (
	"context"
	"encoding/json"

	"github.com/siteroots/schema-sitemap/internal/models"
	"github.com/siteroots/schema-sitemap/internal/storage"
)

// Source retrieves publishable content and commerce detail from the store.
// It never returns errors to callers: an unreachable store reads as "no
// content" and a broken product reads as "not a product".
type Source struct {
	store        storage.Store
	defaultKinds []string
	ordering     models.Ordering
	logger       Logger
}

func NewSource(store storage.Store, defaultKinds []string, ordering models.Ordering, logger Logger) *Source {
	if len(defaultKinds) == 0 {
		defaultKinds = []string{models.KindPost, models.KindPage}
	}
	if ordering.Field == "" {
		ordering = models.DefaultOrdering()
	}
	if logger == nil {
		logger = NopLogger()
	}

	return &Source{
		store:        store,
		defaultKinds: defaultKinds,
		ordering:     ordering,
		logger:       logger,
	}
}

// FetchPublishedContent returns published items of the configured kinds in
// the configured order. Empty on any failure.
func (s *Source) FetchPublishedContent(ctx context.Context) []*models.ContentItem {
	kinds := s.resolveKinds(ctx)

	items, err := s.store.ListPublishedContent(ctx, kinds, s.ordering)
	if err != nil {
		s.logger.LogError("content query failed, emitting empty document: %v", err)
		return nil
	}

	return items
}

// FetchProductDetail returns the commerce detail for a product-kind item, or
// nil when the item is not a product or its detail rows are missing.
func (s *Source) FetchProductDetail(ctx context.Context, item *models.ContentItem) *models.ProductDetail {
	if item.Kind != models.KindProduct {
		return nil
	}

	detail, err := s.store.GetProductDetail(ctx, item.ID)
	if err != nil {
		s.logger.LogError("product detail lookup failed for item %d, degrading to generic entry: %v", item.ID, err)
		return nil
	}

	return detail
}

// resolveKinds reads the kind selection from persisted settings, falling back
// to the configured defaults when unset or unreadable.
func (s *Source) resolveKinds(ctx context.Context) []string {
	raw, err := s.store.GetSetting(ctx, storage.SettingSitemapKinds)
	if err != nil {
		s.logger.LogError("settings lookup failed, using default kinds: %v", err)
		return s.defaultKinds
	}
	if raw == "" {
		return s.defaultKinds
	}

	var kinds []string
	if err := json.Unmarshal([]byte(raw), &kinds); err != nil || len(kinds) == 0 {
		s.logger.LogError("invalid kind selection %q, using default kinds", raw)
		return s.defaultKinds
	}

	return kinds
}
