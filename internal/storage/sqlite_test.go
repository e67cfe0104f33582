package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siteroots/schema-sitemap/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Initialize())
	t.Cleanup(func() { store.Close() })

	return store
}

func contentFixture(url string, kind string, order int) *models.ContentItem {
	published := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &models.ContentItem{
		Title:       "Title for " + url,
		Slug:        "slug",
		URL:         url,
		Excerpt:     "excerpt",
		Kind:        kind,
		Status:      models.StatusPublish,
		Author:      "Jane Doe",
		Locale:      "en-US",
		MenuOrder:   order,
		PublishedAt: published,
		ModifiedAt:  published,
	}
}

func TestUpsertContentItemAssignsID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	item := contentFixture("https://acme.example/a", models.KindPost, 0)
	require.NoError(t, store.UpsertContentItem(ctx, item))
	assert.NotZero(t, item.ID)

	got, err := store.GetContentItem(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, item.URL, got.URL)
	assert.Equal(t, item.Title, got.Title)
}

func TestUpsertContentItemUpdatesOnURLConflict(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	item := contentFixture("https://acme.example/a", models.KindPost, 0)
	require.NoError(t, store.UpsertContentItem(ctx, item))
	firstID := item.ID

	updated := contentFixture("https://acme.example/a", models.KindPost, 0)
	updated.Title = "Updated title"
	require.NoError(t, store.UpsertContentItem(ctx, updated))

	assert.Equal(t, firstID, updated.ID, "conflict on url keeps the original id")

	got, err := store.GetContentItem(ctx, firstID)
	require.NoError(t, err)
	assert.Equal(t, "Updated title", got.Title)
}

func TestGetContentItemMissing(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetContentItem(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListPublishedContentFiltersAndOrders(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	second := contentFixture("https://acme.example/second", models.KindPost, 2)
	first := contentFixture("https://acme.example/first", models.KindPage, 1)
	product := contentFixture("https://acme.example/widget", models.KindProduct, 0)
	draft := contentFixture("https://acme.example/draft", models.KindPost, 3)
	draft.Status = models.StatusDraft

	for _, item := range []*models.ContentItem{second, first, product, draft} {
		require.NoError(t, store.UpsertContentItem(ctx, item))
	}

	items, err := store.ListPublishedContent(ctx, []string{models.KindPost, models.KindPage}, models.DefaultOrdering())
	require.NoError(t, err)

	// Product and draft excluded; menu order ascending
	require.Len(t, items, 2)
	assert.Equal(t, "https://acme.example/first", items[0].URL)
	assert.Equal(t, "https://acme.example/second", items[1].URL)
}

func TestListPublishedContentEmptyKinds(t *testing.T) {
	store := newTestStore(t)

	items, err := store.ListPublishedContent(context.Background(), nil, models.DefaultOrdering())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestProductDetailRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	item := contentFixture("https://acme.example/widget", models.KindProduct, 0)
	require.NoError(t, store.UpsertContentItem(ctx, item))

	detail := &models.ProductDetail{
		ContentID:     item.ID,
		SKU:           "WIDGET-1",
		Price:         "19.99",
		Currency:      "USD",
		StockStatus:   models.StockInStock,
		ImageURL:      "https://acme.example/widget.jpg",
		Categories:    []string{"Widgets", "Gadgets"},
		GalleryImages: []string{"https://acme.example/w1.jpg"},
		Type:          models.ProductTypeVariable,
		Variants: []models.VariantDetail{
			{
				SKU:         "WIDGET-1-RED",
				Name:        "Widget Red",
				Price:       "19.99",
				StockStatus: models.StockInStock,
				URL:         "https://acme.example/widget?v=red",
				Attributes:  map[string]string{"color": "red"},
			},
		},
	}
	require.NoError(t, store.UpsertProductDetail(ctx, detail))
	require.NotZero(t, detail.Variants[0].ID)

	got, err := store.GetProductDetail(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "WIDGET-1", got.SKU)
	assert.Equal(t, "19.99", got.Price)
	assert.Equal(t, []string{"Widgets", "Gadgets"}, got.Categories)
	require.Len(t, got.Variants, 1)
	assert.Equal(t, "WIDGET-1-RED", got.Variants[0].SKU)
	assert.Equal(t, map[string]string{"color": "red"}, got.Variants[0].Attributes)
}

func TestProductDetailVariantsReplacedOnUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	item := contentFixture("https://acme.example/widget", models.KindProduct, 0)
	require.NoError(t, store.UpsertContentItem(ctx, item))

	detail := &models.ProductDetail{
		ContentID:   item.ID,
		Price:       "19.99",
		StockStatus: models.StockInStock,
		Type:        models.ProductTypeVariable,
		Variants: []models.VariantDetail{
			{Name: "Red", Price: "19.99", StockStatus: models.StockInStock},
			{Name: "Blue", Price: "21.99", StockStatus: models.StockInStock},
		},
	}
	require.NoError(t, store.UpsertProductDetail(ctx, detail))

	detail.Variants = []models.VariantDetail{
		{Name: "Green", Price: "24.99", StockStatus: models.StockInStock},
	}
	require.NoError(t, store.UpsertProductDetail(ctx, detail))

	got, err := store.GetProductDetail(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, got.Variants, 1)
	assert.Equal(t, "Green", got.Variants[0].Name)
}

func TestGetProductDetailMissing(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetProductDetail(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSettingsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	value, err := store.GetSetting(ctx, SettingSitemapKinds)
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, store.PutSetting(ctx, SettingSitemapKinds, `["post","product"]`))
	require.NoError(t, store.PutSetting(ctx, SettingSitemapKinds, `["product"]`))

	value, err = store.GetSetting(ctx, SettingSitemapKinds)
	require.NoError(t, err)
	assert.Equal(t, `["product"]`, value)
}
