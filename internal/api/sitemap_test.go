package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siteroots/schema-sitemap/internal/importer"
	"github.com/siteroots/schema-sitemap/internal/models"
	"github.com/siteroots/schema-sitemap/internal/sitemap"
	"github.com/siteroots/schema-sitemap/internal/storage"
)

// fakeStore is an in-memory storage.Store for handler tests.
type fakeStore struct {
	items     []*models.ContentItem
	details   map[int64]*models.ProductDetail
	settings  map[string]string
	listCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		details:  make(map[int64]*models.ProductDetail),
		settings: make(map[string]string),
	}
}

func (f *fakeStore) Initialize() error { return nil }
func (f *fakeStore) Close() error      { return nil }

func (f *fakeStore) UpsertContentItem(ctx context.Context, item *models.ContentItem) error {
	for _, existing := range f.items {
		if existing.URL == item.URL {
			item.ID = existing.ID
			*existing = *item
			return nil
		}
	}
	if item.ID == 0 {
		item.ID = int64(len(f.items) + 1)
	}
	f.items = append(f.items, item)
	return nil
}

func (f *fakeStore) GetContentItem(ctx context.Context, id int64) (*models.ContentItem, error) {
	for _, item := range f.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListContentItems(ctx context.Context, limit, offset int) ([]*models.ContentItem, error) {
	return f.items, nil
}

func (f *fakeStore) ListPublishedContent(ctx context.Context, kinds []string, ordering models.Ordering) ([]*models.ContentItem, error) {
	f.listCalls++

	allowed := make(map[string]bool, len(kinds))
	for _, kind := range kinds {
		allowed[kind] = true
	}

	var out []*models.ContentItem
	for _, item := range f.items {
		if item.Status == models.StatusPublish && allowed[item.Kind] {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeStore) UpsertProductDetail(ctx context.Context, detail *models.ProductDetail) error {
	f.details[detail.ContentID] = detail
	return nil
}

func (f *fakeStore) GetProductDetail(ctx context.Context, contentID int64) (*models.ProductDetail, error) {
	return f.details[contentID], nil
}

func (f *fakeStore) GetSetting(ctx context.Context, key string) (string, error) {
	return f.settings[key], nil
}

func (f *fakeStore) PutSetting(ctx context.Context, key, value string) error {
	f.settings[key] = value
	return nil
}

func newTestServer(t *testing.T, store storage.Store, ttl time.Duration) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	site := sitemap.SiteInfo{
		Name:     "Acme Store",
		BaseURL:  "https://acme.example",
		Locale:   "en-US",
		Currency: "USD",
	}
	source := sitemap.NewSource(store, nil, models.DefaultOrdering(), nil)
	generator := sitemap.NewGenerator(source, site, sitemap.NewDocumentCache(ttl), nil)

	return NewServer(0, store, generator, "application/ld+json", importer.Config{}, nil)
}

func seedPost(t *testing.T, store storage.Store) {
	t.Helper()
	published := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.UpsertContentItem(context.Background(), &models.ContentItem{
		ID:          5,
		Title:       "Hello",
		URL:         "https://acme.example/hello/",
		Kind:        models.KindPost,
		Status:      models.StatusPublish,
		PublishedAt: published,
		ModifiedAt:  published,
	}))
}

func doRequest(server *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	return w
}

func TestServeSitemap(t *testing.T) {
	store := newFakeStore()
	seedPost(t, store)
	server := newTestServer(t, store, 0)

	w := doRequest(server, http.MethodGet, "/sitemap-schema.json", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/ld+json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-cache")
	assert.Empty(t, w.Header().Get("Content-Disposition"))

	var doc models.SitemapDocument
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "ItemList", doc.Type)
	assert.Equal(t, 1, doc.NumberOfItems)
	require.Len(t, doc.ItemListElement, 1)
	assert.Equal(t, 1, doc.ItemListElement[0].Position)

	// Pretty-printed with unescaped slashes
	assert.Contains(t, w.Body.String(), "\n  \"@context\": \"https://schema.org\"")
	assert.NotContains(t, w.Body.String(), `\/`)
}

func TestServeSitemapDownload(t *testing.T) {
	store := newFakeStore()
	seedPost(t, store)
	server := newTestServer(t, store, 0)

	w := doRequest(server, http.MethodGet, "/sitemap-schema-download.json", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="schema-sitemap.json"`, w.Header().Get("Content-Disposition"))
}

func TestServeSitemapEmptyStore(t *testing.T) {
	server := newTestServer(t, newFakeStore(), 0)

	w := doRequest(server, http.MethodGet, "/sitemap-schema.json", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var doc models.SitemapDocument
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, 0, doc.NumberOfItems)
	assert.Empty(t, doc.ItemListElement)
}

func TestServeSitemapCached(t *testing.T) {
	store := newFakeStore()
	seedPost(t, store)
	server := newTestServer(t, store, 6*time.Hour)

	first := doRequest(server, http.MethodGet, "/sitemap-schema.json", nil)
	require.Equal(t, 1, store.listCalls)

	second := doRequest(server, http.MethodGet, "/sitemap-schema.json", nil)

	// Cache hit: no second store query, byte-identical body
	assert.Equal(t, 1, store.listCalls)
	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
}

func TestUpsertContent(t *testing.T) {
	server := newTestServer(t, newFakeStore(), 0)

	body, _ := json.Marshal(map[string]interface{}{
		"title": "Fresh Post",
		"url":   "https://acme.example/fresh/",
	})
	w := doRequest(server, http.MethodPost, "/api/content", body)

	require.Equal(t, http.StatusCreated, w.Code)

	var item models.ContentItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.NotZero(t, item.ID)
	assert.Equal(t, models.KindPost, item.Kind)
	assert.Equal(t, models.StatusPublish, item.Status)
}

func TestUpsertContentRejectsMissingURL(t *testing.T) {
	server := newTestServer(t, newFakeStore(), 0)

	body, _ := json.Marshal(map[string]interface{}{"title": "No URL"})
	w := doRequest(server, http.MethodPost, "/api/content", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpsertProductRequiresContent(t *testing.T) {
	server := newTestServer(t, newFakeStore(), 0)

	body, _ := json.Marshal(map[string]interface{}{
		"content_id": 42,
		"price":      "19.99",
	})
	w := doRequest(server, http.MethodPost, "/api/products", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpsertProductInfersVariableType(t *testing.T) {
	store := newFakeStore()
	seedPost(t, store)
	server := newTestServer(t, store, 0)

	body, _ := json.Marshal(map[string]interface{}{
		"content_id": 5,
		"price":      "19.99",
		"variants": []map[string]interface{}{
			{"id": 101, "name": "Red", "price": "19.99"},
		},
	})
	w := doRequest(server, http.MethodPost, "/api/products", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var detail models.ProductDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, models.ProductTypeVariable, detail.Type)
	assert.Equal(t, models.StockInStock, detail.StockStatus)
}

func TestSitemapSettingsRoundTrip(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(t, store, 0)

	// Defaults before anything is stored
	w := doRequest(server, http.MethodGet, "/api/settings/sitemap", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var settings SitemapSettings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	assert.Equal(t, []string{models.KindPost, models.KindPage}, settings.Kinds)

	body, _ := json.Marshal(SitemapSettings{Kinds: []string{models.KindProduct}})
	w = doRequest(server, http.MethodPut, "/api/settings/sitemap", body)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(server, http.MethodGet, "/api/settings/sitemap", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	assert.Equal(t, []string{models.KindProduct}, settings.Kinds)
}

func TestSitemapSettingsRejectsUnknownKind(t *testing.T) {
	server := newTestServer(t, newFakeStore(), 0)

	body, _ := json.Marshal(SitemapSettings{Kinds: []string{"recipe"}})
	w := doRequest(server, http.MethodPut, "/api/settings/sitemap", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStartImportRequiresSitemapURL(t *testing.T) {
	server := newTestServer(t, newFakeStore(), 0)

	body, _ := json.Marshal(map[string]interface{}{})
	w := doRequest(server, http.MethodPost, "/api/import", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	server := newTestServer(t, newFakeStore(), 0)

	w := doRequest(server, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
