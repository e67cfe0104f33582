package sitemap

import (
	"context"
	"errors"

	"github.com/siteroots/schema-sitemap/internal/models"
)

// fakeStore is an in-memory storage.Store for pipeline tests.
type fakeStore struct {
	items     []*models.ContentItem
	details   map[int64]*models.ProductDetail
	settings  map[string]string
	listCalls int

	listErr    error
	detailErr  error
	settingErr error
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
	if f.listErr != nil {
		return nil, f.listErr
	}

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
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return f.details[contentID], nil
}

func (f *fakeStore) GetSetting(ctx context.Context, key string) (string, error) {
	if f.settingErr != nil {
		return "", f.settingErr
	}
	return f.settings[key], nil
}

func (f *fakeStore) PutSetting(ctx context.Context, key, value string) error {
	f.settings[key] = value
	return nil
}

var errStoreDown = errors.New("store unavailable")
