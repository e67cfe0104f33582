package sitemap

import (
	"sync"
	"time"

	"github.com/siteroots/schema-sitemap/internal/models"
)

// DocumentCache memoizes the one assembled document under an implicit fixed
// key. Concurrent misses may each regenerate; the last Put wins. A zero TTL
// disables caching entirely.
type DocumentCache struct {
	mu      sync.RWMutex
	doc     *models.SitemapDocument
	expires time.Time
	ttl     time.Duration
	now     func() time.Time
}

func NewDocumentCache(ttl time.Duration) *DocumentCache {
	return &DocumentCache{
		ttl: ttl,
		now: time.Now,
	}
}

// Get returns the cached document, or nil when empty, expired, or disabled.
func (c *DocumentCache) Get() *models.SitemapDocument {
	if c == nil || c.ttl <= 0 {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.doc == nil || c.now().After(c.expires) {
		return nil
	}

	return c.doc
}

// Put stores doc until TTL expiry.
func (c *DocumentCache) Put(doc *models.SitemapDocument) {
	if c == nil || c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.doc = doc
	c.expires = c.now().Add(c.ttl)
}

// Purge drops the cached entry. Called on shutdown.
func (c *DocumentCache) Purge() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.doc = nil
	c.expires = time.Time{}
}
