package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/siteroots/schema-sitemap/internal/sitemap"
)

// ServeSitemap answers GET /sitemap-schema.json.
func (h *Handler) ServeSitemap(c *gin.Context) {
	h.writeSitemap(c, false)
}

// ServeSitemapDownload answers GET /sitemap-schema-download.json with an
// attachment disposition.
func (h *Handler) ServeSitemapDownload(c *gin.Context) {
	h.writeSitemap(c, true)
}

// writeSitemap always answers 200 with a well-formed document; every failure
// mode upstream has already degraded to an empty or partial document. The
// body is rendered outside gin so slashes stay unescaped.
func (h *Handler) writeSitemap(c *gin.Context, download bool) {
	doc := h.generator.Generate(c.Request.Context())

	body, err := sitemap.Render(doc)
	if err != nil {
		h.logger.LogError("Failed to render sitemap document: %v", err)
		body = []byte("{}\n")
	}

	setNoCacheHeaders(c)
	if download {
		c.Header("Content-Disposition", `attachment; filename="schema-sitemap.json"`)
	}

	c.Data(http.StatusOK, h.contentType+"; charset=utf-8", body)
}

// setNoCacheHeaders marks the response as never cacheable so intermediaries
// always revalidate.
func setNoCacheHeaders(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, must-revalidate, max-age=0")
	c.Header("Expires", "Wed, 11 Jan 1984 05:00:00 GMT")
}
