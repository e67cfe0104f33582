package sitemap

import (
	"bytes"
	"encoding/json"

	"github.com/siteroots/schema-sitemap/internal/models"
)

// Render serializes a document to the wire form consumers depend on:
// pretty-printed with two-space indentation and slashes left unescaped.
// Rendering is deterministic, so re-rendering a cached document yields
// byte-identical output.
func Render(doc *models.SitemapDocument) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(doc); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
