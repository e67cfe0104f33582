package importer

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParsedPage holds what the importer extracts from one HTML page.
type ParsedPage struct {
	Title       string
	Description string
	Author      string
	Locale      string
	ImageURL    string
	OGType      string
}

// ParsePage extracts the importable metadata from raw HTML.
func ParsePage(content string) (*ParsedPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}

	parsed := &ParsedPage{}

	// Prefer og:title over the document title
	parsed.Title = metaContent(doc, "meta[property='og:title']")
	if parsed.Title == "" {
		parsed.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	parsed.Description = metaContent(doc, "meta[name='description']")
	if parsed.Description == "" {
		parsed.Description = metaContent(doc, "meta[property='og:description']")
	}

	parsed.Author = metaContent(doc, "meta[name='author']")
	parsed.Locale = metaContent(doc, "meta[property='og:locale']")
	parsed.ImageURL = metaContent(doc, "meta[property='og:image']")
	parsed.OGType = metaContent(doc, "meta[property='og:type']")

	return parsed, nil
}

func metaContent(doc *goquery.Document, selector string) string {
	var value string
	doc.Find(selector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if content, exists := s.Attr("content"); exists {
			value = strings.TrimSpace(content)
			return false
		}
		return true
	})
	return value
}
