package importer

import (
	"context"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/google/uuid"
	"github.com/siteroots/schema-sitemap/internal/models"
	"github.com/siteroots/schema-sitemap/internal/storage"
	"github.com/siteroots/schema-sitemap/internal/utils"
)

// Config drives one import run.
type Config struct {
	ID             uuid.UUID `json:"id"`
	SitemapURL     string    `json:"sitemapUrl"`
	UserAgent      string    `json:"userAgent"`
	MaxDepth       int       `json:"maxDepth"`
	AllowedDomains []string  `json:"allowedDomains"`
	DefaultKind    string    `json:"defaultKind"`
	DefaultLocale  string    `json:"defaultLocale"`
}

// Importer walks a site's XML sitemap and upserts each page into the content
// store, so the exporter has something to serve without a CMS attached.
type Importer struct {
	collector *colly.Collector
	store     storage.Store
	config    *Config
	logger    *utils.ComponentLogger
}

func NewImporter(store storage.Store, config *Config, logger *utils.ComponentLogger) *Importer {
	if config.DefaultKind == "" {
		config.DefaultKind = models.KindPage
	}

	c := colly.NewCollector(
		colly.UserAgent(config.UserAgent),
		colly.MaxDepth(config.MaxDepth),
		colly.AllowedDomains(config.AllowedDomains...),
	)

	// Set reasonable limits
	c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 2,
		RandomDelay: 5 * time.Second,
	})

	return &Importer{
		collector: c,
		store:     store,
		config:    config,
		logger:    logger,
	}
}

func (i *Importer) setupHandlers() {
	i.collector.OnHTML("html", func(e *colly.HTMLElement) {
		pageURL := e.Request.URL.String()
		i.logger.LogDebug("Processing URL: %s", pageURL)

		raw, err := e.DOM.Html()
		if err != nil {
			i.logger.LogError("Error reading page %s: %v", pageURL, err)
			return
		}

		parsed, err := ParsePage(raw)
		if err != nil {
			i.logger.LogError("Error parsing page %s: %v", pageURL, err)
			return
		}

		if parsed.Title == "" {
			i.logger.LogDebug("Skipping untitled page: %s", pageURL)
			return
		}

		locale := parsed.Locale
		if locale == "" {
			locale = i.config.DefaultLocale
		}

		now := time.Now()
		item := &models.ContentItem{
			Title:        parsed.Title,
			Slug:         slugFromURL(pageURL),
			URL:          pageURL,
			Excerpt:      parsed.Description,
			Kind:         kindFromOGType(parsed.OGType, i.config.DefaultKind),
			Status:       models.StatusPublish,
			Author:       parsed.Author,
			Locale:       locale,
			ThumbnailURL: parsed.ImageURL,
			PublishedAt:  now,
			ModifiedAt:   now,
		}

		if err := i.store.UpsertContentItem(context.Background(), item); err != nil {
			i.logger.LogError("Error saving content item %s: %v", pageURL, err)
		} else {
			i.logger.LogInfo("Imported %q (%s) as %s", item.Title, pageURL, item.Kind)
		}
	})
}

// Run parses the sitemap and visits each URL until done or the context ends.
func (i *Importer) Run(ctx context.Context) error {
	i.setupHandlers()

	sitemap, err := parseSitemap(i.config.SitemapURL)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	done := make(chan bool)

	go func() {
		for idx, u := range sitemap.URLs {
			select {
			case <-runCtx.Done():
				return
			default:
				i.logger.LogInfo("Processing URL %d/%d: %s", idx+1, len(sitemap.URLs), u.Loc)
				if err := i.collector.Visit(u.Loc); err != nil {
					i.logger.LogError("Error visiting %s: %v", u.Loc, err)
				}
			}
		}
		done <- true
	}()

	select {
	case <-runCtx.Done():
		return runCtx.Err()
	case <-done:
		return nil
	}
}

// kindFromOGType maps the page's og:type onto a content kind; unknown types
// fall back to the run's default.
func kindFromOGType(ogType, fallback string) string {
	switch strings.ToLower(ogType) {
	case "article":
		return models.KindPost
	case "product", "og:product", "product.item":
		return models.KindProduct
	case "website":
		return models.KindPage
	default:
		return fallback
	}
}

func slugFromURL(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}

	slug := path.Base(strings.TrimSuffix(parsed.Path, "/"))
	if slug == "." || slug == "/" {
		return ""
	}
	return slug
}
