package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/siteroots/schema-sitemap/internal/models"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS content (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            title TEXT NOT NULL,
            slug TEXT NOT NULL,
            url TEXT UNIQUE NOT NULL,
            excerpt TEXT,
            kind TEXT NOT NULL DEFAULT 'post',
            status TEXT NOT NULL DEFAULT 'publish',
            author TEXT,
            locale TEXT,
            thumbnail_url TEXT,
            menu_order INTEGER NOT NULL DEFAULT 0,
            published_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            modified_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            content_id INTEGER PRIMARY KEY,
            sku TEXT,
            price TEXT,
            currency TEXT,
            stock_status TEXT NOT NULL DEFAULT 'in_stock',
            image_url TEXT,
            categories TEXT,
            gallery_images TEXT,
            type TEXT NOT NULL DEFAULT 'simple',
            FOREIGN KEY(content_id) REFERENCES content(id)
        )`,
		`CREATE TABLE IF NOT EXISTS variants (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            content_id INTEGER NOT NULL,
            sku TEXT,
            name TEXT,
            price TEXT,
            stock_status TEXT NOT NULL DEFAULT 'in_stock',
            url TEXT,
            attributes TEXT,
            FOREIGN KEY(content_id) REFERENCES products(content_id)
        )`,
		`CREATE TABLE IF NOT EXISTS settings (
            key TEXT PRIMARY KEY,
            value TEXT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_content_kind_status ON content(kind, status)`,
		`CREATE INDEX IF NOT EXISTS idx_content_url ON content(url)`,
		`CREATE INDEX IF NOT EXISTS idx_variants_content_id ON variants(content_id)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}

	return nil
}

func (s *SQLiteStore) UpsertContentItem(ctx context.Context, item *models.ContentItem) error {
	query := `
        INSERT INTO content (id, title, slug, url, excerpt, kind, status, author, locale, thumbnail_url, menu_order, published_at, modified_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(url) DO UPDATE SET
            title = excluded.title,
            slug = excluded.slug,
            excerpt = excluded.excerpt,
            kind = excluded.kind,
            status = excluded.status,
            author = excluded.author,
            locale = excluded.locale,
            thumbnail_url = excluded.thumbnail_url,
            menu_order = excluded.menu_order,
            modified_at = excluded.modified_at
        RETURNING id
    `

	return s.db.QueryRowContext(ctx, query,
		nilIfZero(item.ID),
		item.Title,
		item.Slug,
		item.URL,
		item.Excerpt,
		item.Kind,
		item.Status,
		item.Author,
		item.Locale,
		item.ThumbnailURL,
		item.MenuOrder,
		item.PublishedAt,
		item.ModifiedAt,
	).Scan(&item.ID)
}

func (s *SQLiteStore) GetContentItem(ctx context.Context, id int64) (*models.ContentItem, error) {
	query := `
        SELECT id, title, slug, url, excerpt, kind, status, author, locale, thumbnail_url, menu_order, published_at, modified_at
        FROM content
        WHERE id = ?
    `

	item := &models.ContentItem{}
	var thumbnail sql.NullString

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.Title,
		&item.Slug,
		&item.URL,
		&item.Excerpt,
		&item.Kind,
		&item.Status,
		&item.Author,
		&item.Locale,
		&thumbnail,
		&item.MenuOrder,
		&item.PublishedAt,
		&item.ModifiedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	if thumbnail.Valid {
		item.ThumbnailURL = thumbnail.String
	}

	return item, nil
}

func (s *SQLiteStore) ListContentItems(ctx context.Context, limit, offset int) ([]*models.ContentItem, error) {
	query := `
        SELECT id, title, slug, url, excerpt, kind, status, author, locale, thumbnail_url, menu_order, published_at, modified_at
        FROM content
        ORDER BY id
        LIMIT ? OFFSET ?
    `

	return s.queryContent(ctx, query, limit, offset)
}

func (s *SQLiteStore) ListPublishedContent(ctx context.Context, kinds []string, ordering models.Ordering) ([]*models.ContentItem, error) {
	if len(kinds) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(kinds))
	args := make([]interface{}, 0, len(kinds))
	for i, kind := range kinds {
		placeholders[i] = "?"
		args = append(args, kind)
	}

	query := fmt.Sprintf(`
        SELECT id, title, slug, url, excerpt, kind, status, author, locale, thumbnail_url, menu_order, published_at, modified_at
        FROM content
        WHERE status = 'publish' AND kind IN (%s)
        ORDER BY %s, id
    `, strings.Join(placeholders, ", "), orderClause(ordering))

	return s.queryContent(ctx, query, args...)
}

func (s *SQLiteStore) UpsertProductDetail(ctx context.Context, detail *models.ProductDetail) error {
	categoriesJSON, err := json.Marshal(detail.Categories)
	if err != nil {
		return err
	}

	galleryJSON, err := json.Marshal(detail.GalleryImages)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO products (content_id, sku, price, currency, stock_status, image_url, categories, gallery_images, type)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(content_id) DO UPDATE SET
            sku = excluded.sku,
            price = excluded.price,
            currency = excluded.currency,
            stock_status = excluded.stock_status,
            image_url = excluded.image_url,
            categories = excluded.categories,
            gallery_images = excluded.gallery_images,
            type = excluded.type
    `

	if _, err := s.db.ExecContext(ctx, query,
		detail.ContentID,
		detail.SKU,
		detail.Price,
		detail.Currency,
		detail.StockStatus,
		detail.ImageURL,
		string(categoriesJSON),
		string(galleryJSON),
		detail.Type,
	); err != nil {
		return err
	}

	// Variants are replaced wholesale on every upsert.
	if _, err := s.db.ExecContext(ctx, `DELETE FROM variants WHERE content_id = ?`, detail.ContentID); err != nil {
		return err
	}

	for i := range detail.Variants {
		variant := &detail.Variants[i]

		attributesJSON, err := json.Marshal(variant.Attributes)
		if err != nil {
			return err
		}

		err = s.db.QueryRowContext(ctx, `
            INSERT INTO variants (id, content_id, sku, name, price, stock_status, url, attributes)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?)
            RETURNING id
        `,
			nilIfZero(variant.ID),
			detail.ContentID,
			variant.SKU,
			variant.Name,
			variant.Price,
			variant.StockStatus,
			variant.URL,
			string(attributesJSON),
		).Scan(&variant.ID)

		if err != nil {
			return err
		}
	}

	return nil
}

func (s *SQLiteStore) GetProductDetail(ctx context.Context, contentID int64) (*models.ProductDetail, error) {
	query := `
        SELECT content_id, sku, price, currency, stock_status, image_url, categories, gallery_images, type
        FROM products
        WHERE content_id = ?
    `

	detail := &models.ProductDetail{}
	var categoriesJSON, galleryJSON string
	var imageURL sql.NullString

	err := s.db.QueryRowContext(ctx, query, contentID).Scan(
		&detail.ContentID,
		&detail.SKU,
		&detail.Price,
		&detail.Currency,
		&detail.StockStatus,
		&imageURL,
		&categoriesJSON,
		&galleryJSON,
		&detail.Type,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	if imageURL.Valid {
		detail.ImageURL = imageURL.String
	}
	json.Unmarshal([]byte(categoriesJSON), &detail.Categories)
	json.Unmarshal([]byte(galleryJSON), &detail.GalleryImages)

	variants, err := s.queryVariants(ctx, contentID)
	if err != nil {
		return nil, err
	}
	detail.Variants = variants

	return detail, nil
}

func (s *SQLiteStore) queryVariants(ctx context.Context, contentID int64) ([]models.VariantDetail, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, sku, name, price, stock_status, url, attributes
        FROM variants
        WHERE content_id = ?
        ORDER BY id
    `, contentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []models.VariantDetail
	for rows.Next() {
		var variant models.VariantDetail
		var attributesJSON string

		err := rows.Scan(
			&variant.ID,
			&variant.SKU,
			&variant.Name,
			&variant.Price,
			&variant.StockStatus,
			&variant.URL,
			&attributesJSON,
		)

		if err != nil {
			return nil, err
		}

		json.Unmarshal([]byte(attributesJSON), &variant.Attributes)
		variants = append(variants, variant)
	}

	return variants, rows.Err()
}

func (s *SQLiteStore) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)

	if err == sql.ErrNoRows {
		return "", nil
	}

	if err != nil {
		return "", err
	}

	return value, nil
}

func (s *SQLiteStore) PutSetting(ctx context.Context, key, value string) error {
	query := `
        INSERT INTO settings (key, value)
        VALUES (?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value
    `

	_, err := s.db.ExecContext(ctx, query, key, value)
	return err
}

func (s *SQLiteStore) queryContent(ctx context.Context, query string, args ...interface{}) ([]*models.ContentItem, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.ContentItem
	for rows.Next() {
		var item models.ContentItem
		var thumbnail sql.NullString

		err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Slug,
			&item.URL,
			&item.Excerpt,
			&item.Kind,
			&item.Status,
			&item.Author,
			&item.Locale,
			&thumbnail,
			&item.MenuOrder,
			&item.PublishedAt,
			&item.ModifiedAt,
		)

		if err != nil {
			return nil, err
		}

		if thumbnail.Valid {
			item.ThumbnailURL = thumbnail.String
		}

		items = append(items, &item)
	}

	return items, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nilIfZero(id int64) interface{} {
	if id == 0 {
		return nil
	}
	return id
}

// orderClause whitelists the sortable columns so caller input never reaches
// the query text directly.
func orderClause(ordering models.Ordering) string {
	column := "menu_order"
	switch ordering.Field {
	case "menu_order", "published_at", "modified_at", "title", "id":
		column = ordering.Field
	}

	direction := "ASC"
	if strings.EqualFold(ordering.Direction, "desc") {
		direction = "DESC"
	}

	return column + " " + direction
}
