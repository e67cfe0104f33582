package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
	"github.com/siteroots/schema-sitemap/internal/models"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS content (
            id BIGSERIAL PRIMARY KEY,
            title VARCHAR(512) NOT NULL,
            slug VARCHAR(512) NOT NULL,
            url VARCHAR(2048) UNIQUE NOT NULL,
            excerpt TEXT,
            kind VARCHAR(64) NOT NULL DEFAULT 'post',
            status VARCHAR(32) NOT NULL DEFAULT 'publish',
            author VARCHAR(255),
            locale VARCHAR(16),
            thumbnail_url VARCHAR(2048),
            menu_order INTEGER NOT NULL DEFAULT 0,
            published_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
            modified_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            content_id BIGINT PRIMARY KEY REFERENCES content(id),
            sku VARCHAR(128),
            price VARCHAR(32),
            currency VARCHAR(8),
            stock_status VARCHAR(32) NOT NULL DEFAULT 'in_stock',
            image_url VARCHAR(2048),
            categories TEXT[],
            gallery_images TEXT[],
            type VARCHAR(32) NOT NULL DEFAULT 'simple'
        )`,
		`CREATE TABLE IF NOT EXISTS variants (
            id BIGSERIAL PRIMARY KEY,
            content_id BIGINT NOT NULL REFERENCES products(content_id),
            sku VARCHAR(128),
            name VARCHAR(512),
            price VARCHAR(32),
            stock_status VARCHAR(32) NOT NULL DEFAULT 'in_stock',
            url VARCHAR(2048),
            attributes JSONB
        )`,
		`CREATE TABLE IF NOT EXISTS settings (
            key VARCHAR(128) PRIMARY KEY,
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

func (s *PostgresStore) UpsertContentItem(ctx context.Context, item *models.ContentItem) error {
	query := `
        INSERT INTO content (id, title, slug, url, excerpt, kind, status, author, locale, thumbnail_url, menu_order, published_at, modified_at)
        VALUES (COALESCE(NULLIF($1, 0), nextval('content_id_seq')), $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        ON CONFLICT (url) DO UPDATE SET
            title = EXCLUDED.title,
            slug = EXCLUDED.slug,
            excerpt = EXCLUDED.excerpt,
            kind = EXCLUDED.kind,
            status = EXCLUDED.status,
            author = EXCLUDED.author,
            locale = EXCLUDED.locale,
            thumbnail_url = EXCLUDED.thumbnail_url,
            menu_order = EXCLUDED.menu_order,
            modified_at = EXCLUDED.modified_at
        RETURNING id
    `

	return s.db.QueryRowContext(ctx, query,
		item.ID,
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

func (s *PostgresStore) GetContentItem(ctx context.Context, id int64) (*models.ContentItem, error) {
	query := `
        SELECT id, title, slug, url, excerpt, kind, status, author, locale, thumbnail_url, menu_order, published_at, modified_at
        FROM content
        WHERE id = $1
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

func (s *PostgresStore) ListContentItems(ctx context.Context, limit, offset int) ([]*models.ContentItem, error) {
	query := `
        SELECT id, title, slug, url, excerpt, kind, status, author, locale, thumbnail_url, menu_order, published_at, modified_at
        FROM content
        ORDER BY id
        LIMIT $1 OFFSET $2
    `

	return s.queryContent(ctx, query, limit, offset)
}

func (s *PostgresStore) ListPublishedContent(ctx context.Context, kinds []string, ordering models.Ordering) ([]*models.ContentItem, error) {
	if len(kinds) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
        SELECT id, title, slug, url, excerpt, kind, status, author, locale, thumbnail_url, menu_order, published_at, modified_at
        FROM content
        WHERE status = 'publish' AND kind = ANY($1)
        ORDER BY %s, id
    `, orderClause(ordering))

	return s.queryContent(ctx, query, pq.Array(kinds))
}

func (s *PostgresStore) UpsertProductDetail(ctx context.Context, detail *models.ProductDetail) error {
	query := `
        INSERT INTO products (content_id, sku, price, currency, stock_status, image_url, categories, gallery_images, type)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (content_id) DO UPDATE SET
            sku = EXCLUDED.sku,
            price = EXCLUDED.price,
            currency = EXCLUDED.currency,
            stock_status = EXCLUDED.stock_status,
            image_url = EXCLUDED.image_url,
            categories = EXCLUDED.categories,
            gallery_images = EXCLUDED.gallery_images,
            type = EXCLUDED.type
    `

	if _, err := s.db.ExecContext(ctx, query,
		detail.ContentID,
		detail.SKU,
		detail.Price,
		detail.Currency,
		detail.StockStatus,
		detail.ImageURL,
		pq.Array(detail.Categories),
		pq.Array(detail.GalleryImages),
		detail.Type,
	); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM variants WHERE content_id = $1`, detail.ContentID); err != nil {
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
            VALUES (COALESCE(NULLIF($1, 0), nextval('variants_id_seq')), $2, $3, $4, $5, $6, $7, $8)
            RETURNING id
        `,
			variant.ID,
			detail.ContentID,
			variant.SKU,
			variant.Name,
			variant.Price,
			variant.StockStatus,
			variant.URL,
			attributesJSON,
		).Scan(&variant.ID)

		if err != nil {
			return err
		}
	}

	return nil
}

func (s *PostgresStore) GetProductDetail(ctx context.Context, contentID int64) (*models.ProductDetail, error) {
	query := `
        SELECT content_id, sku, price, currency, stock_status, image_url, categories, gallery_images, type
        FROM products
        WHERE content_id = $1
    `

	detail := &models.ProductDetail{}
	var imageURL sql.NullString

	err := s.db.QueryRowContext(ctx, query, contentID).Scan(
		&detail.ContentID,
		&detail.SKU,
		&detail.Price,
		&detail.Currency,
		&detail.StockStatus,
		&imageURL,
		pq.Array(&detail.Categories),
		pq.Array(&detail.GalleryImages),
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

	variants, err := s.queryVariants(ctx, contentID)
	if err != nil {
		return nil, err
	}
	detail.Variants = variants

	return detail, nil
}

func (s *PostgresStore) queryVariants(ctx context.Context, contentID int64) ([]models.VariantDetail, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, sku, name, price, stock_status, url, attributes
        FROM variants
        WHERE content_id = $1
        ORDER BY id
    `, contentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []models.VariantDetail
	for rows.Next() {
		var variant models.VariantDetail
		var attributesJSON []byte

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

		json.Unmarshal(attributesJSON, &variant.Attributes)
		variants = append(variants, variant)
	}

	return variants, rows.Err()
}

func (s *PostgresStore) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)

	if err == sql.ErrNoRows {
		return "", nil
	}

	if err != nil {
		return "", err
	}

	return value, nil
}

func (s *PostgresStore) PutSetting(ctx context.Context, key, value string) error {
	query := `
        INSERT INTO settings (key, value)
        VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
    `

	_, err := s.db.ExecContext(ctx, query, key, value)
	return err
}

func (s *PostgresStore) queryContent(ctx context.Context, query string, args ...interface{}) ([]*models.ContentItem, error) {
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

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
