package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"gocompare_api/internal/compare/business/models"
	"gocompare_api/pkg/dbconnect"
)

const productColumns = `id, category_id, name, COALESCE(brand, ''), model,
	COALESCE(price, 0), COALESCE(avg_price, 0), currency,
	COALESCE(image_url, ''), COALESCE(source_url, ''), COALESCE(source_name, ''),
	sources, specifications, is_active, COALESCE(stock_status, '')`

type ProductRepository struct {
	db      *sql.DB
	dialect dbconnect.Dialect
	now     func() time.Time
}

func NewProductRepository(db *sql.DB, dialect dbconnect.Dialect) *ProductRepository {
	return &ProductRepository{db: db, dialect: dialect, now: time.Now}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var (
		p       models.Product
		sources models.Sources
	)
	err := row.Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Brand, &p.Model,
		&p.Price, &p.AvgPrice, &p.Currency,
		&p.ImageURL, &p.SourceURL, &p.SourceName,
		&sources, &p.Specifications, &p.IsActive, &p.StockStatus,
	)
	if err != nil {
		return nil, err
	}
	p.Sources = sources
	return &p, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	query := r.dialect.Rebind(`SELECT ` + productColumns + ` FROM products WHERE id = $1`)

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// GetByIDs returns the products found among ids, in no particular order.
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var (
		query string
		args  []interface{}
	)
	if r.dialect == dbconnect.Postgres {
		query = `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`
		args = []interface{}{pq.Array(ids)}
	} else {
		placeholders := make([]string, len(ids))
		for i, id := range ids {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
			args = append(args, id)
		}
		query = r.dialect.Rebind(`SELECT ` + productColumns + ` FROM products WHERE id IN (` + strings.Join(placeholders, ", ") + `)`)
	}

	return r.query(ctx, query, args...)
}

// ListByCategory returns every product of a category in insertion order.
func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID int64) ([]*models.Product, error) {
	query := r.dialect.Rebind(`SELECT ` + productColumns + ` FROM products WHERE category_id = $1 ORDER BY scraped_at, id`)
	return r.query(ctx, query, categoryID)
}

func (r *ProductRepository) query(ctx context.Context, query string, args ...interface{}) ([]*models.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error occurred during row iteration: %w", err)
	}
	return products, nil
}

// ErrModelConflict is returned when a natural key is already taken by a
// product of another category.
var ErrModelConflict = errors.New("model is stored under another category")

// Upsert writes p keyed by its model and returns the id of the stored row.
// A retried insert of the same model keeps the original id and refreshes the
// listing fields only; prices, the average and sources are owned by the
// product_prices aggregate and left untouched.
func (r *ProductRepository) Upsert(ctx context.Context, p *models.Product) (string, error) {
	query := r.dialect.Rebind(`
	INSERT INTO products (id, category_id, name, brand, model, price, avg_price, currency,
		image_url, source_url, source_name, sources, specifications, is_active, stock_status,
		scraped_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	ON CONFLICT (model) DO UPDATE SET
		name = EXCLUDED.name,
		brand = EXCLUDED.brand,
		image_url = EXCLUDED.image_url,
		specifications = EXCLUDED.specifications,
		is_active = EXCLUDED.is_active,
		stock_status = EXCLUDED.stock_status,
		updated_at = EXCLUDED.updated_at
	WHERE products.category_id = EXCLUDED.category_id
	RETURNING id`)

	now := r.now().UTC()
	scrapedAt := p.ScrapedAt
	if scrapedAt.IsZero() {
		scrapedAt = now
	}

	sources, err := models.Sources(p.Sources).Value()
	if err != nil {
		return "", fmt.Errorf("failed to encode sources: %w", err)
	}
	specs, err := p.Specifications.Value()
	if err != nil {
		return "", fmt.Errorf("failed to encode specifications: %w", err)
	}

	var id string
	err = r.db.QueryRowContext(ctx, query,
		p.ID, p.CategoryID, p.Name, p.Brand, p.Model, p.Price, p.AvgPrice, p.Currency,
		p.ImageURL, p.SourceURL, p.SourceName, sources, specs, p.IsActive, p.StockStatus,
		scrapedAt, now,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrModelConflict, p.Model)
	}
	if err != nil {
		return "", fmt.Errorf("failed to upsert product %q: %w", p.Model, err)
	}
	return id, nil
}

func (r *ProductRepository) UpdateAggregate(ctx context.Context, id string, avgPrice float64, sources []models.Source) error {
	query := r.dialect.Rebind(`UPDATE products SET avg_price = $1, sources = $2, updated_at = $3 WHERE id = $4`)

	encoded, err := models.Sources(sources).Value()
	if err != nil {
		return fmt.Errorf("failed to encode sources: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, avgPrice, encoded, r.now().UTC(), id); err != nil {
		return fmt.Errorf("failed to update product %s: %w", id, err)
	}
	return nil
}
