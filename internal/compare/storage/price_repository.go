package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gocompare_api/internal/compare/business/models"
	"gocompare_api/pkg/dbconnect"
)

type PriceRepository struct {
	db      *sql.DB
	dialect dbconnect.Dialect
}

func NewPriceRepository(db *sql.DB, dialect dbconnect.Dialect) *PriceRepository {
	return &PriceRepository{db: db, dialect: dialect}
}

// Upsert keeps one observation per product and source; a newer one replaces it.
func (r *PriceRepository) Upsert(ctx context.Context, o models.PriceObservation) error {
	query := r.dialect.Rebind(`
	INSERT INTO product_prices (product_id, source_name, source_url, price, currency, scraped_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (product_id, source_name) DO UPDATE SET
		source_url = EXCLUDED.source_url,
		price = EXCLUDED.price,
		currency = EXCLUDED.currency,
		scraped_at = EXCLUDED.scraped_at`)

	scrapedAt := o.ScrapedAt
	if scrapedAt.IsZero() {
		scrapedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, query, o.ProductID, o.SourceName, o.SourceURL, o.Price, o.Currency, scrapedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert price of %s from %s: %w", o.ProductID, o.SourceName, err)
	}
	return nil
}

func (r *PriceRepository) ListPrices(ctx context.Context, productID string) ([]float64, error) {
	query := r.dialect.Rebind(`SELECT price FROM product_prices WHERE product_id = $1 ORDER BY source_name`)

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var prices []float64
	for rows.Next() {
		var price float64
		if err := rows.Scan(&price); err != nil {
			return nil, fmt.Errorf("failed to scan price: %w", err)
		}
		prices = append(prices, price)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error occurred during row iteration: %w", err)
	}
	return prices, nil
}
