package services

import (
	"context"

	"gocompare_api/internal/compare/business/models"
)

// Repositories return nil, nil when the requested row does not exist.

type CategoryRepository interface {
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
}

type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Product, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*models.Product, error)
	// Upsert inserts the product or updates the row with the same model and
	// returns the stored id.
	Upsert(ctx context.Context, p *models.Product) (string, error)
	UpdateAggregate(ctx context.Context, id string, avgPrice float64, sources []models.Source) error
}

type PriceRepository interface {
	Upsert(ctx context.Context, o models.PriceObservation) error
	ListPrices(ctx context.Context, productID string) ([]float64, error)
}

// DatasetClient fetches the raw items produced by an upstream actor run.
type DatasetClient interface {
	ResolveDataset(ctx context.Context, runID string) (string, error)
	FetchItems(ctx context.Context, datasetID string, limit int) ([]models.RawItem, error)
}

// Indexer mirrors stored products into a search index.
type Indexer interface {
	Index(ctx context.Context, products ...*models.Product) error
}
