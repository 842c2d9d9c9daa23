package clients

import (
	"context"
	"fmt"
	"io"

	"github.com/meilisearch/meilisearch-go"

	"gocompare_api/internal/compare/business/models"
	"gocompare_api/pkg/logger"
)

// MeiliIndexer mirrors stored products into a Meilisearch index so the site
// search sees new listings without reading the database.
type MeiliIndexer struct {
	index meilisearch.IndexManager
	log   logger.Logger
}

func NewMeiliIndexer(host, apiKey, indexUID string, writer io.Writer) *MeiliIndexer {
	client := meilisearch.New(host, meilisearch.WithAPIKey(apiKey))
	_log := logger.NewLogger(writer, "[MeiliIndexer]")

	if _, err := client.CreateIndex(&meilisearch.IndexConfig{Uid: indexUID, PrimaryKey: "id"}); err != nil {
		// the index usually exists already
		_log.Log("create index %s: %v", indexUID, err)
	}
	return &MeiliIndexer{index: client.Index(indexUID), log: _log}
}

func (m *MeiliIndexer) Index(ctx context.Context, products ...*models.Product) error {
	docs := make([]map[string]interface{}, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		docs = append(docs, Document(p))
	}
	if len(docs) == 0 {
		return nil
	}

	if _, err := m.index.AddDocumentsWithContext(ctx, docs, nil); err != nil {
		return fmt.Errorf("failed to index %d products: %w", len(docs), err)
	}
	return nil
}

// Document is the search representation of a product.
func Document(p *models.Product) map[string]interface{} {
	return map[string]interface{}{
		"id":            p.ID,
		"category_id":   p.CategoryID,
		"name":          p.Name,
		"brand":         p.Brand,
		"price":         p.EffectivePrice(),
		"currency":      p.Currency,
		"image_url":     p.ImageURL,
		"overall_score": p.Specifications.OverallScore,
		"stars":         p.Specifications.Stars,
		"sources":       len(p.Sources),
	}
}
