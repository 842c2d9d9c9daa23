package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gocompare_api/config/values"
	"gocompare_api/internal/compare/business/models"
	"gocompare_api/internal/compare/business/services"
	"gocompare_api/internal/compare/business/services/match"
	"gocompare_api/internal/compare/business/services/parse"
	"gocompare_api/internal/compare/business/services/specs"
	"gocompare_api/metrics"
	"gocompare_api/pkg/logger"
)

const (
	naturalKeyPrefix = "apify-"
	stockInStock     = "in_stock"
)

// Request identifies one batch: the actor run whose results are ingested and
// the category they belong to.
type Request struct {
	Category string
	RunID    string
	// DatasetID skips the run lookup when the caller already knows it.
	DatasetID string
	Source    string
}

type Result struct {
	Category string `json:"category"`
	Source   string `json:"source"`
	Inserted int    `json:"inserted"`
	Merged   int    `json:"merged"`
	Skipped  int    `json:"skipped"`
	Errors   int    `json:"errors"`
	Total    int    `json:"total"`
}

// Service turns raw marketplace items into stored, de-duplicated products.
// Items are processed one at a time; a failing item never aborts the batch.
type Service struct {
	categories services.CategoryRepository
	products   services.ProductRepository
	prices     services.PriceRepository
	client     services.DatasetClient
	indexer    services.Indexer
	engine     *specs.Engine
	values     values.IngestValues
	log        logger.Logger

	now   func() time.Time
	newID func() string
}

func NewService(
	categories services.CategoryRepository,
	products services.ProductRepository,
	prices services.PriceRepository,
	client services.DatasetClient,
	engine *specs.Engine,
	ingestValues values.IngestValues,
	writer io.Writer,
) *Service {
	return &Service{
		categories: categories,
		products:   products,
		prices:     prices,
		client:     client,
		engine:     engine,
		values:     ingestValues.WithDefaults(),
		log:        logger.NewLogger(writer, "[Ingest]"),
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// WithIndexer enables search index sync after every insert and merge.
func (s *Service) WithIndexer(indexer services.Indexer) *Service {
	s.indexer = indexer
	return s
}

// Ingest fetches the dataset of an actor run and ingests its items.
func (s *Service) Ingest(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Category) == "" {
		return nil, ErrMissingCategory
	}
	if req.RunID == "" && req.DatasetID == "" {
		return nil, ErrMissingRunID
	}
	if s.client == nil {
		return nil, ErrMissingToken
	}

	category, err := s.category(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	datasetID := req.DatasetID
	if datasetID == "" {
		if datasetID, err = s.client.ResolveDataset(ctx, req.RunID); err != nil {
			return nil, upstream(err)
		}
	}
	items, err := s.client.FetchItems(ctx, datasetID, s.values.DatasetLimit)
	if err != nil {
		return nil, upstream(err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDataset, datasetID)
	}
	s.log.Log("Run %s: %d items for %s", req.RunID, len(items), category.Slug)

	return s.ingest(ctx, category, s.source(req.Source), items)
}

// IngestItems ingests items that are already at hand, e.g. an exported file.
func (s *Service) IngestItems(ctx context.Context, categorySlug, source string, items []models.RawItem) (*Result, error) {
	if strings.TrimSpace(categorySlug) == "" {
		return nil, ErrMissingCategory
	}
	category, err := s.category(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyDataset
	}
	return s.ingest(ctx, category, s.source(source), items)
}

func (s *Service) category(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, slug)
	}
	return category, nil
}

func (s *Service) source(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return s.values.DefaultSource
}

func upstream(err error) error {
	if errors.Is(err, ErrMissingToken) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUpstream, err)
}

func (s *Service) ingest(ctx context.Context, category *models.Category, source string, items []models.RawItem) (*Result, error) {
	existing, err := s.products.ListByCategory(ctx, category.ID)
	if err != nil {
		metrics.RecordIngestBatch(category.Slug, err)
		return nil, fmt.Errorf("failed to load products of %s: %w", category.Slug, err)
	}
	matcher := match.NewMatcher(existing)

	var counts metrics.IngestMetrics
	for i, raw := range items {
		outcome, err := s.ingestItem(ctx, category, source, raw, matcher)
		if err != nil {
			s.log.Error("%s item %d: %v", category.Slug, i, err)
			outcome = metrics.Errored
		}
		counts.Add(outcome)
		metrics.RecordIngestItem(category.Slug, outcome)
	}
	metrics.RecordIngestBatch(category.Slug, nil)

	result := &Result{
		Category: category.Slug,
		Source:   source,
		Inserted: int(counts.Inserted.Load()),
		Merged:   int(counts.Merged.Load()),
		Skipped:  int(counts.Skipped.Load()),
		Errors:   int(counts.Errors.Load()),
		Total:    int(counts.Total.Load()),
	}
	s.log.Log("%s from %s: %d inserted, %d merged, %d skipped, %d errors of %d",
		result.Category, result.Source, result.Inserted, result.Merged, result.Skipped, result.Errors, result.Total)
	return result, nil
}

func (s *Service) ingestItem(ctx context.Context, category *models.Category, source string, raw models.RawItem, matcher *match.Matcher) (outcome metrics.Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while processing item: %v", r)
		}
	}()

	name := parse.CleanProductName(raw)
	if name == "" {
		return metrics.Skipped, nil
	}
	price, ok := parse.BestPrice(raw)
	if !ok {
		return metrics.Skipped, nil
	}

	brand := parse.Brand(raw, name)
	stars := parse.Stars(raw)
	url := parse.ProductURL(raw)
	spec := s.engine.Infer(category.Slug, name+" "+parse.Description(raw), stars)
	spec.ReviewsCount = parse.ReviewCount(raw)
	now := s.now().UTC()

	if existing := matcher.Find(name, brand); existing != nil {
		if err := s.merge(ctx, existing, source, url, price, now); err != nil {
			return "", err
		}
		s.index(ctx, existing)
		return metrics.Merged, nil
	}

	p := &models.Product{
		ID:             s.newID(),
		CategoryID:     category.ID,
		Name:           name,
		Brand:          brand,
		Model:          naturalKey(category.Slug, source, raw, now),
		Price:          price,
		AvgPrice:       price,
		Currency:       s.values.Currency,
		ImageURL:       parse.Image(raw),
		SourceURL:      url,
		SourceName:     source,
		Sources:        []models.Source{{Name: source, URL: url, Price: price}},
		Specifications: spec,
		IsActive:       true,
		StockStatus:    stockInStock,
		ScrapedAt:      now,
	}
	id, err := s.products.Upsert(ctx, p)
	if err != nil {
		return "", err
	}
	if id != p.ID {
		// the listing is already stored under its natural key but no longer
		// name-matches; record the price against the stored row
		return s.rejoin(ctx, id, source, url, price, now, matcher)
	}

	if err := s.prices.Upsert(ctx, s.observation(p.ID, source, url, price, now)); err != nil {
		return "", err
	}
	matcher.Add(p)
	s.index(ctx, p)
	return metrics.Inserted, nil
}

// merge records this source's price for an already stored product and
// refreshes the cross-source average.
func (s *Service) merge(ctx context.Context, p *models.Product, source, url string, price float64, now time.Time) error {
	if err := s.prices.Upsert(ctx, s.observation(p.ID, source, url, price, now)); err != nil {
		return err
	}
	prices, err := s.prices.ListPrices(ctx, p.ID)
	if err != nil {
		return err
	}
	avg := AveragePrice(prices)

	p.UpsertSource(models.Source{Name: source, URL: url, Price: price})
	if err := s.products.UpdateAggregate(ctx, p.ID, avg, p.Sources); err != nil {
		return err
	}
	p.AvgPrice = avg
	return nil
}

func (s *Service) observation(productID, source, url string, price float64, now time.Time) models.PriceObservation {
	return models.PriceObservation{
		ProductID:  productID,
		SourceName: source,
		SourceURL:  url,
		Price:      price,
		Currency:   s.values.Currency,
		ScrapedAt:  now,
	}
}

// rejoin merges a re-ingested listing into the row stored under its natural key.
func (s *Service) rejoin(ctx context.Context, id, source, url string, price float64, now time.Time, matcher *match.Matcher) (metrics.Outcome, error) {
	stored, err := s.products.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if stored == nil {
		return "", fmt.Errorf("product %s disappeared after upsert", id)
	}
	if err := s.merge(ctx, stored, source, url, price, now); err != nil {
		return "", err
	}
	matcher.Add(stored)
	s.index(ctx, stored)
	return metrics.Merged, nil
}

// naturalKey identifies a listing across batches: one marketplace item of
// one source within one category. Without a marketplace id every insert is new.
func naturalKey(category, source string, raw models.RawItem, now time.Time) string {
	id := parse.SourceItemID(raw)
	if id == "" {
		id = strconv.FormatInt(now.UnixNano(), 10)
	}
	return naturalKeyPrefix + strings.Join([]string{category, keyPart(source), id}, "-")
}

func keyPart(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), "_"))
}

func (s *Service) index(ctx context.Context, p *models.Product) {
	if s.indexer == nil {
		return
	}
	if err := s.indexer.Index(ctx, p); err != nil {
		s.log.Error("search index sync of %s: %v", p.ID, err)
	}
}

// AveragePrice is the mean of prices rounded to 2 decimals, 0 for none.
func AveragePrice(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}
	total := decimal.Zero
	for _, p := range prices {
		total = total.Add(decimal.NewFromFloat(p))
	}
	return total.Div(decimal.NewFromInt(int64(len(prices)))).Round(2).InexactFloat64()
}
