package comparison

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"gocompare_api/config/values"
	"gocompare_api/internal/compare/business/models"
	"gocompare_api/internal/compare/business/services"
	"gocompare_api/internal/compare/business/services/parse"
	"gocompare_api/internal/compare/business/services/ratio"
	"gocompare_api/pkg/logger"
)

// ErrNotFound is returned when a requested product does not exist. Callers
// render it as a "not found" state, never as a failure.
var ErrNotFound = errors.New("product not found")

type Service struct {
	products services.ProductRepository
	display  values.DisplayValues
	log      logger.Logger
}

func NewService(products services.ProductRepository, display values.DisplayValues, writer io.Writer) *Service {
	return &Service{
		products: products,
		display:  display.WithDefaults(),
		log:      logger.NewLogger(writer, "[Comparison]"),
	}
}

// Compare loads two products and scores them against each other.
func (s *Service) Compare(ctx context.Context, idA, idB string) (*models.Comparison, error) {
	products, err := s.load(ctx, idA, idB)
	if err != nil {
		return nil, err
	}
	a, b := products[idA], products[idB]

	maxPrice := ratio.MaxPrice(a, b)
	cardA := s.card(a, ratio.Score(a, maxPrice))
	cardB := s.card(b, ratio.Score(b, maxPrice))

	return &models.Comparison{
		ProductA:  cardA,
		ProductB:  cardB,
		MaxPrice:  maxPrice,
		SpecTable: SpecTable(a, b),
		Verdict:   ratio.Verdict(cardA.DisplayName, cardA.Score, cardB.DisplayName, cardB.Score),
		Winner:    ratio.Winner(cardA.Score, cardB.Score),
	}, nil
}

// Product returns the display card of a single product, scored on its own.
func (s *Service) Product(ctx context.Context, id string) (*models.ProductCard, error) {
	products, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	p := products[id]
	card := s.card(p, ratio.Score(p, p.EffectivePrice()))
	return &card, nil
}

func (s *Service) load(ctx context.Context, ids ...string) (map[string]*models.Product, error) {
	var lookup, missing []string
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			missing = append(missing, id)
			continue
		}
		lookup = append(lookup, id)
	}

	found := map[string]*models.Product{}
	if len(lookup) > 0 {
		products, err := s.products.GetByIDs(ctx, lookup)
		if err != nil {
			return nil, fmt.Errorf("failed to load products: %w", err)
		}
		for _, p := range products {
			found[p.ID] = p
		}
	}
	for _, id := range lookup {
		if found[id] == nil {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		s.log.Log("Requested products not found: %s", strings.Join(missing, ", "))
		return nil, fmt.Errorf("%w: %s", ErrNotFound, strings.Join(missing, ", "))
	}
	return found, nil
}

func (s *Service) card(p *models.Product, score float64) models.ProductCard {
	price := p.EffectivePrice()
	card := models.ProductCard{
		ID:           p.ID,
		Name:         p.Name,
		DisplayName:  parse.FormatName(p.Name, p.Brand),
		Brand:        p.Brand,
		ImageURL:     p.ImageURL,
		Price:        price,
		HasPrice:     models.IsValidPrice(price),
		PriceLabel:   noPriceLabel,
		OverallScore: p.Specifications.OverallScore,
		Stars:        p.Specifications.Stars,
		Score:        score,
		Sources:      p.Sources,
		SpecLabels:   p.Specifications.SpecLabels,
	}
	if card.SpecLabels == nil {
		card.SpecLabels = map[string]string{}
	}
	if card.ImageURL == "" {
		card.ImageURL = s.display.FallbackImage
	}
	if card.HasPrice {
		card.PriceLabel = FormatPrice(price, s.display.CurrencyLabel)
	}
	return card
}
