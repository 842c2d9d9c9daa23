package ratio

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gocompare_api/internal/compare/business/models"
)

const maxPriceBonus = 20.0

// Score is the 0-100 value score of p within a compared pair whose highest
// price is maxPrice. Quality sets the base; cheaper products gain up to
// maxPriceBonus points.
func Score(p *models.Product, maxPrice float64) float64 {
	if p == nil {
		return 0
	}

	base := 0.0
	switch {
	case p.Specifications.OverallScore > 0:
		base = float64(p.Specifications.OverallScore) * 10
	case p.Specifications.Stars > 0:
		base = p.Specifications.Stars * 20
	}

	score := base
	price := p.EffectivePrice()
	if models.IsValidPrice(price) && maxPrice > models.MinValidPrice {
		priceRatio := price / maxPrice
		bonus := (1 - priceRatio) * maxPriceBonus
		score = math.Min(100, base+bonus)
	}
	return math.Max(0, math.Min(100, score))
}

// MaxPrice is the higher display price of the pair, 0 when neither has one.
func MaxPrice(a, b *models.Product) float64 {
	var max float64
	for _, p := range []*models.Product{a, b} {
		if p != nil {
			max = math.Max(max, p.EffectivePrice())
		}
	}
	return max
}

// Winner compares two scores exactly; there is no tolerance.
func Winner(scoreA, scoreB float64) models.Winner {
	switch {
	case scoreA > scoreB:
		return models.WinnerA
	case scoreB > scoreA:
		return models.WinnerB
	}
	return models.WinnerTie
}

// Verdict is the sentence shown under a comparison.
func Verdict(nameA string, scoreA float64, nameB string, scoreB float64) string {
	switch Winner(scoreA, scoreB) {
	case models.WinnerA:
		return fmt.Sprintf("%s, %s puan farkla fiyat/performans açısından daha avantajlı.", nameA, formatGap(scoreA-scoreB))
	case models.WinnerB:
		return fmt.Sprintf("%s, %s puan farkla fiyat/performans açısından daha avantajlı.", nameB, formatGap(scoreB-scoreA))
	}
	return fmt.Sprintf("%s ve %s fiyat/performans açısından birbirine denk.", nameA, nameB)
}

func formatGap(gap float64) string {
	s := strconv.FormatFloat(math.Abs(gap), 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}
