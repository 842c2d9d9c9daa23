package match

import (
	"gocompare_api/internal/compare/business/models"
	"gocompare_api/internal/compare/business/services/parse"
)

// PrefixLength is how many leading characters of two match keys must agree
// for the listings to be treated as the same product.
const PrefixLength = 30

type entry struct {
	prefix  string
	product *models.Product
}

// Matcher finds already-known products of one category by match key prefix.
// It is not safe for concurrent use.
type Matcher struct {
	entries []entry
}

// NewMatcher indexes products in load order; the earliest match wins.
func NewMatcher(products []*models.Product) *Matcher {
	m := &Matcher{entries: make([]entry, 0, len(products))}
	for _, p := range products {
		m.Add(p)
	}
	return m
}

// Add registers a product, typically one inserted earlier in the same batch.
func (m *Matcher) Add(p *models.Product) {
	if p == nil {
		return
	}
	m.entries = append(m.entries, entry{prefix: Key(p.Name, p.Brand), product: p})
}

// Find returns the first indexed product whose key prefix equals the
// candidate's, or nil. Empty keys never match.
func (m *Matcher) Find(name, brand string) *models.Product {
	key := Key(name, brand)
	if key == "" {
		return nil
	}
	for _, e := range m.entries {
		if e.prefix == key {
			return e.product
		}
	}
	return nil
}

// Key is the comparable prefix of a product's normalized match key.
func Key(name, brand string) string {
	return prefix(parse.NormalizeForMatch(name, brand), PrefixLength)
}

func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}
