package models

import "time"

// MinValidPrice is the lowest amount treated as a real price. Anything below
// it is a parse failure and must never be displayed.
const MinValidPrice = 100.0

type Category struct {
	ID           int64  `json:"id"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
}

// Source is one marketplace listing contributing a price for a product.
type Source struct {
	Name  string  `json:"name"`
	URL   string  `json:"url"`
	Price float64 `json:"price"`
}

type Product struct {
	ID             string         `json:"id"`
	CategoryID     int64          `json:"category_id"`
	Name           string         `json:"name"`
	Brand          string         `json:"brand"`
	Model          string         `json:"model"`
	Price          float64        `json:"price"`
	AvgPrice       float64        `json:"avg_price"`
	Currency       string         `json:"currency"`
	ImageURL       string         `json:"image_url"`
	SourceURL      string         `json:"source_url"`
	SourceName     string         `json:"source_name"`
	Sources        []Source       `json:"sources"`
	Specifications Specifications `json:"specifications"`
	IsActive       bool           `json:"is_active"`
	StockStatus    string         `json:"stock_status"`
	ScrapedAt      time.Time      `json:"scraped_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// EffectivePrice is the price shown for the product: the cross-source mean
// when it is valid, the first observed price otherwise. Zero means unavailable.
func (p *Product) EffectivePrice() float64 {
	if IsValidPrice(p.AvgPrice) {
		return p.AvgPrice
	}
	if IsValidPrice(p.Price) {
		return p.Price
	}
	return 0
}

// UpsertSource replaces the entry with the same source name or appends a new
// one, keeping the set ordered by first appearance.
func (p *Product) UpsertSource(s Source) {
	for i := range p.Sources {
		if p.Sources[i].Name == s.Name {
			p.Sources[i] = s
			return
		}
	}
	p.Sources = append(p.Sources, s)
}

func IsValidPrice(price float64) bool {
	return price >= MinValidPrice
}

// PriceObservation is the latest price of a product at one source.
type PriceObservation struct {
	ProductID  string    `json:"product_id"`
	SourceName string    `json:"source_name"`
	SourceURL  string    `json:"source_url"`
	Price      float64   `json:"price"`
	Currency   string    `json:"currency"`
	ScrapedAt  time.Time `json:"scraped_at"`
}
