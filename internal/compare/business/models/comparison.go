package models

// Winner marks which side of a comparison row is better.
type Winner string

const (
	WinnerA    Winner = "a"
	WinnerB    Winner = "b"
	WinnerTie  Winner = "tie"
	WinnerNone Winner = ""
)

// SpecRow is one line of the technical comparison table.
type SpecRow struct {
	Label  string `json:"label"`
	ValueA string `json:"value_a"`
	ValueB string `json:"value_b"`
	Winner Winner `json:"winner"`
}

// ProductCard is the display form of a stored product.
type ProductCard struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	DisplayName  string   `json:"display_name"`
	Brand        string   `json:"brand"`
	ImageURL     string   `json:"image_url"`
	Price        float64  `json:"price"`
	PriceLabel   string   `json:"price_label"`
	HasPrice     bool     `json:"has_price"`
	OverallScore int      `json:"overall_score"`
	Stars        float64  `json:"stars"`
	Score        float64  `json:"score"`
	Sources      []Source `json:"sources"`

	SpecLabels map[string]string `json:"spec_labels"`
}

type Comparison struct {
	ProductA  ProductCard `json:"product_a"`
	ProductB  ProductCard `json:"product_b"`
	MaxPrice  float64     `json:"max_price"`
	SpecTable []SpecRow   `json:"spec_table"`
	Verdict   string      `json:"verdict"`
	Winner    Winner      `json:"winner"`
}
