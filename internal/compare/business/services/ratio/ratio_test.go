package ratio

import (
	"strings"
	"testing"

	"gocompare_api/internal/compare/business/models"
)

func product(overall int, stars, price float64) *models.Product {
	return &models.Product{
		Price:          price,
		AvgPrice:       price,
		Specifications: models.Specifications{OverallScore: overall, Stars: stars},
	}
}

func TestScenarioQualityVersusPrice(t *testing.T) {
	a := product(8, 0, 10000)
	b := product(6, 0, 5000)

	max := MaxPrice(a, b)
	if max != 10000 {
		t.Fatalf("expected max price 10000, got %v", max)
	}
	scoreA, scoreB := Score(a, max), Score(b, max)
	if scoreA != 80 || scoreB != 70 {
		t.Fatalf("expected 80 and 70, got %v and %v", scoreA, scoreB)
	}

	verdict := Verdict("Telefon A", scoreA, "Telefon B", scoreB)
	if !strings.HasPrefix(verdict, "Telefon A, 10 puan farkla") {
		t.Fatalf("unexpected verdict %q", verdict)
	}
}

func TestEqualProductsTie(t *testing.T) {
	a := product(7, 4, 12000)
	b := product(7, 4, 12000)
	max := MaxPrice(a, b)

	scoreA, scoreB := Score(a, max), Score(b, max)
	if scoreA != scoreB {
		t.Fatalf("expected equal scores, got %v and %v", scoreA, scoreB)
	}
	if Winner(scoreA, scoreB) != models.WinnerTie {
		t.Fatal("expected a tie")
	}
	if v := Verdict("A", scoreA, "B", scoreB); !strings.Contains(v, "birbirine denk") {
		t.Fatalf("expected tie verdict, got %q", v)
	}
}

func TestCheaperWinsAtEqualQuality(t *testing.T) {
	for _, prices := range [][2]float64{{9000, 10000}, {100, 101}, {15999, 16499}} {
		a := product(6, 3, prices[0])
		b := product(6, 3, prices[1])
		max := MaxPrice(a, b)
		if Score(a, max) <= Score(b, max) {
			t.Fatalf("cheaper product must score higher for prices %v", prices)
		}
	}
}

func TestScoreBaseAndBounds(t *testing.T) {
	cases := []struct {
		name string
		p    *models.Product
		max  float64
		want float64
	}{
		{"stars fallback", product(0, 4, 0), 0, 80},
		{"no signal", product(0, 0, 5000), 10000, 10},
		{"invalid price ignored", product(5, 0, 99), 10000, 50},
		{"max price too low", product(5, 0, 100), 100, 50},
		{"capped at 100", product(10, 5, 1000), 10000, 100},
		{"avg price preferred", &models.Product{Price: 8000, AvgPrice: 5000, Specifications: models.Specifications{OverallScore: 5}}, 10000, 60},
		{"nil product", nil, 10000, 0},
	}
	for _, c := range cases {
		if got := Score(c.p, c.max); got != c.want {
			t.Fatalf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestVerdictGapFormatting(t *testing.T) {
	v := Verdict("A", 61.5, "B", 72)
	if v != "B, 10.5 puan farkla fiyat/performans açısından daha avantajlı." {
		t.Fatalf("unexpected verdict %q", v)
	}
}
