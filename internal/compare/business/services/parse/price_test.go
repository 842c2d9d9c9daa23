package parse

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"

	"gocompare_api/internal/compare/business/models"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   interface{}
		want float64
		ok   bool
	}{
		{"1.234,56", 1234.56, true},
		{"12.345", 12345, true},
		{"1.234.567", 1234567, true},
		{"15.999,00 TL", 15999, true},
		{"₺ 899,90", 899.9, true},
		{"1299.99", 1299.99, true},
		{"1299", 1299, true},
		{"100", 100, true},
		{"0,00", 0, false},
		{"-5", 5, true},
		{"abc", 0, false},
		{"", 0, false},
		{",", 0, false},
		{"1.234,56,78", 1234.56, true},
		{float64(15999), 15999, true},
		{float64(0), 0, false},
		{float64(-10), 0, false},
		{math.NaN(), 0, false},
		{42, 42, true},
		{json.Number("250.5"), 250.5, true},
		{nil, 0, false},
		{true, 0, false},
		{[]interface{}{"100"}, 0, false},
	}

	for _, c := range cases {
		got, ok := ParsePrice(c.in)
		if ok != c.ok || (ok && math.Abs(got-c.want) > 1e-9) {
			t.Fatalf("ParsePrice(%#v) = %v, %v; want %v, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

// groups renders n as "1.234.567" style thousands grouping.
func groups(n int) string {
	s := strconv.Itoa(n)
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ".")
}

func TestParsePriceLocalizedGrouping(t *testing.T) {
	for _, n := range []int{1000, 1234, 12345, 999999, 1234567, 10000000} {
		for _, cents := range []int{0, 5, 67, 99} {
			s := fmt.Sprintf("%s,%02d", groups(n), cents)
			want := float64(n) + float64(cents)/100
			got, ok := ParsePrice(s)
			if !ok || math.Abs(got-want) > 1e-6 {
				t.Fatalf("ParsePrice(%q) = %v, %v; want %v", s, got, ok, want)
			}
		}

		s := groups(n)
		got, ok := ParsePrice(s)
		if !ok || got != float64(n) {
			t.Fatalf("ParsePrice(%q) = %v, %v; want %d", s, got, ok, n)
		}
	}
}

func TestParsePriceNeverNonPositive(t *testing.T) {
	for _, in := range []interface{}{"0", "0.000", "0,0", "...", ".,", float32(0), int64(-3), "-0"} {
		if got, ok := ParsePrice(in); ok || got != 0 {
			t.Fatalf("ParsePrice(%#v) = %v, %v; want rejection", in, got, ok)
		}
	}
}

func TestBestPricePriority(t *testing.T) {
	item := models.RawItem{
		"listPrice":       "19.999,00",
		"discountedPrice": "17.499,00",
		"price":           18000.0,
	}
	got, ok := BestPrice(item)
	if !ok || got != 17499 {
		t.Fatalf("expected discounted price 17499, got %v, %v", got, ok)
	}

	item["discountedPrice"] = "yok"
	got, ok = BestPrice(item)
	if !ok || got != 18000 {
		t.Fatalf("expected fallback to price 18000, got %v, %v", got, ok)
	}

	nested := models.RawItem{"price": map[string]interface{}{"value": 2499.9, "currency": "TRY"}}
	if got, ok := BestPrice(nested); !ok || got != 2499.9 {
		t.Fatalf("expected nested value 2499.9, got %v, %v", got, ok)
	}

	if _, ok := BestPrice(models.RawItem{"name": "x"}); ok {
		t.Fatal("expected no price")
	}
}
