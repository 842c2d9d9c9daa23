package parse

import (
	"strings"
	"testing"
	"unicode/utf8"

	"gocompare_api/internal/compare/business/models"
)

func TestScenarioSamsungListing(t *testing.T) {
	item := models.RawItem{
		"name":   "Samsung Galaxy A54 8GB 128GB (Siyah) Türkiye Garantili",
		"brand":  "",
		"price":  "15.999,00",
		"rating": "4.5",
	}

	name := CleanProductName(item)
	if name != "Samsung Galaxy A54 8GB 128GB (Siyah) Türkiye Garantili" {
		t.Fatalf("unexpected cleaned name %q", name)
	}
	brand := Brand(item, name)
	if brand != "Samsung" {
		t.Fatalf("expected brand Samsung, got %q", brand)
	}
	if price, ok := BestPrice(item); !ok || price != 15999 {
		t.Fatalf("expected price 15999, got %v, %v", price, ok)
	}
	if got := FormatName(name, brand); got != "Samsung Galaxy A54 8GB 128GB" {
		t.Fatalf("unexpected display name %q", got)
	}
}

func TestCleanProductName(t *testing.T) {
	item := models.RawItem{"title": "  Apple iPhone 15   128 GB | Mavi, Apple Türkiye Garantili"}
	if got := CleanProductName(item); got != "Apple iPhone 15 128 GB" {
		t.Fatalf("unexpected name %q", got)
	}

	long := models.RawItem{"name": strings.Repeat("Çok uzun ürün adı ", 10)}
	if got := CleanProductName(long); utf8.RuneCountInString(got) > MaxNameLength {
		t.Fatalf("name exceeds %d runes: %q", MaxNameLength, got)
	}

	if got := CleanProductName(models.RawItem{"name": 42}); got != "" {
		t.Fatalf("expected empty name, got %q", got)
	}
}

func TestFormatName(t *testing.T) {
	cases := []struct {
		name, brand, want string
	}{
		{"Visit the Xiaomi Store Redmi Note 13 Pro 8GB 256GB", "Xiaomi", "Xiaomi Redmi Note 13 Pro 8GB 256GB"},
		{"Lenovo IdeaPad Slim 3 Laptop - Outlet Ürün", "Lenovo", "Lenovo IdeaPad Slim 3"},
		{"Galaxy S24 Akıllı Telefon [Kampanya] Gri", "Samsung", "Samsung Galaxy S24"},
		{"IPHONE 15 128GB SİYAH", "Apple", "Apple IPHONE 15 128GB"},
		{"Galaxy S23+ 256GB", "Samsung", "Samsung Galaxy S23+ 256GB"},
		{"Laptop", FallbackBrand, "Laptop"},
		{"(Siyah)", "", "(Siyah)"},
		{"   ", "", genericName},
		{"", "Samsung", ""},
	}
	for _, c := range cases {
		if got := FormatName(c.name, c.brand); got != c.want {
			t.Fatalf("FormatName(%q, %q) = %q, want %q", c.name, c.brand, got, c.want)
		}
	}
}

func TestFormatNameBounds(t *testing.T) {
	inputs := []string{
		"a",
		"Laptop",
		"Dyson V15 Detect Absolute Kablosuz Dikey Süpürge Sarı Nikel Renk Seçenekli Yeni Model",
		strings.Repeat("x", 200),
		"ASUS ROG Strix G16 G614JV Intel Core i7 13650HX 16GB 1TB SSD RTX4060 16\" Windows 11",
		"- | –",
		"Siyah Beyaz Mavi",
	}
	for _, in := range inputs {
		for _, brand := range []string{"", FallbackBrand, "Samsung", strings.Repeat("Marka", 12)} {
			got := FormatName(in, brand)
			if got == "" {
				t.Fatalf("FormatName(%q, %q) returned empty string", in, brand)
			}
			if n := utf8.RuneCountInString(got); n > DisplayNameLength {
				t.Fatalf("FormatName(%q, %q) = %q has %d runes", in, brand, got, n)
			}
		}
	}
}

func TestNormalizeForMatch(t *testing.T) {
	a := NormalizeForMatch("Samsung Galaxy A54 8GB 128GB (Siyah) Türkiye Garantili", "Samsung")
	b := NormalizeForMatch("Samsung Galaxy A54 8 GB 128 GB Mavi", "Samsung")
	if a != b {
		t.Fatalf("expected equal keys, got %q and %q", a, b)
	}
	if a != "samsungsamsunggalaxya548gb128gb" {
		t.Fatalf("unexpected key %q", a)
	}

	c := NormalizeForMatch("Redmi Note 13 İthalatçı Garantili 24 Ay", "Xiaomi")
	d := NormalizeForMatch("REDMI NOTE 13", "XIAOMI")
	if c != d {
		t.Fatalf("expected equal keys, got %q and %q", c, d)
	}

	long := NormalizeForMatch(strings.Repeat("Galaxy ", 30), "Samsung")
	if n := utf8.RuneCountInString(long); n != MatchKeyLength {
		t.Fatalf("expected key of %d runes, got %d", MatchKeyLength, n)
	}

	if got := NormalizeForMatch("", ""); got != "" {
		t.Fatalf("expected empty key, got %q", got)
	}
}
