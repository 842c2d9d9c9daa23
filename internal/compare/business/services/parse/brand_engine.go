package parse

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"gocompare_api/internal/compare/business/models"
)

// FallbackBrand is used when no brand can be resolved.
const FallbackBrand = "Diğer"

// KnownBrands is matched as a case-insensitive name prefix. Multi-word and
// longer names come before their shorter variants.
var KnownBrands = []string{
	"General Mobile", "Mercedes-Benz", "Land Rover",
	"Samsung", "Apple", "Xiaomi", "Redmi", "Huawei", "Honor", "Oppo", "Realme", "Vivo",
	"OnePlus", "Poco", "Nokia", "Motorola", "Google", "Tecno", "Infinix", "Reeder",
	"Nothing", "Sony", "TCL", "Omix", "Casper",
	"Lenovo", "HP", "Dell", "Asus", "Acer", "MSI", "Monster", "Microsoft", "Gigabyte",
	"Dyson", "Philips", "Arzum", "Fakir", "Karcher", "Kärcher", "Rowenta", "Tefal",
	"Roborock", "Dreame", "Ecovacs", "iRobot", "Bosch", "Siemens", "Arçelik", "Beko",
	"Vestel", "Grundig", "Sinbo",
	"Togg", "Toyota", "Renault", "Fiat", "Volkswagen", "BMW", "Mercedes", "Audi",
	"Ford", "Hyundai", "Honda", "Peugeot", "Opel", "Skoda", "Dacia", "Kia", "Nissan",
	"Citroen", "Volvo", "Tesla",
}

// Brand resolves the brand of an item: an explicit brand field longer than
// one character, a known-brand prefix of name, the first word of name, or
// FallbackBrand.
func Brand(item models.RawItem, name string) string {
	if b := explicitBrand(item); utf8.RuneCountInString(b) > 1 {
		return b
	}
	if b, ok := knownBrandPrefix(name); ok {
		return b
	}
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return FallbackBrand
}

func explicitBrand(item models.RawItem) string {
	for _, key := range []string{"brand", "brandName"} {
		switch v := item[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case map[string]interface{}:
			if s := strings.TrimSpace(models.RawItem(v).String("name", "title")); s != "" {
				return s
			}
		}
	}
	return ""
}

func knownBrandPrefix(name string) (string, bool) {
	folded := foldTurkish(strings.TrimSpace(name))
	for _, brand := range KnownBrands {
		fb := foldTurkish(brand)
		if !strings.HasPrefix(folded, fb) {
			continue
		}
		rest := folded[len(fb):]
		if r, _ := utf8.DecodeRuneInString(rest); rest == "" || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return brand, true
		}
	}
	return "", false
}

// IsKnownBrand reports whether brand carries information worth showing.
func IsKnownBrand(brand string) bool {
	b := strings.TrimSpace(brand)
	return b != "" && b != FallbackBrand
}
