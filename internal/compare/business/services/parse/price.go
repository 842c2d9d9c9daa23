package parse

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gocompare_api/internal/compare/business/models"
)

// PriceFields lists the raw price keys in the order they are tried.
// Discount-aware fields come first because they hold the amount a buyer pays.
var PriceFields = []string{"discountedPrice", "salePrice", "price", "listPrice", "originalPrice"}

var (
	priceJunk    = regexp.MustCompile(`[^\d.,]`)
	floatPrefix  = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)`)
	nestedAmount = []string{"value", "amount", "sellingPrice", "discountedPrice"}
)

// ParsePrice converts a raw price value into a positive amount.
// Strings may use "." for thousands and "," for decimals ("1.234,56").
func ParsePrice(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return positive(v)
	case float32:
		return positive(float64(v))
	case int:
		return positive(float64(v))
	case int64:
		return positive(float64(v))
	case int32:
		return positive(float64(v))
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return positive(f)
	case string:
		return parsePriceString(v)
	}
	return 0, false
}

func parsePriceString(s string) (float64, bool) {
	cleaned := priceJunk.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0, false
	}

	if strings.Contains(cleaned, ",") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
		return positive(leadingFloat(cleaned))
	}

	parts := strings.Split(cleaned, ".")
	if len(parts[len(parts)-1]) == 3 {
		digits := strings.ReplaceAll(cleaned, ".", "")
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return 0, false
		}
		return positive(float64(n))
	}
	return positive(leadingFloat(cleaned))
}

// leadingFloat parses the longest numeric prefix of s, NaN when there is none.
func leadingFloat(s string) float64 {
	m := floatPrefix.FindString(s)
	if m == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func positive(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, false
	}
	return f, true
}

// BestPrice returns the first parseable price in PriceFields order.
// A field may also hold an object such as {"value": 1299.9}.
func BestPrice(item models.RawItem) (float64, bool) {
	for _, key := range PriceFields {
		raw, ok := item[key]
		if !ok || raw == nil {
			continue
		}
		if obj, isObj := raw.(map[string]interface{}); isObj {
			raw, ok = models.RawItem(obj).Value(nestedAmount...)
			if !ok {
				continue
			}
		}
		if price, ok := ParsePrice(raw); ok {
			return price, true
		}
	}
	return 0, false
}
