package parse

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"gocompare_api/internal/compare/business/models"
	"gocompare_api/pkg/business/service"
)

var text = service.NewTextService()

// ProductURL returns the listing link or "".
func ProductURL(item models.RawItem) string {
	return strings.TrimSpace(item.String("url", "link", "productUrl"))
}

// Image returns the primary image link or "".
func Image(item models.RawItem) string {
	if s := item.String("imageUrl"); s != "" {
		return s
	}
	if images, ok := item["images"].([]interface{}); ok && len(images) > 0 {
		switch first := images[0].(type) {
		case string:
			if first != "" {
				return first
			}
		case map[string]interface{}:
			if s := models.RawItem(first).String("url", "src"); s != "" {
				return s
			}
		}
	}
	return item.String("image")
}

// Stars returns the average rating clamped to [0,5].
func Stars(item models.RawItem) float64 {
	if v, ok := nestedRating(item, "averageRating", "average"); ok {
		if f, ok := toFloat(v); ok {
			return clampStars(f)
		}
	}
	if v, ok := item.Value("rating", "starCount", "stars"); ok {
		if f, ok := toFloat(v); ok {
			return clampStars(f)
		}
	}
	return 0
}

// ReviewCount returns the number of reviews, 0 when unknown.
func ReviewCount(item models.RawItem) int {
	if v, ok := nestedRating(item, "totalCount", "count"); ok {
		if n, ok := toInt(v); ok {
			return n
		}
	}
	if v, ok := item.Value("reviewCount", "commentCount"); ok {
		if n, ok := toInt(v); ok {
			return n
		}
	}
	return 0
}

// SourceItemID returns the marketplace id of the item or "".
func SourceItemID(item models.RawItem) string {
	v, ok := item.Value("id", "productId", "sku", "itemId")
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case json.Number:
		return id.String()
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	}
	return ""
}

// Description flattens description and attributes into plain text.
func Description(item models.RawItem) string {
	var parts []string
	if s := item.String("description"); s != "" {
		parts = append(parts, s)
	}
	switch attrs := item["attributes"].(type) {
	case string:
		parts = append(parts, attrs)
	case []interface{}:
		for _, a := range attrs {
			switch attr := a.(type) {
			case string:
				parts = append(parts, attr)
			case map[string]interface{}:
				kv := models.RawItem(attr)
				parts = append(parts, strings.TrimSpace(kv.String("key", "name")+" "+scalar(kv["value"])))
			}
		}
	case map[string]interface{}:
		keys := make([]string, 0, len(attrs))
		for k := range attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			parts = append(parts, k+" "+scalar(attrs[k]))
		}
	}
	return text.ClearDescription(strings.Join(parts, " "))
}

func nestedRating(item models.RawItem, keys ...string) (interface{}, bool) {
	for _, obj := range []string{"ratingScore", "rating"} {
		if nested, ok := item.Object(obj); ok {
			if v, ok := nested.Value(keys...); ok {
				return v, true
			}
		}
	}
	return nil, false
}

func scalar(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	}
	return ""
}

func toFloat(v interface{}) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		var err error
		if f, err = n.Float64(); err != nil {
			return 0, false
		}
	case string:
		f = leadingFloat(strings.Replace(strings.TrimSpace(n), ",", ".", 1))
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toInt(v interface{}) (int, bool) {
	if s, ok := v.(string); ok {
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, s)
		n, err := strconv.Atoi(digits)
		return n, err == nil
	}
	f, ok := toFloat(v)
	if !ok || f < 0 {
		return 0, false
	}
	return int(f), true
}

func clampStars(f float64) float64 {
	return math.Max(0, math.Min(5, f))
}
