package models

// RawItem is one untyped record of a marketplace dataset. Any field may be
// absent, wrongly typed or malformed.
type RawItem map[string]interface{}

// String returns the first non-empty string stored under one of keys.
func (r RawItem) String(keys ...string) string {
	for _, k := range keys {
		if s, ok := r[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Value returns the first present, non-nil value stored under one of keys.
func (r RawItem) Value(keys ...string) (interface{}, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Object returns the nested object stored under key.
func (r RawItem) Object(key string) (RawItem, bool) {
	switch v := r[key].(type) {
	case map[string]interface{}:
		return RawItem(v), true
	case RawItem:
		return v, true
	}
	return nil, false
}
