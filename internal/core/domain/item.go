package domain

import (
	"encoding/json"
	"strconv"
)

// Item is one decoded JSON object from an API page or detail response.
// Numbers are expected to be decoded as json.Number so identifiers keep
// their original text.
type Item map[string]any

// Has reports whether key is present, null values included.
func (it Item) Has(key string) bool {
	_, ok := it[key]
	return ok
}

// String renders the value for key as text. Missing and null values
// render as the empty string.
func (it Item) String(key string) string {
	return Stringify(it[key])
}

// First returns the rendered value of the first key holding a truthy
// value, mirroring `a or b` fallbacks in the API payloads.
func (it Item) First(keys ...string) string {
	for _, k := range keys {
		if truthy(it[k]) {
			return it.String(k)
		}
	}
	return ""
}

// Object returns the nested object stored under key, or nil.
func (it Item) Object(key string) Item {
	switch v := it[key].(type) {
	case map[string]any:
		return Item(v)
	case Item:
		return v
	}
	return nil
}

// Stringify renders a decoded JSON value as CSV cell text.
// nil becomes "", strings are verbatim, numbers keep their literal form,
// and nested values are compact JSON.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}
