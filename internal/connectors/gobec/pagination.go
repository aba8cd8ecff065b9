package gobec

import "github.com/custodia-labs/tramites/internal/core/domain"

// resultsKey holds the item list when a page is wrapped in an object.
const resultsKey = "results"

// ExtractItems returns the items of a listing page. The page is either a
// bare array or an object with a "results" array. Any other shape, and any
// array element that is not an object, yields nothing.
func ExtractItems(body any) []domain.Item {
	var raw []any
	switch v := body.(type) {
	case []any:
		raw = v
	case map[string]any:
		list, ok := v[resultsKey].([]any)
		if !ok {
			return nil
		}
		raw = list
	default:
		return nil
	}

	items := make([]domain.Item, 0, len(raw))
	for _, el := range raw {
		if obj, ok := el.(map[string]any); ok {
			items = append(items, domain.Item(obj))
		}
	}
	return items
}
