package extraction

import "strings"

// normalizeWhitespace collapses runs of whitespace in every string value to
// single spaces, recursing through mappings and lists without changing their
// shape. Non-string scalars pass through untouched.
func normalizeWhitespace(value any) any {
	switch v := value.(type) {
	case string:
		return strings.Join(strings.Fields(v), " ")
	case map[string]any:
		cleaned := make(map[string]any, len(v))
		for key, entry := range v {
			cleaned[key] = normalizeWhitespace(entry)
		}
		return cleaned
	case []any:
		cleaned := make([]any, len(v))
		for i, entry := range v {
			cleaned[i] = normalizeWhitespace(entry)
		}
		return cleaned
	default:
		return value
	}
}
