package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWhitespace(t *testing.T) {
	t.Run("collapses runs in strings", func(t *testing.T) {
		got := normalizeWhitespace("a  lot \n\t of   space")
		assert.Equal(t, "a lot of space", got)
	})

	t.Run("recurses through mappings", func(t *testing.T) {
		got := normalizeWhitespace(map[string]any{
			"name":  "Overload   Brownie",
			"price": "120",
			"specs": map[string]any{"weight": "250  g"},
		})
		assert.Equal(t, map[string]any{
			"name":  "Overload Brownie",
			"price": "120",
			"specs": map[string]any{"weight": "250 g"},
		}, got)
	})

	t.Run("recurses through lists", func(t *testing.T) {
		got := normalizeWhitespace([]any{"a  b", []any{"c\nd"}})
		assert.Equal(t, []any{"a b", []any{"c d"}}, got)
	})

	t.Run("leaves non-strings untouched", func(t *testing.T) {
		assert.Equal(t, 120.0, normalizeWhitespace(120.0))
		assert.Equal(t, true, normalizeWhitespace(true))
		assert.Nil(t, normalizeWhitespace(nil))
	})

	t.Run("empty string stays empty", func(t *testing.T) {
		assert.Equal(t, "", normalizeWhitespace("   "))
	})
}
