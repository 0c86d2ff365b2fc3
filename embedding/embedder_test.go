package embedding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func l2norm(vec []float32) float64 {
	var sum float64
	for _, x := range vec {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

func TestEmbed_Dimension(t *testing.T) {
	v := NewVectorizer()

	texts := []string{
		"product price description",
		"completely unrelated words here",
		`{"name":"Brownie","price":"120"}`,
		"a b c data",
	}

	for _, text := range texts {
		vec := v.Embed(text)
		require.NotNil(t, vec, "text %q should be embeddable", text)
		assert.Len(t, vec, Dimension)
		assert.InDelta(t, 1.0, l2norm(vec), 1e-6, "vector for %q must be unit length", text)
	}
}

func TestEmbed_NotEmbeddable(t *testing.T) {
	v := NewVectorizer()

	assert.Nil(t, v.Embed(""))
	assert.Nil(t, v.Embed("   \n\t "))
	assert.Nil(t, v.Embed("!!! ... ???"))
	// Single-character tokens are below the tokenizer's minimum length.
	assert.Nil(t, v.Embed("a b c"))
}

func TestEmbed_VocabularyTerms(t *testing.T) {
	v := NewVectorizer()

	vec := v.Embed("price price name")
	require.NotNil(t, vec)

	priceIdx := indexOf(t, "price")
	nameIdx := indexOf(t, "name")

	assert.Greater(t, vec[priceIdx], vec[nameIdx], "repeated term must carry more weight")

	for i, x := range vec {
		if i != priceIdx && i != nameIdx {
			assert.Zero(t, x, "dimension %d should be untouched", i)
		}
	}
}

func TestEmbed_Deterministic(t *testing.T) {
	v := NewVectorizer()

	first := v.Embed("chocolate brownie with name and price")
	second := v.Embed("chocolate brownie with name and price")
	assert.Equal(t, first, second)
}

func TestEmbed_OutOfVocabularyFallback(t *testing.T) {
	v := NewVectorizer()

	// No vocabulary term appears, but the text still tokenizes; the hashed
	// fallback must keep it embeddable.
	vec := v.Embed("brownie")
	require.NotNil(t, vec)
	assert.Len(t, vec, Dimension)
	assert.InDelta(t, 1.0, l2norm(vec), 1e-6)

	again := v.Embed("brownie")
	assert.Equal(t, vec, again)
}

func TestEmbed_CaseInsensitive(t *testing.T) {
	v := NewVectorizer()

	assert.Equal(t, v.Embed("PRICE Name"), v.Embed("price name"))
}

func TestVocabulary_Immutable(t *testing.T) {
	assert.Len(t, Vocabulary, Dimension)

	seen := make(map[string]bool, Dimension)
	for _, term := range Vocabulary {
		assert.False(t, seen[term], "duplicate vocabulary term %q", term)
		seen[term] = true
	}
}

func indexOf(t *testing.T, term string) int {
	t.Helper()
	for i, v := range Vocabulary {
		if v == term {
			return i
		}
	}
	t.Fatalf("term %q not in vocabulary", term)
	return -1
}
