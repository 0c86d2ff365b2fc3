package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverValue_FencedBlock(t *testing.T) {
	t.Run("json tagged fence", func(t *testing.T) {
		response := "Here you go:\n```json\n[{\"question\":\"Do you deliver?\",\"answer\":\"Yes, citywide.\"}]\n```"

		value := recoverValue(response, ContentTypeFAQ, previewLength)

		expected := []any{map[string]any{
			"question": "Do you deliver?",
			"answer":   "Yes, citywide.",
		}}
		assert.Equal(t, expected, value)
	})

	t.Run("untagged fence", func(t *testing.T) {
		response := "```\n{\"email\": \"hi@example.com\"}\n```"

		value := recoverValue(response, ContentTypeContact, previewLength)

		assert.Equal(t, map[string]any{"email": "hi@example.com"}, value)
	})

	t.Run("first parsable fence wins", func(t *testing.T) {
		response := "```json\nnot json at all\n```\nthen\n```json\n{\"name\": \"second\"}\n```"

		value := recoverValue(response, ContentTypeGeneral, previewLength)

		assert.Equal(t, map[string]any{"name": "second"}, value)
	})
}

func TestRecoverValue_BareSpans(t *testing.T) {
	t.Run("array span", func(t *testing.T) {
		response := "The products are: [{\"name\": \"Brownie\", \"price\": \"120\"}] as requested."

		value := recoverValue(response, ContentTypeProducts, previewLength)

		expected := []any{map[string]any{"name": "Brownie", "price": "120"}}
		assert.Equal(t, expected, value)
	})

	t.Run("object span", func(t *testing.T) {
		response := "Result: {\"companyName\": \"Acme\"} done."

		value := recoverValue(response, ContentTypeAbout, previewLength)

		assert.Equal(t, map[string]any{"companyName": "Acme"}, value)
	})

	t.Run("multiline array span", func(t *testing.T) {
		response := "Sure:\n[\n  {\"name\": \"A\"},\n  {\"name\": \"B\"}\n]\nthanks"

		value := recoverValue(response, ContentTypeProducts, previewLength)

		list, ok := value.([]any)
		require.True(t, ok)
		assert.Len(t, list, 2)
	})
}

// A fenced block that fails to parse must fall through to the bare-array
// scan, not abort recovery.
func TestRecoverValue_ChainOrdering(t *testing.T) {
	response := "```json\nthis is not valid\n```\nHowever the data is [\"x\", \"y\"] if you squint."

	value := recoverValue(response, ContentTypeGeneral, previewLength)

	assert.Equal(t, []any{"x", "y"}, value)
}

func TestRecoverValue_FallbackSynthesis(t *testing.T) {
	t.Run("no json-like structure at all", func(t *testing.T) {
		response := "I could not find anything useful in the provided content."

		value := recoverValue(response, ContentTypeProducts, previewLength)

		list, ok := value.([]any)
		require.True(t, ok)
		require.Len(t, list, 1)

		record, ok := list[0].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Extracted Product", record["name"])
		assert.Equal(t, response, record["description"])
		for _, field := range ContentTypeProducts.RequiredFields() {
			assert.Contains(t, record, field)
		}
	})

	t.Run("object-shaped fallback", func(t *testing.T) {
		value := recoverValue("plain prose", ContentTypeContact, previewLength)

		record, ok := value.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "plain prose", record["info"])
		assert.Equal(t, "", record["email"])
	})

	t.Run("long responses are previewed", func(t *testing.T) {
		response := ""
		for range 600 {
			response += "x"
		}

		value := recoverValue(response, ContentTypeGeneral, previewLength)

		record, ok := value.(map[string]any)
		require.True(t, ok)
		content, ok := record["content"].(string)
		require.True(t, ok)
		assert.Len(t, content, previewLength+3) // preview plus ellipsis
	})
}

func TestRecoverValue_EveryTypeIsStructurallyValid(t *testing.T) {
	for _, ct := range ContentTypes() {
		t.Run(string(ct), func(t *testing.T) {
			value := recoverValue("nothing to see here", ct, previewLength)
			require.NotNil(t, value)

			switch v := value.(type) {
			case []any:
				require.NotEmpty(t, v)
				_, ok := v[0].(map[string]any)
				assert.True(t, ok)
			case map[string]any:
				assert.NotEmpty(t, v)
			default:
				t.Fatalf("unexpected fallback shape %T", value)
			}
		})
	}
}
