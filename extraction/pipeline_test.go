package extraction

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/structor/ai/mock"
)

func TestNewPipeline(t *testing.T) {
	t.Run("requires a completer", func(t *testing.T) {
		p, err := NewPipeline(nil)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, ErrCompleterRequired)
	})

	t.Run("accepts options", func(t *testing.T) {
		p, err := NewPipeline(mock.NewMockCompleter(), WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, p)
	})
}

func TestPipeline_Extract(t *testing.T) {
	t.Run("faq extraction end to end", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.Response = "Here you go:\n```json\n[{\"question\":\"Do you deliver?\",\"answer\":\"Yes, citywide.\"}]\n```"

		p, err := NewPipeline(completer)
		require.NoError(t, err)

		value, usage, err := p.Extract(context.Background(), "We deliver across the city.", ContentTypeFAQ)
		require.NoError(t, err)
		require.NotNil(t, usage)

		expected := []any{map[string]any{
			"question": "Do you deliver?",
			"answer":   "Yes, citywide.",
		}}
		assert.Equal(t, expected, value)
		assert.Equal(t, 1, completer.CallCount())
	})

	t.Run("prompt carries instruction and content", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		p, err := NewPipeline(completer)
		require.NoError(t, err)

		_, _, err = p.Extract(context.Background(), "Brownies cost 120.", ContentTypeProducts)
		require.NoError(t, err)

		prompt := completer.LastPrompt()
		assert.Contains(t, prompt, "Brownies cost 120.")
		assert.Contains(t, prompt, "JSON")
	})

	t.Run("unknown content type falls back to general", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.Response = "{\"content\": \"hello\"}"

		p, err := NewPipeline(completer)
		require.NoError(t, err)

		value, _, err := p.Extract(context.Background(), "hello", ContentType("bogus"))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"content": "hello"}, value)
	})

	t.Run("long content is truncated, usage reports original length", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		p, err := NewPipeline(completer)
		require.NoError(t, err)

		content := strings.Repeat("a", maxContentLength+5000)
		_, usage, err := p.Extract(context.Background(), content, ContentTypeGeneral)
		require.NoError(t, err)

		assert.Equal(t, len(content), usage.ContentLength)
		assert.Equal(t, maxContentLength/4, usage.InputTokens)
		assert.Equal(t, maxContentLength, strings.Count(completer.LastPrompt(), "a"))
	})

	t.Run("usage arithmetic", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.Response = strings.Repeat("r", 40)

		p, err := NewPipeline(completer)
		require.NoError(t, err)

		content := strings.Repeat("c", 200)
		_, usage, err := p.Extract(context.Background(), content, ContentTypeGeneral)
		require.NoError(t, err)

		assert.Equal(t, 50, usage.InputTokens)
		assert.Equal(t, 10, usage.OutputTokens)
		assert.Equal(t, 60, usage.TotalTokens)
		assert.Equal(t, float64(0), usage.CostUSD)
	})

	t.Run("whitespace is normalized in recovered values", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.Response = "```json\n{\"companyName\": \"Acme   \\n Corp\"}\n```"

		p, err := NewPipeline(completer)
		require.NoError(t, err)

		value, _, err := p.Extract(context.Background(), "about us", ContentTypeAbout)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"companyName": "Acme Corp"}, value)
	})

	t.Run("unparsable response yields fallback, not error", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.Response = "Sorry, I cannot help with that."

		p, err := NewPipeline(completer)
		require.NoError(t, err)

		value, usage, err := p.Extract(context.Background(), "some content", ContentTypeServices)
		require.NoError(t, err)
		require.NotNil(t, usage)

		list, ok := value.([]any)
		require.True(t, ok)
		require.Len(t, list, 1)
		record := list[0].(map[string]any)
		assert.Equal(t, "Extracted Service", record["name"])
	})

	t.Run("completer failure surfaces as error", func(t *testing.T) {
		wantErr := errors.New("connection refused")
		completer := mock.NewMockCompleter()
		completer.CompleteFunc = func(ctx context.Context, prompt string) (string, error) {
			return "", wantErr
		}

		p, err := NewPipeline(completer)
		require.NoError(t, err)

		value, usage, err := p.Extract(context.Background(), "content", ContentTypeProducts)
		assert.Nil(t, value)
		assert.Nil(t, usage)
		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, 1, completer.CallCount())
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abcd", 2))
	assert.Equal(t, "hél", truncate("héllo", 3))
}
