package googleai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
)

// Completer implements ai.Completer using a Gemini chat model.
type Completer struct {
	client llms.Model
	logger *slog.Logger
}

// Complete sends the prompt as a single human message and returns the raw
// text of the first candidate.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		c.logger.Error("failed to generate content", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		c.logger.Debug("no candidates returned from model")
		return "", fmt.Errorf("completion returned no candidates")
	}

	return response.Choices[0].Content, nil
}
