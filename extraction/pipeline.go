// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package extraction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/structor/ai"
)

const (
	// maxContentLength bounds the content sent to the completion service.
	maxContentLength = 15000
	// previewLength bounds the raw-response preview carried by fallback records.
	previewLength = 500
)

// Usage reports approximate token accounting for one extraction call.
// Token counts are a deliberate rough proxy (length/4): the completion
// service does not expose exact counts cheaply. ContentLength is the
// ORIGINAL content length, before truncation.
type Usage struct {
	InputTokens   int
	OutputTokens  int
	TotalTokens   int
	CostUSD       float64
	ContentLength int
}

// Pipeline turns unstructured content into typed JSON values through a
// completion service. Each call is independent; a Pipeline is safe for
// concurrent use.
type Pipeline struct {
	completer ai.Completer
	timeout   time.Duration
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithTimeout bounds the completion call. Default is 120s.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Pipeline) error {
		if timeout > 0 {
			p.timeout = timeout
		}
		return nil
	}
}

// NewPipeline creates a new extraction pipeline.
func NewPipeline(completer ai.Completer, opts ...Option) (*Pipeline, error) {
	if completer == nil {
		return nil, ErrCompleterRequired
	}

	p := &Pipeline{
		completer: completer,
		timeout:   120 * time.Second,
		logger:    slog.Default().With("component", "extraction"),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Extract sends content to the completion service and recovers a typed JSON
// value from the response.
//
// An unparsable response is absorbed into a schema-shaped fallback value and
// never surfaces as an error; only a failed completion call (network, auth,
// quota) returns one. The call is made exactly once, with no retry.
//
// Unknown content types are treated as ContentTypeGeneral.
func (p *Pipeline) Extract(ctx context.Context, content string, contentType ContentType) (any, *Usage, error) {
	if !contentType.Valid() {
		contentType = ContentTypeGeneral
	}

	originalLength := len(content)
	truncated := truncate(content, maxContentLength)
	if len(truncated) < originalLength {
		p.logger.Debug("content truncated for completion",
			"originalLength", originalLength,
			"sentLength", len(truncated))
	}

	prompt := systemInstruction + "\n\n" + contentType.instruction() + "\n\n" + truncated

	p.logger.Info("starting extraction", "contentType", contentType, "contentLength", originalLength)

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	response, err := p.completer.Complete(callCtx, prompt)
	if err != nil {
		p.logger.Error("completion call failed", "contentType", contentType, "err", err)
		return nil, nil, fmt.Errorf("completion service: %w", err)
	}

	value := recoverValue(response, contentType, previewLength)
	value = normalizeWhitespace(value)

	usage := &Usage{
		InputTokens:   len(truncated) / 4,
		OutputTokens:  len(response) / 4,
		TotalTokens:   (len(truncated) + len(response)) / 4,
		CostUSD:       0, // cost accounting is not available from the service
		ContentLength: originalLength,
	}

	p.logger.Info("extraction completed", "contentType", contentType, "totalTokens", usage.TotalTokens)

	return value, usage, nil
}

// truncate limits text to max characters, never splitting a rune.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
