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


package googleai

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/structor/ai"
	"github.com/tmc/langchaingo/llms/googleai"
)

// Provider implements ai.AIProvider backed by Google Gemini models.
type Provider struct {
	config    *ai.Config
	completer *Completer
	logger    *slog.Logger
}

// NewProvider creates a new AI provider for Gemini models.
// The config must carry an APIKey; CompletionHost is ignored because the
// Gemini SDK manages its own endpoints.
//
// Returns ai.AIProvider interface to enforce abstraction.
func NewProvider(ctx context.Context, config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.APIKey == "" {
		return nil, errors.New("googleai: APIKey is required")
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(config.APIKey),
		googleai.WithDefaultModel(config.CompletionModel),
	)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config: config,
		completer: &Completer{
			client: client,
			logger: slog.Default().With("component", "googleai-completer"),
		},
		logger: slog.Default().With("component", "googleai-provider"),
	}, nil
}

// Completer returns the text-completion service.
func (p *Provider) Completer() ai.Completer {
	return p.completer
}

// Close releases resources held by the provider.
func (p *Provider) Close() error {
	p.logger.Debug("closing Google AI provider")
	return nil
}
