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

package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/structor/ai"
	"github.com/poiesic/structor/vectorstore"
)

// defaultTopK is how many stored items ground each reply.
const defaultTopK = 10

// noDataReply is returned when a tenant has no stored data to answer from.
const noDataReply = "I don't have any information about this business yet. " +
	"Please add the business data first, and I'll be happy to help with your questions!"

const promptTemplate = `You are a friendly and professional customer service assistant for a business.
Answer the customer's question using ONLY the business data below.
If the data does not contain the answer, say so politely and suggest contacting the business directly.
Keep the answer concise and helpful.

Business data:
%s

Customer question: %s

Answer:`

// Responder answers customer questions grounded in a tenant's stored data.
type Responder struct {
	store     *vectorstore.Store
	completer ai.Completer
	topK      int
	timeout   time.Duration
	logger    *slog.Logger
}

// Option configures a Responder.
type Option func(*Responder) error

// WithTopK sets how many stored items are retrieved per question.
// Default is 10.
func WithTopK(k int) Option {
	return func(r *Responder) error {
		if k > 0 {
			r.topK = k
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Responder) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithTimeout bounds the completion call. Default is 60s.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Responder) error {
		if timeout > 0 {
			r.timeout = timeout
		}
		return nil
	}
}

// NewResponder creates a responder over the given store and completer.
func NewResponder(store *vectorstore.Store, completer ai.Completer, opts ...Option) (*Responder, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if completer == nil {
		return nil, ErrCompleterRequired
	}

	r := &Responder{
		store:     store,
		completer: completer,
		topK:      defaultTopK,
		timeout:   60 * time.Second,
		logger:    slog.Default().With("component", "assistant"),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Respond answers a customer message for a tenant. A tenant with no stored
// data gets a canned reply without a completion call.
func (r *Responder) Respond(ctx context.Context, tenant, message string) (string, error) {
	if tenant == "" {
		return "", vectorstore.ErrTenantRequired
	}
	if strings.TrimSpace(message) == "" {
		return "", ErrMessageRequired
	}

	result, err := r.store.Query(ctx, tenant, message, r.topK)
	if err != nil {
		return "", fmt.Errorf("retrieving tenant data: %w", err)
	}
	if !result.TenantFound || len(result.Matches) == 0 {
		r.logger.Info("no data for tenant, returning canned reply", "tenant", tenant)
		return noDataReply, nil
	}

	prompt := fmt.Sprintf(promptTemplate, formatMatches(result.Matches), message)

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	reply, err := r.completer.Complete(callCtx, prompt)
	if err != nil {
		return "", fmt.Errorf("completion service: %w", err)
	}

	r.logger.Info("reply generated", "tenant", tenant, "matches", len(result.Matches))
	return strings.TrimSpace(reply), nil
}

// formatMatches renders retrieved items as readable blocks. Documents are
// canonical JSON; pretty-print them when they parse, pass them through raw
// when they don't.
func formatMatches(matches []vectorstore.Match) string {
	var b strings.Builder
	for i, match := range matches {
		fmt.Fprintf(&b, "Item %d:\n", i+1)

		var value any
		if err := json.Unmarshal([]byte(match.Document), &value); err == nil {
			if pretty, err := json.MarshalIndent(value, "", "  "); err == nil {
				b.Write(pretty)
			} else {
				b.WriteString(match.Document)
			}
		} else {
			b.WriteString(match.Document)
		}
		b.WriteString("\n\n")
	}
	return strings.TrimSpace(b.String())
}
