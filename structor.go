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

// Package structor extracts structured data from business content and
// serves it back through per-tenant semantic search and a grounded
// assistant.
package structor

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/poiesic/structor/ai"
	"github.com/poiesic/structor/ai/openai"
	"github.com/poiesic/structor/assistant"
	"github.com/poiesic/structor/core"
	"github.com/poiesic/structor/extraction"
	"github.com/poiesic/structor/scrape"
	"github.com/poiesic/structor/vectorstore"
	"github.com/poiesic/structor/vectorstore/badger"
)

// Service wires the extraction pipeline, the vector store, the scraper,
// and the assistant behind one entry point.
type Service struct {
	backend   vectorstore.Backend
	store     *vectorstore.Store
	pipeline  *extraction.Pipeline
	scraper   *scrape.Scraper
	responder *assistant.Responder
	provider  ai.AIProvider
	logger    *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	backend  vectorstore.Backend
}

// WithAIConfig sets the configuration used to build the default provider.
func WithAIConfig(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithProvider supplies a pre-built AI provider instead of the default
// OpenAI-compatible one.
func WithProvider(provider ai.AIProvider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// WithBackend supplies a pre-built vector storage backend. The default is
// an embedded BadgerDB backend at the service's file path. The service
// takes ownership and closes the backend on Close.
func WithBackend(backend vectorstore.Backend) ServiceOption {
	return func(o *serviceOptions) {
		o.backend = backend
	}
}

// NewService creates a service storing vectors under filePath. filePath is
// ignored when WithBackend is given.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend := options.backend
	if backend == nil {
		var err error
		backend, err = badger.OpenBackend(filePath, false)
		if err != nil {
			return nil, err
		}
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	store, err := vectorstore.NewStore(backend)
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}

	pipeline, err := extraction.NewPipeline(provider.Completer())
	if err != nil {
		store.Release()
		provider.Close()
		backend.Close()
		return nil, err
	}

	scraper, err := scrape.NewScraper()
	if err != nil {
		store.Release()
		provider.Close()
		backend.Close()
		return nil, err
	}

	responder, err := assistant.NewResponder(store, provider.Completer())
	if err != nil {
		store.Release()
		provider.Close()
		backend.Close()
		return nil, err
	}

	return &Service{
		backend:   backend,
		store:     store,
		pipeline:  pipeline,
		scraper:   scraper,
		responder: responder,
		provider:  provider,
		logger:    slog.Default(),
	}, nil
}

// Close releases the service and its resources.
func (s *Service) Close() error {
	s.store.Release()
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing storage backend", "err", err)
		return err
	}
	return nil
}

// Store exposes the underlying vector store.
func (s *Service) Store() *vectorstore.Store {
	return s.store
}

// ContentTypes returns the supported extraction content types.
func (s *Service) ContentTypes() []extraction.ContentType {
	return extraction.ContentTypes()
}

// ScrapeWebsite fetches a page and extracts typed data from its text.
// Failures are reported inside the result envelope, not as an error.
func (s *Service) ScrapeWebsite(ctx context.Context, url string, contentType extraction.ContentType) *ProcessResult {
	result := &ProcessResult{
		Source:      SourceWebsite,
		URL:         url,
		ContentType: contentType,
		Timestamp:   time.Now().UTC(),
	}

	text, err := s.scraper.Fetch(ctx, url)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if strings.TrimSpace(text) == "" {
		result.Error = "page contained no extractable text"
		return result
	}

	s.extractInto(ctx, result, text, "")
	return result
}

// ProcessFile extracts typed data from an uploaded file. Plain text,
// markdown, and HTML files are supported.
func (s *Service) ProcessFile(ctx context.Context, filename string, content []byte, contentType extraction.ContentType) *ProcessResult {
	result := &ProcessResult{
		Source:      SourceFile,
		Filename:    filename,
		ContentType: contentType,
		Timestamp:   time.Now().UTC(),
	}

	ext := strings.ToLower(filepath.Ext(filename))
	var text string
	switch ext {
	case ".txt", ".md":
		text = string(content)
	case ".html", ".htm":
		extracted, err := scrape.ExtractText(strings.NewReader(string(content)))
		if err != nil {
			result.Error = fmt.Sprintf("parsing html: %v", err)
			return result
		}
		text = extracted
	default:
		result.Error = fmt.Sprintf("unsupported file type %q", ext)
		return result
	}

	if strings.TrimSpace(text) == "" {
		result.Error = "file contained no extractable text"
		return result
	}

	s.extractInto(ctx, result, text, ext)
	return result
}

// extractInto runs the extraction pipeline and fills the result envelope.
func (s *Service) extractInto(ctx context.Context, result *ProcessResult, text, fileType string) {
	data, usage, err := s.pipeline.Extract(ctx, text, result.ContentType)
	if err != nil {
		result.Error = err.Error()
		return
	}

	result.Data = data
	result.Success = true
	result.Stats = &ProcessStats{
		InputTokens:    usage.InputTokens,
		OutputTokens:   usage.OutputTokens,
		TotalTokens:    usage.TotalTokens,
		CostUSD:        usage.CostUSD,
		ContentLength:  usage.ContentLength,
		ItemsExtracted: countItems(data),
		FileType:       fileType,
	}
}

// Index stores extracted data as a tenant's searchable records, replacing
// whatever the tenant had before. Returns the number of records stored.
func (s *Service) Index(ctx context.Context, tenant string, data any) (int, error) {
	records := core.RecordsFrom(data)
	return s.store.Ingest(ctx, tenant, records)
}

// Query searches a tenant's stored records.
func (s *Service) Query(ctx context.Context, tenant, text string, k int) (*vectorstore.QueryResult, error) {
	return s.store.Query(ctx, tenant, text, k)
}

// Ask answers a customer question grounded in the tenant's stored data.
func (s *Service) Ask(ctx context.Context, tenant, message string) (string, error) {
	return s.responder.Respond(ctx, tenant, message)
}

// Erase removes all stored data for a tenant. Returns true if data existed.
func (s *Service) Erase(ctx context.Context, tenant string) (bool, error) {
	return s.store.Erase(ctx, tenant)
}

// countItems reports how many records a recovered value carries.
func countItems(data any) int {
	switch v := data.(type) {
	case []any:
		return len(v)
	case map[string]any:
		return 1
	default:
		return 0
	}
}
