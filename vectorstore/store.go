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

package vectorstore

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/structor/core"
	"github.com/poiesic/structor/embedding"
)

// CollectionName returns the backend collection name for a tenant.
func CollectionName(tenant string) string {
	return "tenant_" + tenant + "_data"
}

// Store manages per-tenant vector collections over a Backend.
// Each tenant owns exactly one collection; ingestion replaces it wholesale.
// A Store is safe for concurrent use.
type Store struct {
	backend    Backend
	vectorizer *embedding.Vectorizer
	pool       *ants.Pool
	timeout    time.Duration
	logger     *slog.Logger

	mu      sync.Mutex
	tenants map[string]*sync.Mutex
}

// Option configures a Store.
type Option func(*Store) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Store) error {
		if size < 1 {
			size = 1
		}
		if s.pool != nil {
			s.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// WithTimeout bounds each backend operation. Default is 30s.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Store) error {
		if timeout > 0 {
			s.timeout = timeout
		}
		return nil
	}
}

// NewStore creates a store over the given backend.
func NewStore(backend Backend, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, ErrBackendRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Store{
		backend:    backend,
		vectorizer: embedding.NewVectorizer(),
		pool:       pool,
		timeout:    30 * time.Second,
		logger:     slog.Default().With("component", "vectorstore"),
		tenants:    make(map[string]*sync.Mutex),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.Release()
			return nil, err
		}
	}

	return s, nil
}

// tenantLock returns the mutex serializing writes for a tenant.
func (s *Store) tenantLock(tenant string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.tenants[tenant]
	if !ok {
		lock = &sync.Mutex{}
		s.tenants[tenant] = lock
	}
	return lock
}

// Ingest replaces a tenant's collection with the given records.
//
// Any existing collection for the tenant is deleted first. Records whose
// canonical text cannot be embedded are skipped with a warning. If no record
// survives embedding, the tenant is left with no collection at all and the
// returned count is 0.
//
// Ingesting the same records twice leaves the collection with one item per
// record, never duplicates: item IDs derive from document content and tenant.
func (s *Store) Ingest(ctx context.Context, tenant string, records []core.Record) (int, error) {
	if tenant == "" {
		return 0, ErrTenantRequired
	}

	lock := s.tenantLock(tenant)
	lock.Lock()
	defer lock.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	items := s.buildItems(tenant, records)
	name := CollectionName(tenant)

	if _, err := s.backend.DeleteCollection(ctx, name); err != nil {
		s.logger.Error("ingest failed deleting prior collection", "tenant", tenant, "err", err)
		return 0, fmt.Errorf("deleting collection %s: %w", name, err)
	}

	if len(items) == 0 {
		s.logger.Info("ingest produced no items", "tenant", tenant, "records", len(records))
		return 0, nil
	}

	metadata := map[string]any{
		"tenant":     tenant,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.backend.CreateCollection(ctx, name, metadata); err != nil {
		s.logger.Error("ingest failed creating collection", "tenant", tenant, "err", err)
		return 0, fmt.Errorf("creating collection %s: %w", name, err)
	}
	if err := s.backend.Upsert(ctx, name, items); err != nil {
		s.logger.Error("ingest failed writing items", "tenant", tenant, "err", err)
		return 0, fmt.Errorf("upserting into %s: %w", name, err)
	}

	s.logger.Info("ingest completed", "tenant", tenant, "items", len(items), "skipped", len(records)-len(items))
	return len(items), nil
}

// buildItems embeds and serializes records concurrently, preserving record
// order in the result. Records that do not embed are dropped.
func (s *Store) buildItems(tenant string, records []core.Record) []Item {
	built := make([]*Item, len(records))
	storedAt := time.Now().UTC().Format(time.RFC3339)

	var wg sync.WaitGroup
	for i, record := range records {
		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			built[i] = s.buildItem(tenant, record, storedAt)
		})
		if err != nil {
			// Pool rejected the task; embed on the calling goroutine.
			built[i] = s.buildItem(tenant, record, storedAt)
			wg.Done()
		}
	}
	wg.Wait()

	items := make([]Item, 0, len(records))
	for _, item := range built {
		if item != nil {
			items = append(items, *item)
		}
	}
	return items
}

func (s *Store) buildItem(tenant string, record core.Record, storedAt string) *Item {
	document := record.CanonicalText()
	vector := s.vectorizer.Embed(document)
	if vector == nil {
		s.logger.Warn("record not embeddable, skipping", "tenant", tenant, "document", document)
		return nil
	}

	metadata := make(map[string]any, len(record)+2)
	for k, v := range record {
		metadata[k] = v
	}
	metadata["tenant"] = tenant
	metadata["stored_at"] = storedAt

	id := core.IDFromContent(document + "|" + tenant)
	return &Item{
		ID:       strconv.FormatUint(uint64(id), 10),
		Vector:   vector,
		Document: document,
		Metadata: metadata,
	}
}

// Query embeds text and returns up to k nearest items from the tenant's
// collection, ordered by ascending distance.
//
// A tenant with no collection yields TenantFound=false; a collection with
// no matching items yields TenantFound=true and an empty match list. Query
// text that cannot be embedded matches nothing.
func (s *Store) Query(ctx context.Context, tenant, text string, k int) (*QueryResult, error) {
	if tenant == "" {
		return nil, ErrTenantRequired
	}
	if k < 1 {
		k = 1
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	name := CollectionName(tenant)
	exists, err := s.backend.HasCollection(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("checking collection %s: %w", name, err)
	}
	if !exists {
		return &QueryResult{TenantFound: false}, nil
	}

	vector := s.vectorizer.Embed(text)
	if vector == nil {
		s.logger.Debug("query text not embeddable", "tenant", tenant)
		return &QueryResult{TenantFound: true}, nil
	}

	matches, err := s.backend.Query(ctx, name, vector, k)
	if err != nil {
		s.logger.Error("query failed", "tenant", tenant, "err", err)
		return nil, fmt.Errorf("querying collection %s: %w", name, err)
	}

	// Backends are expected to order results, but the contract here is
	// ascending distance regardless of backend.
	slices.SortStableFunc(matches, func(a, b Match) int {
		if a.Distance < b.Distance {
			return -1
		}
		if a.Distance > b.Distance {
			return 1
		}
		return 0
	})

	return &QueryResult{TenantFound: true, Matches: matches}, nil
}

// Erase removes a tenant's collection. Returns true if a collection was
// removed, false if the tenant had none. An unknown tenant is not an error.
func (s *Store) Erase(ctx context.Context, tenant string) (bool, error) {
	if tenant == "" {
		return false, ErrTenantRequired
	}

	lock := s.tenantLock(tenant)
	lock.Lock()
	defer lock.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	deleted, err := s.backend.DeleteCollection(ctx, CollectionName(tenant))
	if err != nil {
		s.logger.Error("erase failed", "tenant", tenant, "err", err)
		return false, err
	}
	if deleted {
		s.logger.Info("tenant data erased", "tenant", tenant)
	}
	return deleted, nil
}

// HasTenant reports whether a tenant currently has a collection.
func (s *Store) HasTenant(ctx context.Context, tenant string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.backend.HasCollection(ctx, CollectionName(tenant))
}

// Release releases the worker pool. The store should not be used after
// calling Release. The backend is not closed; the caller owns it.
func (s *Store) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}
