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

import "context"

// Item is a single stored vector with its source document and metadata.
type Item struct {
	ID       string
	Vector   []float32
	Document string
	Metadata map[string]any
}

// Match is a single query result. Distance is a dissimilarity measure:
// smaller means closer.
type Match struct {
	Document string
	Metadata map[string]any
	Distance float64
}

// QueryResult distinguishes "tenant has no collection" from "collection
// exists but nothing matched". TenantFound is false only in the former case.
type QueryResult struct {
	TenantFound bool
	Matches     []Match
}

// Backend provides collection-scoped vector storage operations.
// Implementations must be safe for concurrent use.
type Backend interface {
	// CreateCollection creates an empty collection. Creating a collection
	// that already exists is an error.
	CreateCollection(ctx context.Context, name string, metadata map[string]any) error

	// DeleteCollection removes a collection and all of its items.
	// Returns false (and no error) if the collection does not exist.
	DeleteCollection(ctx context.Context, name string) (bool, error)

	// HasCollection reports whether a collection exists.
	HasCollection(ctx context.Context, name string) (bool, error)

	// Upsert writes items into an existing collection, replacing items
	// with matching IDs. Returns ErrCollectionNotFound if the collection
	// does not exist.
	Upsert(ctx context.Context, name string, items []Item) error

	// Query returns up to k items nearest to vector, ordered by ascending
	// distance. Returns ErrCollectionNotFound if the collection does not
	// exist.
	Query(ctx context.Context, name string, vector []float32, k int) ([]Match, error)

	// Close closes the backend and releases resources.
	Close() error
}
