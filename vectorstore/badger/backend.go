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

package badger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/poiesic/structor/vectorstore"
)

// Backend implements vectorstore.Backend over an embedded BadgerDB.
type Backend struct {
	db     *badger.DB
	logger *slog.Logger
}

var _ vectorstore.Backend = (*Backend)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenBackend opens a BadgerDB database at the specified path.
// Creates the directory if it doesn't exist.
func OpenBackend(filePath string, inMemory bool) (*Backend, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Backend{
		db:     db,
		logger: slog.Default(),
	}, nil
}

// Close closes the BadgerDB database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// IsClosed returns true if the database is closed.
func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

// storedItem is the on-disk representation of a vectorstore.Item.
// The ID lives in the key.
type storedItem struct {
	Vector   []float32      `json:"vector"`
	Document string         `json:"document"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// CreateCollection writes the collection metadata record.
func (b *Backend) CreateCollection(ctx context.Context, name string, metadata map[string]any) error {
	if metadata == nil {
		metadata = map[string]any{}
	}
	value, err := json.Marshal(metadata)
	if err != nil {
		return err
	}

	return b.db.Update(func(tx *badger.Txn) error {
		key := makeCollectionKey(name)
		_, err := tx.Get(key)
		if err == nil {
			return fmt.Errorf("%w: %s", vectorstore.ErrCollectionExists, name)
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		return tx.Set(key, value)
	})
}

// DeleteCollection removes the metadata record and drops all item keys.
func (b *Backend) DeleteCollection(ctx context.Context, name string) (bool, error) {
	exists, err := b.HasCollection(ctx, name)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	if err := b.db.DropPrefix(makeItemPrefix(name)); err != nil {
		return false, err
	}
	err = b.db.Update(func(tx *badger.Txn) error {
		return tx.Delete(makeCollectionKey(name))
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// HasCollection reports whether the metadata record exists.
func (b *Backend) HasCollection(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := b.db.View(func(tx *badger.Txn) error {
		_, err := tx.Get(makeCollectionKey(name))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	})
	return exists, err
}

// Upsert writes items into an existing collection.
func (b *Backend) Upsert(ctx context.Context, name string, items []vectorstore.Item) error {
	exists, err := b.HasCollection(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", vectorstore.ErrCollectionNotFound, name)
	}

	batch := b.db.NewWriteBatch()
	defer batch.Cancel()

	for _, item := range items {
		value, err := json.Marshal(storedItem{
			Vector:   item.Vector,
			Document: item.Document,
			Metadata: item.Metadata,
		})
		if err != nil {
			return err
		}
		if err := batch.Set(makeItemKey(name, item.ID), value); err != nil {
			return err
		}
	}

	return batch.Flush()
}

// Query scans all items in the collection and returns the k nearest to
// vector by cosine distance, ascending. Vectors are unit length, so the
// distance is 1 minus the dot product.
func (b *Backend) Query(ctx context.Context, name string, vector []float32, k int) ([]vectorstore.Match, error) {
	exists, err := b.HasCollection(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", vectorstore.ErrCollectionNotFound, name)
	}

	var matches []vectorstore.Match
	err = b.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeItemPrefix(name)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var stored storedItem
			err := iter.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &stored)
			})
			if err != nil {
				return err
			}
			if len(stored.Vector) == 0 {
				continue
			}

			matches = append(matches, vectorstore.Match{
				Document: stored.Document,
				Metadata: stored.Metadata,
				Distance: 1 - float64(dotProduct(vector, stored.Vector)),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(matches, func(a, b vectorstore.Match) int {
		if a.Distance < b.Distance {
			return -1
		}
		if a.Distance > b.Distance {
			return 1
		}
		return 0
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
