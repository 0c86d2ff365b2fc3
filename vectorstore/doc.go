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

// Package vectorstore provides per-tenant vector collections over a
// pluggable storage backend.
//
// Each tenant maps to exactly one collection named tenant_{id}_data.
// Ingestion is destructive replacement: the tenant's existing collection is
// dropped and rebuilt from the incoming records, so repeated ingestion of
// the same data never accumulates duplicates. Query results always come
// back ordered by ascending distance, and a missing collection is reported
// distinctly from an empty result set.
//
// Backends live in subpackages: badger (embedded) and qdrant (remote).
package vectorstore
