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

// Package badger implements the vectorstore.Backend interface using
// BadgerDB as the underlying embedded key-value store.
//
// Collections are a metadata record plus a key range of JSON-encoded
// items. Queries scan the collection's key range and rank by cosine
// distance; with 25-dimensional vectors and per-tenant collections the
// scan is cheap enough that no index structure is kept.
package badger
