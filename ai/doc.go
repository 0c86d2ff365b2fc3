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


// Package ai provides abstractions for the AI services used in structor.
//
// This package defines interfaces for the text-completion service that powers
// structured extraction and assistant replies. It follows the dependency
// inversion principle, allowing the core business logic to depend on
// abstractions rather than concrete implementations.
//
// # Implementation Packages
//
//   - ai/openai: production implementation for OpenAI-compatible APIs
//   - ai/googleai: production implementation for Google Gemini models
//   - ai/mock: test doubles for unit testing without external dependencies
//
// Public constructors (openai.NewProvider, googleai.NewProvider) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// concrete implementations. Test utility constructors (mock.NewMockCompleter)
// return CONCRETE types to enable behavior injection and call assertions.
package ai
