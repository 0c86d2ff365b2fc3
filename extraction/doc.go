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


// Package extraction turns unstructured business content into typed JSON
// records using a text-completion service.
//
// The pipeline builds a content-type-specific instruction, sends the
// (bounded) content once, and recovers a JSON value from the free-text
// response through a four-state chain: fenced code blocks first, then the
// first bare array span, then the first bare object span, and finally
// synthesis of a schema-shaped fallback record carrying a preview of the
// response. The fallback is a designed terminal state, not an error path:
// extraction only fails when the completion call itself fails.
//
// All string values in the recovered structure have whitespace runs
// collapsed to single spaces before the value is returned.
package extraction
