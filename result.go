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

package structor

import (
	"time"

	"github.com/poiesic/structor/extraction"
)

// Processing sources.
const (
	SourceWebsite = "website"
	SourceFile    = "file"
)

// ProcessResult is the envelope returned by content processing operations.
// Failures are carried in Error with Success false; the envelope itself is
// always returned.
type ProcessResult struct {
	Source      string                 `json:"source"`
	URL         string                 `json:"url,omitempty"`
	Filename    string                 `json:"filename,omitempty"`
	ContentType extraction.ContentType `json:"contentType"`
	Data        any                    `json:"data,omitempty"`
	Success     bool                   `json:"success"`
	Error       string                 `json:"error,omitempty"`
	Timestamp   time.Time              `json:"timestamp"`
	Stats       *ProcessStats          `json:"stats,omitempty"`
}

// ProcessStats carries approximate accounting for one processing run.
type ProcessStats struct {
	InputTokens    int     `json:"inputTokens"`
	OutputTokens   int     `json:"outputTokens"`
	TotalTokens    int     `json:"totalTokens"`
	CostUSD        float64 `json:"costUsd"`
	ContentLength  int     `json:"contentLength"`
	ItemsExtracted int     `json:"itemsExtracted"`
	FileType       string  `json:"fileType,omitempty"`
}
