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


package extraction

import (
	"encoding/json"
	"regexp"
)

// The recovery chain is a finite-state pipeline over the raw model response.
// States run in order and the first successful parse wins; fallback synthesis
// is the terminal state and always succeeds, so recovery as a whole never
// fails.
type recoveryState int

const (
	stateCodeBlockScan recoveryState = iota
	stateArrayScan
	stateObjectScan
	stateFallbackSynthesis
)

var (
	// Fenced code blocks, optionally tagged "json".
	fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	// Greedy spans so nested brackets and embedded newlines stay inside.
	arrayRe  = regexp.MustCompile(`(?s)\[.*\]`)
	objectRe = regexp.MustCompile(`(?s)\{.*\}`)
)

// recoverValue extracts a JSON value from the free-text response.
func recoverValue(response string, contentType ContentType, previewLen int) any {
	for state := stateCodeBlockScan; ; state++ {
		switch state {
		case stateCodeBlockScan:
			for _, match := range fenceRe.FindAllStringSubmatch(response, -1) {
				if value, ok := tryParse(match[1]); ok {
					return value
				}
			}

		case stateArrayScan:
			if span := arrayRe.FindString(response); span != "" {
				if value, ok := tryParse(span); ok {
					return value
				}
			}

		case stateObjectScan:
			if span := objectRe.FindString(response); span != "" {
				if value, ok := tryParse(span); ok {
					return value
				}
			}

		case stateFallbackSynthesis:
			return contentType.fallback(previewOf(response, previewLen))
		}
	}
}

func tryParse(text string) (any, bool) {
	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return nil, false
	}
	return value, true
}

// previewOf returns at most limit characters of text, with an ellipsis when
// truncated.
func previewOf(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
