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


package embedding

import (
	"hash/fnv"
	"math"
	"regexp"
	"strings"
)

// Vectorizer maps arbitrary text to a fixed 25-dimension vector using term
// frequencies over the fixed vocabulary.
//
// The weighting model is fit on the single input text, which degenerates the
// inverse-frequency component to a per-call constant: the effective signal is
// term presence/frequency within the vocabulary, not corpus-calibrated
// importance. This is a known limitation of the shipped model, kept on
// purpose; calibrating IDF across a tenant's accumulated corpus would be a
// behavior change to the produced vectors and needs explicit sign-off.
//
// Text that carries tokens but none from the vocabulary is embedded through a
// deterministic token-hashing fallback so it stays retrievable instead of
// collapsing to the zero vector. Only tokenless text is reported as not
// embeddable.
//
// A Vectorizer is stateless and safe for concurrent use.
type Vectorizer struct {
	index        map[string]int
	tokenPattern *regexp.Regexp
}

// NewVectorizer creates a vectorizer over the fixed vocabulary.
func NewVectorizer() *Vectorizer {
	index := make(map[string]int, Dimension)
	for i, term := range Vocabulary {
		index[term] = i
	}
	return &Vectorizer{
		index: index,
		// Tokens are runs of two or more word characters, lowercased.
		tokenPattern: regexp.MustCompile(`[a-z0-9_]{2,}`),
	}
}

// Embed converts text to an L2-normalized vector of exactly Dimension values.
// Returns nil when the text is not embeddable (empty or reducible to no
// tokens); callers must treat nil as "skip", never as a zero vector.
func (v *Vectorizer) Embed(text string) []float32 {
	tokens := v.tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	vec := make([]float64, Dimension)
	hits := 0
	for _, tok := range tokens {
		if idx, ok := v.index[tok]; ok {
			vec[idx]++
			hits++
		}
	}

	if hits == 0 {
		// Hashing fallback for fully out-of-vocabulary text.
		for _, tok := range tokens {
			vec[hashDimension(tok)]++
		}
	}

	return normalize(vec)
}

func (v *Vectorizer) tokenize(text string) []string {
	return v.tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// hashDimension deterministically assigns a token to one of the fixed
// dimensions using an FNV-1a hash.
func hashDimension(token string) int {
	h := fnv.New32a()
	h.Write([]byte(token))
	return int(h.Sum32() % Dimension)
}

func normalize(vec []float64) []float32 {
	var sumSquares float64
	for _, x := range vec {
		sumSquares += x * x
	}
	if sumSquares == 0 {
		return nil
	}

	norm := math.Sqrt(sumSquares)
	out := make([]float32, len(vec))
	for i, x := range vec {
		out[i] = float32(x / norm)
	}
	return out
}
