// Package embedding provides deterministic fixed-dimension text embedding
// over an immutable 25-term business vocabulary.
//
// Vectors are produced locally with no model service involved: term
// frequencies over the fixed vocabulary, L2-normalized, padded by
// construction to exactly 25 dimensions. Identical text always produces
// identical vectors.
package embedding
