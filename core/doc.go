// Package core defines the shared domain types for structor: extracted
// records, content-derived identifiers, and helpers for converting decoded
// extraction output into record lists.
package core
