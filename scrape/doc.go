// Package scrape fetches web pages and reduces them to the visible text
// that feeds the extraction pipeline.
package scrape
