package scrape

import "errors"

var (
	// ErrURLRequired is returned when a URL is not provided.
	ErrURLRequired = errors.New("url required")

	// ErrFetchFailed is returned when a page responds with a non-2xx status.
	ErrFetchFailed = errors.New("fetch failed")
)
