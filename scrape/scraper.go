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

package scrape

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	defaultUserAgent = "structor/1.0 (+https://github.com/poiesic/structor)"
	// maxBodyBytes bounds how much of a response body is read.
	maxBodyBytes = 10 << 20
)

// Scraper fetches web pages and reduces them to visible text.
// A Scraper is safe for concurrent use.
type Scraper struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// Option configures a Scraper.
type Option func(*Scraper) error

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Scraper) error {
		if client != nil {
			s.client = client
		}
		return nil
	}
}

// WithUserAgent sets the User-Agent header sent with requests.
func WithUserAgent(userAgent string) Option {
	return func(s *Scraper) error {
		if userAgent != "" {
			s.userAgent = userAgent
		}
		return nil
	}
}

// WithTimeout bounds each fetch. Default is 30s.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Scraper) error {
		if timeout > 0 {
			s.client.Timeout = timeout
		}
		return nil
	}
}

// NewScraper creates a scraper with default settings.
func NewScraper(opts ...Option) (*Scraper, error) {
	s := &Scraper{
		client:    &http.Client{Timeout: 30 * time.Second},
		userAgent: defaultUserAgent,
		logger:    slog.Default().With("component", "scrape"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Fetch downloads a page and returns its visible text with whitespace runs
// collapsed. URLs without a scheme default to https.
func (s *Scraper) Fetch(ctx context.Context, rawURL string) (string, error) {
	if rawURL == "" {
		return "", ErrURLRequired
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	s.logger.Info("fetching page", "url", rawURL)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s returned %d", ErrFetchFailed, rawURL, resp.StatusCode)
	}

	text, err := ExtractText(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", rawURL, err)
	}

	s.logger.Debug("page fetched", "url", rawURL, "textLength", len(text))
	return text, nil
}

// ExtractText parses HTML and returns its visible text. Script, style, and
// noscript subtrees are skipped. Whitespace runs collapse to single spaces.
func ExtractText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " "), nil
}
