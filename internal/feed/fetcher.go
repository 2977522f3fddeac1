// Package feed implements the fetch collaborator: it pulls an IntelSource's
// RSS or Atom endpoint and converts entries into raw intel records.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/jonesrussell/north-cloud/intel-watcher/internal/domain"
)

// httpPrefix is the scheme prefix used to decide if a GUID is a usable URL.
const httpPrefix = "http"

// Fetcher pulls one source's feed. The collector is the only caller and is
// responsible for catching errors.
type Fetcher interface {
	Fetch(ctx context.Context, source domain.IntelSource, now time.Time) ([]domain.RawIntelRecord, error)
}

// cacheEntry holds the conditional-request headers remembered per endpoint.
type cacheEntry struct {
	etag         string
	lastModified string
}

// HTTPFetcher fetches feeds over HTTP with conditional requests. ETag and
// Last-Modified values are remembered per endpoint for the lifetime of the
// process; a 304 response yields an empty item set.
type HTTPFetcher struct {
	client *http.Client
	parser *gofeed.Parser

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewHTTPFetcher creates a Fetcher backed by the given http.Client.
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{
		client: client,
		parser: gofeed.NewParser(),
		cache:  make(map[string]cacheEntry),
	}
}

// Fetch performs a conditional GET against the source endpoint and parses
// the body as RSS/Atom. Entries without a usable link are skipped.
func (f *HTTPFetcher) Fetch(
	ctx context.Context,
	source domain.IntelSource,
	now time.Time,
) ([]domain.RawIntelRecord, error) {
	if source.FetchKind != domain.FetchKindFeed {
		return nil, fmt.Errorf("source %s: unsupported fetch kind %q", source.ID, source.FetchKind)
	}

	body, status, err := f.get(ctx, source.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", source.ID, err)
	}
	if status == http.StatusNotModified {
		return []domain.RawIntelRecord{}, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", source.ID, status)
	}

	parsed, err := f.parser.ParseString(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", source.ID, err)
	}

	records := make([]domain.RawIntelRecord, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		link := extractLink(entry)
		if link == "" && entry.Title == "" {
			continue
		}
		records = append(records, domain.RawIntelRecord{
			Title:          entry.Title,
			URL:            link,
			PublishedAt:    entry.PublishedParsed,
			SourceID:       source.ID,
			ContentSnippet: snippet(entry),
			CollectedAt:    now,
			Priority:       source.DefaultPriority,
		})
	}

	return records, nil
}

// get performs the HTTP GET with conditional headers and records any
// caching headers from the response.
func (f *HTTPFetcher) get(ctx context.Context, url string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", 0, fmt.Errorf("new request: %w", err)
	}

	f.mu.Lock()
	if entry, ok := f.cache[url]; ok {
		if entry.etag != "" {
			req.Header.Set("If-None-Match", entry.etag)
		}
		if entry.lastModified != "" {
			req.Header.Set("If-Modified-Since", entry.lastModified)
		}
	}
	f.mu.Unlock()

	resp, err := f.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	var body string
	if resp.StatusCode != http.StatusNotModified {
		raw, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return "", 0, fmt.Errorf("read body: %w", readErr)
		}
		body = string(raw)
	}

	etag := resp.Header.Get("ETag")
	lastModified := resp.Header.Get("Last-Modified")
	if etag != "" || lastModified != "" {
		f.mu.Lock()
		f.cache[url] = cacheEntry{etag: etag, lastModified: lastModified}
		f.mu.Unlock()
	}

	return body, resp.StatusCode, nil
}

// extractLink returns the best available URL from a feed entry, preferring
// the explicit link and falling back to an HTTP-looking GUID.
func extractLink(entry *gofeed.Item) string {
	if entry.Link != "" {
		return entry.Link
	}
	if strings.HasPrefix(entry.GUID, httpPrefix) {
		return entry.GUID
	}
	return ""
}

// snippet returns the entry description, falling back to content.
func snippet(entry *gofeed.Item) string {
	if entry.Description != "" {
		return entry.Description
	}
	return entry.Content
}
