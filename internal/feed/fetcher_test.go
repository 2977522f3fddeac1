package feed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/intel-watcher/internal/domain"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/feed"
)

const rssBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>OSS Announcements</title>
    <item>
      <title>Mandatory reporting introduced</title>
      <link>https://example.com/mandatory</link>
      <description>New izin reporting requirement</description>
      <pubDate>Fri, 10 Jan 2025 06:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Item without link</title>
      <guid>https://example.com/guid-item</guid>
    </item>
    <item>
      <title></title>
    </item>
  </channel>
</rss>`

func testSource(endpoint string) domain.IntelSource {
	return domain.IntelSource{
		ID:              "oss-news",
		Label:           "OSS Announcements",
		FetchKind:       domain.FetchKindFeed,
		Endpoint:        endpoint,
		DefaultPriority: domain.PriorityHigh,
	}
}

func TestFetch_ParsesFeedItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssBody))
	}))
	defer server.Close()

	now := time.Date(2025, 1, 12, 6, 0, 0, 0, time.UTC)
	fetcher := feed.NewHTTPFetcher(server.Client())

	records, err := fetcher.Fetch(context.Background(), testSource(server.URL), now)
	require.NoError(t, err)
	require.Len(t, records, 2, "the entry with neither link nor title is skipped")

	first := records[0]
	assert.Equal(t, "Mandatory reporting introduced", first.Title)
	assert.Equal(t, "https://example.com/mandatory", first.URL)
	assert.Equal(t, "New izin reporting requirement", first.ContentSnippet)
	assert.Equal(t, "oss-news", first.SourceID)
	assert.Equal(t, now, first.CollectedAt)
	assert.Equal(t, domain.PriorityHigh, first.Priority)
	require.NotNil(t, first.PublishedAt)
	assert.Equal(t, time.Date(2025, 1, 10, 6, 0, 0, 0, time.UTC), first.PublishedAt.UTC())

	// GUID is used when the entry has no explicit link.
	assert.Equal(t, "https://example.com/guid-item", records[1].URL)
}

func TestFetch_ConditionalRequestAfterETag(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		_, _ = w.Write([]byte(rssBody))
	}))
	defer server.Close()

	fetcher := feed.NewHTTPFetcher(server.Client())
	source := testSource(server.URL)
	now := time.Now()

	first, err := fetcher.Fetch(context.Background(), source, now)
	require.NoError(t, err)
	assert.Len(t, first, 2)

	// Second fetch sends the remembered ETag; 304 yields no new items
	// without an error.
	second, err := fetcher.Fetch(context.Background(), source, now)
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Equal(t, 2, requests)
}

func TestFetch_ServerErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	fetcher := feed.NewHTTPFetcher(server.Client())

	_, err := fetcher.Fetch(context.Background(), testSource(server.URL), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oss-news")
}

func TestFetch_RejectsUnknownFetchKind(t *testing.T) {
	fetcher := feed.NewHTTPFetcher(http.DefaultClient)

	source := testSource("https://example.com/feed")
	source.FetchKind = "scrape"

	_, err := fetcher.Fetch(context.Background(), source, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported fetch kind")
}
