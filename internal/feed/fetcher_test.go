package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bilgisen/feedharvest/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRSSFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Blog</title>
    <link>https://example.com</link>
    <description>A test RSS feed</description>
    <item>
      <title>First post</title>
      <link>https://example.com/post/1</link>
      <description>&lt;p&gt;Intro &lt;img src="https://example.com/thumb.jpg"/&gt;&lt;/p&gt;</description>
      <pubDate>Thu, 19 Feb 2026 08:00:00 +0800</pubDate>
    </item>
  </channel>
</rss>`

func newTestFetcher() *Fetcher {
	return NewFetcher(FetcherOptions{Timeout: 2 * time.Second, UserAgent: "feedharvest-test"})
}

func TestFetcher_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "feedharvest-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<html>ok</html>")
	}))
	defer srv.Close()

	resp, err := newTestFetcher().Get(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<html>ok</html>", string(resp.Body))
	assert.Equal(t, "text/html; charset=utf-8", resp.ContentType)
}

func TestFetcher_GetNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestFetcher().Get(context.Background(), srv.URL, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUnreachableSource)
	assert.Contains(t, err.Error(), "unexpected status code 404")
}

func TestFetcher_GetInvalidURL(t *testing.T) {
	_, err := newTestFetcher().Get(context.Background(), "invalid://url", nil)
	assert.ErrorIs(t, err, models.ErrUnreachableSource)
}

func TestFetcher_GetTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	f := NewFetcher(FetcherOptions{Timeout: 50 * time.Millisecond})
	_, err := f.Get(context.Background(), srv.URL, nil)
	assert.ErrorIs(t, err, models.ErrUnreachableSource)
}

func TestFetcher_GetAcceptsSelfSignedTLS(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "secure")
	}))
	defer srv.Close()

	resp, err := newTestFetcher().Get(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "secure", string(resp.Body))
}

func TestFetcher_URLExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/feed" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		assert.Equal(t, FeedAccept, r.Header.Get("Accept"))
		fmt.Fprint(w, "Valid response")
	}))
	defer srv.Close()

	f := newTestFetcher()
	assert.True(t, f.URLExists(context.Background(), srv.URL+"/feed"))
	assert.False(t, f.URLExists(context.Background(), srv.URL+"/invalid-url"))
}

func TestFetcher_FetchFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rss":
			w.Header().Set("Content-Type", "application/rss+xml")
			fmt.Fprint(w, testRSSFeed)
		default:
			fmt.Fprint(w, "not xml")
		}
	}))
	defer srv.Close()

	f := newTestFetcher()
	parsed, err := f.FetchFeed(context.Background(), srv.URL+"/rss")
	require.NoError(t, err)
	assert.Equal(t, "Test Blog", parsed.Title)
	require.Len(t, parsed.Items, 1)
	assert.Equal(t, "https://example.com/post/1", parsed.Items[0].Link)

	_, err = f.FetchFeed(context.Background(), srv.URL+"/broken")
	assert.ErrorIs(t, err, models.ErrMalformedDocument)
}
