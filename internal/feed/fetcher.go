package feed

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/bilgisen/feedharvest/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
)

// FeedAccept is sent when fetching or probing feed documents.
const FeedAccept = "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5"

// Response is the subset of an HTTP response the pipeline needs.
type Response struct {
	StatusCode  int
	Body        []byte
	ContentType string
}

// FetcherOptions configures the outgoing HTTP client.
type FetcherOptions struct {
	Timeout    time.Duration
	RetryCount int
	UserAgent  string
}

// Fetcher performs every outgoing request of the pipeline: feeds, pages and
// images. Certificate verification is disabled because many small news sites
// serve broken chains.
type Fetcher struct {
	client *resty.Client
}

func NewFetcher(opts FetcherOptions) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(2 * time.Second).
		SetRetryMaxWaitTime(10 * time.Second).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10)).
		SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}

	return &Fetcher{client: client}
}

// Get fetches url. Transport failures and non-2xx statuses are reported as
// models.ErrUnreachableSource.
func (f *Fetcher) Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeaders(headers).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch %s: %v", models.ErrUnreachableSource, url, err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: unexpected status code %d from %s", models.ErrUnreachableSource, resp.StatusCode(), url)
	}

	return &Response{
		StatusCode:  resp.StatusCode(),
		Body:        resp.Body(),
		ContentType: resp.Header().Get("Content-Type"),
	}, nil
}

// Download returns the body and content type of url.
func (f *Fetcher) Download(ctx context.Context, url string) ([]byte, string, error) {
	resp, err := f.Get(ctx, url, map[string]string{"Accept": "image/*,*/*;q=0.8"})
	if err != nil {
		return nil, "", err
	}
	return resp.Body, resp.ContentType, nil
}

// URLExists reports whether url answers a feed request with a 2xx status.
func (f *Fetcher) URLExists(ctx context.Context, url string) bool {
	_, err := f.Get(ctx, url, map[string]string{"Accept": FeedAccept})
	return err == nil
}

// FetchFeed retrieves and parses an RSS or Atom document.
func (f *Fetcher) FetchFeed(ctx context.Context, url string) (*gofeed.Feed, error) {
	resp, err := f.Get(ctx, url, map[string]string{"Accept": FeedAccept})
	if err != nil {
		return nil, err
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse feed %s: %v", models.ErrMalformedDocument, url, err)
	}
	return parsed, nil
}
