// Package fetch performs outbound GET requests with the browser-like headers
// the marketplace CDN and product pages expect.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout     = 20 * time.Second
	defaultMaxBytes    = 10 << 20
	DefaultContentType = "image/jpeg"

	// BrowserUserAgent is sent on every request; the CDN throttles obvious bots.
	BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	imageAccept = "image/avif,image/webp,image/apng,image/*,*/*;q=0.8"
	pageAccept  = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrTooLarge         = errors.New("response body exceeds size limit")
)

// Result is a fetched body.
type Result struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// Options configures an HTTPFetcher. Zero values pick the defaults.
type Options struct {
	Timeout  time.Duration
	MaxBytes int64
	Client   *http.Client
}

// HTTPFetcher fetches images and pages over HTTP.
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

// New creates an HTTPFetcher.
func New(opts Options) *HTTPFetcher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPFetcher{client: client, maxBytes: maxBytes}
}

// FetchImage downloads an image. The content type falls back to image/jpeg
// when the server sends none.
func (f *HTTPFetcher) FetchImage(ctx context.Context, url string) (*Result, error) {
	res, err := f.get(ctx, url, imageAccept)
	if err != nil {
		return nil, err
	}
	if res.ContentType == "" {
		res.ContentType = DefaultContentType
	}
	return res, nil
}

// FetchPage downloads an HTML document.
func (f *HTTPFetcher) FetchPage(ctx context.Context, url string) (*Result, error) {
	return f.get(ctx, url, pageAccept)
}

func (f *HTTPFetcher) get(ctx context.Context, url, accept string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", BrowserUserAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w %d for %s", ErrUnexpectedStatus, resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("%w of %d bytes for %s", ErrTooLarge, f.maxBytes, url)
	}

	return &Result{
		URL:         url,
		StatusCode:  resp.StatusCode,
		ContentType: strings.TrimSpace(resp.Header.Get("Content-Type")),
		Body:        body,
	}, nil
}
