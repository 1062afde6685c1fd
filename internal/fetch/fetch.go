// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// package fetch provides the shared HTTP client used by every analyzer that
// touches the network. All requests carry a context, a configurable timeout
// and the Sitescope User-Agent, and body reads are size-capped so a hostile
// page cannot exhaust memory.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/sitescope/sitescope/internal/logging"
)

// DefaultUserAgent identifies Sitescope to the sites it analyzes.
const DefaultUserAgent = "Sitescope/1.0 (+https://github.com/sitescope/sitescope)"

// maxBodyBytes caps how much of a response body is read into memory.
const maxBodyBytes = 10 << 20 // 10 MiB

// Response is the portion of an HTTP response the analyzers care about.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	FinalURL   string
}

// Client wraps http.Client with Sitescope defaults.
type Client struct {
	hc        *http.Client
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the total per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.hc.Timeout = d }
}

// WithUserAgent overrides the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHTTPClient swaps the underlying http.Client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// NewClient returns a Client with sane transport defaults.
func NewClient(opts ...Option) *Client {
	dialer := &net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}
	tr := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
	}
	c := &Client{
		hc:        &http.Client{Transport: tr, Timeout: 30 * time.Second},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches url and returns the status, headers and size-capped body.
// Redirects are followed; FinalURL reports where the request ended up.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", url, err)
	}
	body = decodeToUTF8(body, resp.Header.Get("Content-Type"))
	logging.Debugf("fetch: GET %s -> %d (%d bytes, %s)", url, resp.StatusCode, len(body), time.Since(start).Round(time.Millisecond))

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
		FinalURL:   resp.Request.URL.String(),
	}, nil
}

// decodeToUTF8 transcodes an HTML body to UTF-8, sniffing the encoding from
// the Content-Type header and the document itself. Legacy sites still serve
// ISO-8859-1 or Windows-1252; the parsers downstream expect UTF-8. Non-HTML
// payloads (sitemap XML, robots.txt) pass through untouched.
func decodeToUTF8(body []byte, contentType string) []byte {
	if len(body) == 0 {
		return body
	}
	if ct := strings.ToLower(contentType); ct != "" && !strings.Contains(ct, "html") {
		return body
	}
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return body
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return body
	}
	return decoded
}

// Head issues a HEAD request and returns the response status code.
// Redirects are followed, matching how crawlers probe sitemap entries.
func (c *Client) Head(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, fmt.Errorf("head %s: %w", url, err)
	}
	_ = resp.Body.Close()
	logging.Debugf("fetch: HEAD %s -> %d", url, resp.StatusCode)
	return resp.StatusCode, nil
}
