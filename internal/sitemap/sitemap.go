// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// package sitemap validates existing XML sitemaps and generates new ones by
// crawling a site. Validation probes every listed URL; generation walks
// same-site links breadth-first up to a configurable cap.
package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"sync"

	"github.com/sitescope/sitescope/internal/fetch"
	"github.com/sitescope/sitescope/internal/model"
)

// sitemapNS is the sitemap.org 0.9 namespace every sitemap must declare.
const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Fetcher is the subset of the HTTP client the sitemap tools need.
type Fetcher interface {
	Get(ctx context.Context, url string) (*fetch.Response, error)
	Head(ctx context.Context, url string) (int, error)
}

// Handler runs sitemap validation and generation against a Fetcher.
type Handler struct {
	fetcher     Fetcher
	concurrency int
}

// NewHandler returns a Handler. concurrency bounds the URL probe pool
// during validation; values below one fall back to one.
func NewHandler(fetcher Fetcher, concurrency int) *Handler {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Handler{fetcher: fetcher, concurrency: concurrency}
}

// urlset mirrors the <urlset> document structure for decoding.
type urlset struct {
	XMLName xml.Name `xml:"urlset"`
	URLs    []struct {
		Loc string `xml:"loc"`
	} `xml:"url"`
}

// Validate fetches a sitemap, parses it and probes every listed URL with a
// HEAD request. Fetch and parse failures return an error; per-URL problems
// are collected as issues and leave Valid false.
func (h *Handler) Validate(ctx context.Context, sitemapURL string) (*model.SitemapValidation, error) {
	resp, err := h.fetcher.Get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("failed to fetch sitemap: status code %d", resp.StatusCode)
	}

	var set urlset
	if err := xml.Unmarshal(resp.Body, &set); err != nil {
		return nil, fmt.Errorf("invalid XML format: %w", err)
	}
	if set.XMLName.Space != sitemapNS {
		return nil, fmt.Errorf("unexpected sitemap namespace %q, want %s", set.XMLName.Space, sitemapNS)
	}

	urls := make([]string, 0, len(set.URLs))
	for _, u := range set.URLs {
		urls = append(urls, u.Loc)
	}

	issues := h.probeAll(ctx, urls)
	return &model.SitemapValidation{
		Valid:     len(issues) == 0,
		TotalURLs: len(urls),
		URLs:      urls,
		Issues:    issues,
	}, nil
}

// probeAll HEAD-checks urls with a bounded worker pool and returns the
// issues in input order.
func (h *Handler) probeAll(ctx context.Context, urls []string) []model.SitemapIssue {
	results := make([]*model.SitemapIssue, len(urls))

	var wg sync.WaitGroup
	sem := make(chan struct{}, h.concurrency)
	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			status, err := h.fetcher.Head(ctx, u)
			if err != nil {
				results[i] = &model.SitemapIssue{URL: u, Issue: fmt.Sprintf("failed to access URL: %v", err)}
				return
			}
			if status != 200 {
				results[i] = &model.SitemapIssue{URL: u, Issue: fmt.Sprintf("URL returned status code %d", status)}
			}
		}(i, u)
	}
	wg.Wait()

	var issues []model.SitemapIssue
	for _, r := range results {
		if r != nil {
			issues = append(issues, *r)
		}
	}
	return issues
}
