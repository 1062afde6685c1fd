// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/sitescope/sitescope/internal/logging"
	"github.com/sitescope/sitescope/internal/model"
	"github.com/sitescope/sitescope/internal/page"
)

// skippedExtensions are link fragments that never belong in a sitemap.
var skippedExtensions = []string{".pdf", ".jpg", ".jpeg", ".png", ".gif", ".zip"}

// Generate crawls the site at baseURL breadth-first, following same-site
// links until maxURLs pages have been collected, and returns the sitemap
// XML. The base URL gets priority 0.8, every other page 0.5. Pages that
// fail to fetch are skipped; the crawl stops early when ctx is cancelled.
func (h *Handler) Generate(ctx context.Context, baseURL string, maxURLs int) (string, error) {
	if maxURLs < 1 {
		maxURLs = 1
	}

	var entries []model.SitemapURL
	visited := map[string]struct{}{}
	queue := []string{baseURL}
	today := time.Now().Format("2006-01-02")

	for len(queue) > 0 && len(entries) < maxURLs {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		u := queue[0]
		queue = queue[1:]
		if _, seen := visited[u]; seen {
			continue
		}
		visited[u] = struct{}{}

		resp, err := h.fetcher.Get(ctx, u)
		if err != nil {
			logging.Debugf("sitemap: skipping %s: %v", u, err)
			continue
		}
		if resp.StatusCode != 200 {
			logging.Debugf("sitemap: skipping %s: status %d", u, resp.StatusCode)
			continue
		}

		priority := "0.5"
		if u == baseURL {
			priority = "0.8"
		}
		entries = append(entries, model.SitemapURL{Loc: u, LastMod: today, Priority: priority})

		doc, err := page.Parse(u, resp.Body, resp.StatusCode)
		if err != nil {
			continue
		}
		for _, link := range doc.Links() {
			if !link.Internal {
				continue
			}
			next := stripFragment(link.URL)
			if next == "" || skipLink(next) {
				continue
			}
			if _, seen := visited[next]; !seen {
				queue = append(queue, next)
			}
		}
	}

	if len(entries) == 0 {
		return "", fmt.Errorf("no reachable pages found at %s", baseURL)
	}
	return renderXML(entries)
}

// stripFragment drops the #fragment part of a URL so in-page anchors do not
// produce duplicate sitemap entries for the same document.
func stripFragment(u string) string {
	if i := strings.Index(u, "#"); i >= 0 {
		return u[:i]
	}
	return u
}

// skipLink filters out binary assets that should not appear in a sitemap.
func skipLink(u string) bool {
	lower := strings.ToLower(u)
	for _, ext := range skippedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// xmlURLSet is the <urlset> document structure for encoding.
type xmlURLSet struct {
	XMLName xml.Name           `xml:"urlset"`
	Xmlns   string             `xml:"xmlns,attr"`
	URLs    []model.SitemapURL `xml:"url"`
}

// renderXML serializes sitemap entries as an indented urlset document.
func renderXML(entries []model.SitemapURL) (string, error) {
	out, err := xml.MarshalIndent(xmlURLSet{Xmlns: sitemapNS, URLs: entries}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode sitemap: %w", err)
	}
	return xml.Header + string(out), nil
}
