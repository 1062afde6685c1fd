// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package sitemap

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitescope/sitescope/internal/fetch"
)

// fakeFetcher serves canned pages and HEAD statuses keyed by URL.
type fakeFetcher struct {
	pages    map[string]string
	statuses map[string]int
}

func (f *fakeFetcher) Get(ctx context.Context, url string) (*fetch.Response, error) {
	body, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("no route to %s", url)
	}
	status := 200
	if s, ok := f.statuses[url]; ok {
		status = s
	}
	return &fetch.Response{StatusCode: status, Body: []byte(body), FinalURL: url}, nil
}

func (f *fakeFetcher) Head(ctx context.Context, url string) (int, error) {
	if s, ok := f.statuses[url]; ok {
		return s, nil
	}
	if _, ok := f.pages[url]; ok {
		return 200, nil
	}
	return 0, fmt.Errorf("no route to %s", url)
}

const validSitemap = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://example.com/</loc></url>
  <url><loc>https://example.com/about</loc></url>
</urlset>`

func TestValidateAllURLsHealthy(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://example.com/sitemap.xml": validSitemap,
		"https://example.com/":            "<html></html>",
		"https://example.com/about":       "<html></html>",
	}}
	h := NewHandler(f, 4)

	result, err := h.Validate(context.Background(), "https://example.com/sitemap.xml")
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 2, result.TotalURLs)
	assert.Empty(t, result.Issues)
	assert.Equal(t, []string{"https://example.com/", "https://example.com/about"}, result.URLs)
}

func TestValidateReportsBrokenURLs(t *testing.T) {
	f := &fakeFetcher{
		pages: map[string]string{
			"https://example.com/sitemap.xml": validSitemap,
			"https://example.com/":            "<html></html>",
		},
		statuses: map[string]int{
			"https://example.com/about": 404,
		},
	}
	h := NewHandler(f, 4)

	result, err := h.Validate(context.Background(), "https://example.com/sitemap.xml")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "https://example.com/about", result.Issues[0].URL)
	assert.Contains(t, result.Issues[0].Issue, "404")
}

func TestValidateBadXML(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://example.com/sitemap.xml": "this is not xml at all",
	}}
	h := NewHandler(f, 1)

	_, err := h.Validate(context.Background(), "https://example.com/sitemap.xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid XML format")
}

func TestValidateRejectsWrongNamespace(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://example.com/sitemap.xml": `<?xml version="1.0" encoding="UTF-8"?>
<urlset>
  <url><loc>https://example.com/</loc></url>
</urlset>`,
	}}
	h := NewHandler(f, 1)

	_, err := h.Validate(context.Background(), "https://example.com/sitemap.xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "namespace")
}

func TestValidateNon200Sitemap(t *testing.T) {
	f := &fakeFetcher{
		pages:    map[string]string{"https://example.com/sitemap.xml": ""},
		statuses: map[string]int{"https://example.com/sitemap.xml": 500},
	}
	h := NewHandler(f, 1)

	_, err := h.Validate(context.Background(), "https://example.com/sitemap.xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status code 500")
}

func TestGenerateCrawlsSameSiteOnly(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://example.com/": `<html><body>
			<a href="/about">About</a>
			<a href="/brochure.pdf">Brochure</a>
			<a href="https://other.example.org/">Elsewhere</a>
		</body></html>`,
		"https://example.com/about": `<html><body><a href="/">Home</a></body></html>`,
	}}
	h := NewHandler(f, 1)

	out, err := h.Generate(context.Background(), "https://example.com/", 10)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, xmlHeaderPrefix), "sitemap must start with the XML header")
	assert.Contains(t, out, "<loc>https://example.com/</loc>")
	assert.Contains(t, out, "<loc>https://example.com/about</loc>")
	assert.NotContains(t, out, "other.example.org")
	assert.NotContains(t, out, "brochure.pdf")
	// Base URL gets the higher priority.
	assert.Contains(t, out, "<priority>0.8</priority>")
	assert.Contains(t, out, "<priority>0.5</priority>")
}

const xmlHeaderPrefix = `<?xml version="1.0" encoding="UTF-8"?>`

func TestGenerateStripsFragmentLinks(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://example.com/": `<html><body>
			<a href="/about">About</a>
			<a href="/about#team">Team</a>
			<a href="/contact#map">Map</a>
		</body></html>`,
		"https://example.com/about":   "<html><body></body></html>",
		"https://example.com/contact": "<html><body></body></html>",
	}}
	h := NewHandler(f, 1)

	out, err := h.Generate(context.Background(), "https://example.com/", 10)
	require.NoError(t, err)

	// In-page anchors collapse onto the document they point at.
	assert.NotContains(t, out, "#")
	assert.Equal(t, 1, strings.Count(out, "<loc>https://example.com/about</loc>"))
	assert.Equal(t, 1, strings.Count(out, "<loc>https://example.com/contact</loc>"))
}

func TestGenerateRespectsMaxURLs(t *testing.T) {
	pages := map[string]string{}
	for i := 0; i < 20; i++ {
		var links strings.Builder
		for j := 0; j < 20; j++ {
			links.WriteString(fmt.Sprintf(`<a href="/p%d">p</a>`, j))
		}
		pages[fmt.Sprintf("https://example.com/p%d", i)] = "<html><body>" + links.String() + "</body></html>"
	}
	pages["https://example.com/"] = pages["https://example.com/p0"]
	h := NewHandler(&fakeFetcher{pages: pages}, 1)

	out, err := h.Generate(context.Background(), "https://example.com/", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(out, "<loc>"))
}

func TestGenerateUnreachableBase(t *testing.T) {
	h := NewHandler(&fakeFetcher{}, 1)
	_, err := h.Generate(context.Background(), "https://down.example/", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no reachable pages")
}
