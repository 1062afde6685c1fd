// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// package page parses a fetched HTML document and extracts the on-page SEO
// signals: head metadata, heading structure and the link profile.
package page

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sitescope/sitescope/internal/model"
)

// Document is a parsed HTML page, ready for analysis.
type Document struct {
	pageURL    *url.URL
	doc        *goquery.Document
	statusCode int
	raw        []byte
}

// Parse builds a Document from raw HTML. pageURL must be absolute; it is
// used to resolve relative links and classify them as internal or external.
func Parse(pageURL string, html []byte, statusCode int) (*Document, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url %q: %w", pageURL, err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("page url %q is not absolute", pageURL)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html of %s: %w", pageURL, err)
	}
	return &Document{pageURL: u, doc: doc, statusCode: statusCode, raw: html}, nil
}

// URL returns the page URL the document was parsed for.
func (d *Document) URL() string { return d.pageURL.String() }

// MetaInfo extracts the head metadata of the page. Missing elements leave
// their fields empty rather than failing.
func (d *Document) MetaInfo() model.MetaInfo {
	info := model.MetaInfo{StatusCode: d.statusCode}

	info.Title = strings.TrimSpace(d.doc.Find("title").First().Text())

	d.doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		content, _ := s.Attr("content")
		switch strings.ToLower(name) {
		case "description":
			info.MetaDescription = content
		case "keywords":
			info.MetaKeywords = content
		case "robots":
			info.Robots = content
		}
	})

	if href, ok := d.doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		info.Canonical = href
	}

	return info
}

// Headings returns every H1..H6 element with its word count, grouped by
// level from H1 down.
func (d *Document) Headings() []model.Heading {
	var headings []model.Heading
	for level := 1; level <= 6; level++ {
		d.doc.Find(fmt.Sprintf("h%d", level)).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			headings = append(headings, model.Heading{
				Level: level,
				Text:  text,
				Words: len(strings.Fields(text)),
			})
		})
	}
	return headings
}

// Links returns every anchor with a usable href, resolved against the page
// URL. Empty and fragment-only hrefs are skipped.
func (d *Document) Links() []model.Link {
	var links []model.Link
	d.doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" || strings.HasPrefix(href, "#") {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := d.pageURL.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return
		}
		links = append(links, model.Link{
			Text:     strings.TrimSpace(s.Text()),
			URL:      abs.String(),
			Internal: sameSite(d.pageURL, abs),
		})
	})
	return links
}

// sameSite reports whether two URLs belong to the same site. Hostnames are
// compared case-insensitively with a leading "www." ignored, so
// example.com and www.example.com count as one site.
func sameSite(a, b *url.URL) bool {
	return normalizeHost(a.Hostname()) == normalizeHost(b.Hostname())
}

func normalizeHost(h string) string {
	return strings.TrimPrefix(strings.ToLower(h), "www.")
}
