// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// package model defines the core domain types shared across Sitescope:
// analysis reports, page metadata, content metrics, sitemap and schema
// results. These types carry no behavior beyond formatting helpers; the
// analyzers in internal/ produce them and the store persists them.
package model

import (
	"fmt"
	"time"
)

// MetaInfo holds the on-page metadata extracted from a document's head.
type MetaInfo struct {
	Title           string `json:"title"`
	MetaDescription string `json:"meta_description"`
	MetaKeywords    string `json:"meta_keywords"`
	Canonical       string `json:"canonical"`
	Robots          string `json:"robots"`
	StatusCode      int    `json:"status_code"`
}

// Heading is a single H1..H6 element found on a page.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	Words int    `json:"words"`
}

// Tag returns the heading tag name, e.g. "H2".
func (h Heading) Tag() string {
	return fmt.Sprintf("H%d", h.Level)
}

// Link is a single anchor found on a page, with its href resolved against
// the page URL.
type Link struct {
	Text     string `json:"text"`
	URL      string `json:"url"`
	Internal bool   `json:"internal"`
}

// KeywordCount is one entry of a keyword frequency ranking.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// TrigramStat is one three-word phrase with its frequency and density
// relative to all trigrams in the text.
type TrigramStat struct {
	Phrase  string  `json:"trigram"`
	Count   int     `json:"count"`
	Density float64 `json:"density"`
}

// CompetitorInsight compares the analyzed page's phrasing with a single
// competitor URL. FetchError is set when the competitor could not be
// fetched or yielded no text.
type CompetitorInsight struct {
	URL           string   `json:"url"`
	CommonPhrases []string `json:"common_phrases,omitempty"`
	UniquePhrases []string `json:"unique_phrases,omitempty"`
	Similarity    float64  `json:"similarity_score"`
	FetchError    string   `json:"error,omitempty"`
}

// CompetitorAnalysis aggregates insights across all competitor URLs.
type CompetitorAnalysis struct {
	Analyzed int                 `json:"analyzed_competitors"`
	Insights []CompetitorInsight `json:"competitor_insights"`
}

// ContentMetrics is the result of analyzing a page's main text content.
type ContentMetrics struct {
	WordCount      int                 `json:"word_count"`
	Readability    float64             `json:"readability_score"`
	KeywordDensity float64             `json:"keyword_density"`
	TopKeywords    []KeywordCount      `json:"top_keywords"`
	Trigrams       []TrigramStat       `json:"trigram_analysis"`
	Competitors    *CompetitorAnalysis `json:"competitor_analysis,omitempty"`
}

// Suggestions holds the three suggestion groups produced for a report.
type Suggestions struct {
	ContentImprovements []string `json:"content_improvements"`
	SEORecommendations  []string `json:"seo_recommendations"`
	KeywordSuggestions  []string `json:"keyword_suggestions"`
}

// Report is a complete analysis of a single URL. ID is a UUID assigned when
// the report is created.
type Report struct {
	ID          string         `json:"id"`
	URL         string         `json:"url"`
	FetchedAt   time.Time      `json:"fetched_at"`
	Meta        MetaInfo       `json:"meta"`
	Headings    []Heading      `json:"headings"`
	Links       []Link         `json:"links"`
	Content     ContentMetrics `json:"content"`
	Suggestions Suggestions    `json:"suggestions"`
}

// String returns a short identifier for the report, suitable for listings.
func (r Report) String() string {
	return fmt.Sprintf("%s (%s)", r.URL, r.FetchedAt.Format("2006-01-02 15:04"))
}

// InternalLinks counts the links classified as internal.
func (r Report) InternalLinks() int {
	n := 0
	for _, l := range r.Links {
		if l.Internal {
			n++
		}
	}
	return n
}

// ReportSummary is the listing view of a stored report, cheap enough for
// history tables without decoding the full report payload.
type ReportSummary struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	FetchedAt   time.Time `json:"fetched_at"`
	Title       string    `json:"title"`
	StatusCode  int       `json:"status_code"`
	WordCount   int       `json:"word_count"`
	Readability float64   `json:"readability_score"`
}

// String returns a short identifier for the summary, suitable for listings.
func (s ReportSummary) String() string {
	return fmt.Sprintf("%s (%s)", s.URL, s.FetchedAt.Format("2006-01-02 15:04"))
}

// SitemapURL is one <url> entry of a generated sitemap.
type SitemapURL struct {
	Loc      string `xml:"loc" json:"loc"`
	LastMod  string `xml:"lastmod" json:"lastmod"`
	Priority string `xml:"priority" json:"priority"`
}

// SitemapIssue records a problem with a single URL listed in a sitemap.
type SitemapIssue struct {
	URL   string `json:"url"`
	Issue string `json:"issue"`
}

// SitemapValidation is the outcome of validating an existing sitemap.
// Valid is true only when every listed URL checked out.
type SitemapValidation struct {
	Valid     bool           `json:"valid"`
	TotalURLs int            `json:"total_urls"`
	URLs      []string       `json:"urls"`
	Issues    []SitemapIssue `json:"issues,omitempty"`
}

// SchemaValidation is the outcome of validating the JSON-LD markup on a
// page. Valid is true only when no issues were found.
type SchemaValidation struct {
	Valid        bool             `json:"valid"`
	SchemasFound int              `json:"schemas_found"`
	Schemas      []map[string]any `json:"schemas"`
	Issues       []string         `json:"issues,omitempty"`
}

// SchemaDoc is a generated JSON-LD document together with its
// <script>-wrapped embed form.
type SchemaDoc struct {
	Schema map[string]any `json:"schema"`
	JSONLD string         `json:"json_ld"`
}

// AuditLogEntry records a single action performed by the tool, for the
// history view and for backups.
type AuditLogEntry struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
}
