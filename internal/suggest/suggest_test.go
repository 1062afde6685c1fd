// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package suggest

import (
	"strings"
	"testing"

	"github.com/sitescope/sitescope/internal/model"
)

func containsSubstring(lines []string, sub string) bool {
	for _, l := range lines {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}

func TestGenerateFlagsMissingMetadata(t *testing.T) {
	s := Generate(model.MetaInfo{}, nil, nil, model.ContentMetrics{})

	if !containsSubstring(s.SEORecommendations, "missing a <title>") {
		t.Errorf("missing title not flagged: %v", s.SEORecommendations)
	}
	if !containsSubstring(s.SEORecommendations, "meta description") {
		t.Errorf("missing description not flagged: %v", s.SEORecommendations)
	}
	if !containsSubstring(s.SEORecommendations, "no H1") {
		t.Errorf("missing H1 not flagged: %v", s.SEORecommendations)
	}
	if !containsSubstring(s.SEORecommendations, "canonical") {
		t.Errorf("missing canonical not flagged: %v", s.SEORecommendations)
	}
	if !containsSubstring(s.ContentImprovements, "No main content") {
		t.Errorf("empty content not flagged: %v", s.ContentImprovements)
	}
}

func TestGenerateTitleLengthBounds(t *testing.T) {
	shortTitle := model.MetaInfo{Title: "Apples"}
	s := Generate(shortTitle, nil, nil, model.ContentMetrics{})
	if !containsSubstring(s.SEORecommendations, "only 6 characters") {
		t.Errorf("short title not flagged: %v", s.SEORecommendations)
	}

	longTitle := model.MetaInfo{Title: strings.Repeat("x", 80)}
	s = Generate(longTitle, nil, nil, model.ContentMetrics{})
	if !containsSubstring(s.SEORecommendations, "80 characters") {
		t.Errorf("long title not flagged: %v", s.SEORecommendations)
	}
}

func TestGenerateMultipleH1(t *testing.T) {
	headings := []model.Heading{
		{Level: 1, Text: "First"},
		{Level: 1, Text: "Second"},
		{Level: 2, Text: "Sub"},
	}
	s := Generate(model.MetaInfo{}, headings, nil, model.ContentMetrics{})
	if !containsSubstring(s.SEORecommendations, "2 H1 headings") {
		t.Errorf("duplicate H1 not flagged: %v", s.SEORecommendations)
	}
}

func TestGenerateNoindexWarning(t *testing.T) {
	meta := model.MetaInfo{Robots: "NOINDEX, nofollow"}
	s := Generate(meta, nil, nil, model.ContentMetrics{})
	if !containsSubstring(s.SEORecommendations, "noindex") {
		t.Errorf("noindex not flagged: %v", s.SEORecommendations)
	}
}

func TestGenerateExternalOnlyLinks(t *testing.T) {
	links := []model.Link{
		{URL: "https://a.example", Internal: false},
		{URL: "https://b.example", Internal: false},
	}
	s := Generate(model.MetaInfo{}, nil, links, model.ContentMetrics{})
	if !containsSubstring(s.SEORecommendations, "internal links") {
		t.Errorf("external-only links not flagged: %v", s.SEORecommendations)
	}
}

func TestGenerateReadabilityBands(t *testing.T) {
	s := Generate(model.MetaInfo{}, nil, nil, model.ContentMetrics{WordCount: 400, Readability: 20})
	if !containsSubstring(s.ContentImprovements, "very difficult") {
		t.Errorf("low readability not flagged: %v", s.ContentImprovements)
	}

	s = Generate(model.MetaInfo{}, nil, nil, model.ContentMetrics{WordCount: 400, Readability: 40})
	if !containsSubstring(s.ContentImprovements, "fairly difficult") {
		t.Errorf("mid readability not flagged: %v", s.ContentImprovements)
	}
}

func TestGenerateThinContent(t *testing.T) {
	s := Generate(model.MetaInfo{}, nil, nil, model.ContentMetrics{WordCount: 120, Readability: 70})
	if !containsSubstring(s.ContentImprovements, "only 120 words") {
		t.Errorf("thin content not flagged: %v", s.ContentImprovements)
	}
}

func TestGenerateRepeatedPhrase(t *testing.T) {
	metrics := model.ContentMetrics{
		WordCount:   500,
		Readability: 70,
		Trigrams: []model.TrigramStat{
			{Phrase: "best apple deals", Count: 5, Density: 0.05},
		},
	}
	headings := []model.Heading{{Level: 2, Text: "Deals"}}
	s := Generate(model.MetaInfo{}, headings, nil, metrics)
	if !containsSubstring(s.ContentImprovements, "best apple deals") {
		t.Errorf("repeated phrase not flagged: %v", s.ContentImprovements)
	}
}

func TestGenerateKeywordSuggestions(t *testing.T) {
	meta := model.MetaInfo{Title: "Orchard Shop", MetaDescription: "We sell fruit."}
	metrics := model.ContentMetrics{
		WordCount:   500,
		Readability: 70,
		TopKeywords: []model.KeywordCount{
			{Keyword: "apples", Count: 8},
			{Keyword: "orchard", Count: 4},
		},
	}
	s := Generate(meta, nil, nil, metrics)

	// "apples" is absent from both title and description.
	if !containsSubstring(s.KeywordSuggestions, `"apples"`) {
		t.Errorf("absent keyword not suggested: %v", s.KeywordSuggestions)
	}
}

func TestGenerateCleanPage(t *testing.T) {
	meta := model.MetaInfo{
		Title:           "Fresh Apples Delivered from Our Orchard",
		MetaDescription: "Order fresh, crisp apples straight from our family orchard with free next-day delivery across the country.",
		Canonical:       "https://example.com/apples",
		Robots:          "index, follow",
	}
	headings := []model.Heading{{Level: 1, Text: "Fresh Apples"}}
	links := []model.Link{{URL: "https://example.com/shop", Internal: true}}
	metrics := model.ContentMetrics{WordCount: 800, Readability: 65}

	s := Generate(meta, headings, links, metrics)
	if !containsSubstring(s.SEORecommendations, "looks complete") {
		t.Errorf("clean page should get the all-clear: %v", s.SEORecommendations)
	}
	if !containsSubstring(s.ContentImprovements, "well balanced") {
		t.Errorf("clean content should get the all-clear: %v", s.ContentImprovements)
	}
}
