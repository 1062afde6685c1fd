// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// package suggest derives improvement suggestions from an analysis report.
// It is a deterministic rule engine over the extracted signals: metadata
// length bounds, heading structure, readability bands, keyword and phrase
// usage, and the link profile.
package suggest

import (
	"fmt"
	"strings"

	"github.com/sitescope/sitescope/internal/model"
	"github.com/sitescope/sitescope/util/slicest"
)

// Bounds used by the metadata rules. Derived from what search engines
// typically display without truncation.
const (
	titleMin       = 30
	titleMax       = 60
	descriptionMin = 70
	descriptionMax = 160
	minWordCount   = 300
)

// Generate produces the three suggestion groups for an analyzed page.
func Generate(meta model.MetaInfo, headings []model.Heading, links []model.Link, metrics model.ContentMetrics) model.Suggestions {
	return model.Suggestions{
		ContentImprovements: contentImprovements(headings, metrics),
		SEORecommendations:  seoRecommendations(meta, headings, links),
		KeywordSuggestions:  keywordSuggestions(meta, metrics),
	}
}

func contentImprovements(headings []model.Heading, metrics model.ContentMetrics) []string {
	var out []string

	switch {
	case metrics.WordCount == 0:
		out = append(out, "No main content could be extracted; make sure the page's primary text is in the HTML rather than rendered by scripts.")
	case metrics.WordCount < minWordCount:
		out = append(out, fmt.Sprintf("The page has only %d words of main content; pages with at least %d words tend to rank better for informational queries.", metrics.WordCount, minWordCount))
	}

	if metrics.WordCount > 0 {
		switch {
		case metrics.Readability < 30:
			out = append(out, fmt.Sprintf("The readability score is %.1f (very difficult); shorten sentences and prefer common words.", metrics.Readability))
		case metrics.Readability < 50:
			out = append(out, fmt.Sprintf("The readability score is %.1f (fairly difficult); breaking up long sentences would help.", metrics.Readability))
		}
	}

	if len(headings) == 0 && metrics.WordCount > 0 {
		out = append(out, "The page has no headings; structure the content with H2/H3 sections.")
	}

	for _, t := range metrics.Trigrams {
		if t.Count >= 3 && t.Density > 0.02 {
			out = append(out, fmt.Sprintf("The phrase %q repeats %d times; vary the wording to avoid sounding templated.", t.Phrase, t.Count))
			break
		}
	}

	if len(out) == 0 {
		out = append(out, "The main content looks well balanced; no structural changes needed.")
	}
	return out
}

func seoRecommendations(meta model.MetaInfo, headings []model.Heading, links []model.Link) []string {
	var out []string

	switch n := len(meta.Title); {
	case n == 0:
		out = append(out, "The page is missing a <title>; add one that describes the page in under 60 characters.")
	case n > titleMax:
		out = append(out, fmt.Sprintf("The title is %d characters; search results truncate titles beyond ~%d characters.", n, titleMax))
	case n < titleMin:
		out = append(out, fmt.Sprintf("The title is only %d characters; titles between %d and %d characters use the result snippet best.", n, titleMin, titleMax))
	}

	switch n := len(meta.MetaDescription); {
	case n == 0:
		out = append(out, "Add a meta description; search engines otherwise pick an arbitrary snippet.")
	case n > descriptionMax:
		out = append(out, fmt.Sprintf("The meta description is %d characters; keep it under ~%d to avoid truncation.", n, descriptionMax))
	case n < descriptionMin:
		out = append(out, fmt.Sprintf("The meta description is only %d characters; aim for %d-%d characters.", n, descriptionMin, descriptionMax))
	}

	h1s := slicest.Filter(headings, func(h model.Heading) bool { return h.Level == 1 })
	switch {
	case len(h1s) == 0:
		out = append(out, "The page has no H1; add exactly one that matches the title's intent.")
	case len(h1s) > 1:
		out = append(out, fmt.Sprintf("The page has %d H1 headings; keep a single H1 and demote the rest.", len(h1s)))
	}

	if meta.Canonical == "" {
		out = append(out, "No canonical link is set; declare one to avoid duplicate-content dilution.")
	}
	if strings.Contains(strings.ToLower(meta.Robots), "noindex") {
		out = append(out, "The robots meta tag contains 'noindex'; this page will not appear in search results.")
	}

	internal := slicest.Filter(links, func(l model.Link) bool { return l.Internal })
	if len(links) > 0 && len(internal) == 0 {
		out = append(out, "The page links only to external sites; add internal links to related pages.")
	}

	if len(out) == 0 {
		out = append(out, "The on-page metadata looks complete; no changes recommended.")
	}
	return out
}

func keywordSuggestions(meta model.MetaInfo, metrics model.ContentMetrics) []string {
	var out []string
	title := strings.ToLower(meta.Title)
	description := strings.ToLower(meta.MetaDescription)

	for _, kw := range metrics.TopKeywords {
		if len(out) >= 5 {
			break
		}
		if kw.Count < 2 {
			continue
		}
		inTitle := strings.Contains(title, kw.Keyword)
		inDescription := strings.Contains(description, kw.Keyword)
		switch {
		case !inTitle && !inDescription:
			out = append(out, fmt.Sprintf("%q appears %d times in the content but not in the title or description; consider working it into both.", kw.Keyword, kw.Count))
		case !inTitle:
			out = append(out, fmt.Sprintf("%q is prominent in the content; consider adding it to the title.", kw.Keyword))
		}
	}

	for _, t := range metrics.Trigrams {
		if len(out) >= 8 {
			break
		}
		if t.Count >= 2 && !strings.Contains(title, t.Phrase) {
			out = append(out, fmt.Sprintf("The phrase %q recurs in the content and could anchor a long-tail variant of this page.", t.Phrase))
		}
	}

	if len(out) == 0 && len(metrics.TopKeywords) > 0 {
		out = append(out, "The top content keywords already appear in the title and description.")
	}
	return out
}
