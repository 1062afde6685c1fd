// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// package scan orchestrates a full page analysis: fetch, parse, extract,
// measure, suggest, and persist. It is the single entry point the CLI and
// TUI use to produce a model.Report.
package scan

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/sitescope/sitescope/internal/content"
	"github.com/sitescope/sitescope/internal/db"
	"github.com/sitescope/sitescope/internal/fetch"
	"github.com/sitescope/sitescope/internal/logging"
	"github.com/sitescope/sitescope/internal/model"
	"github.com/sitescope/sitescope/internal/page"
	"github.com/sitescope/sitescope/internal/suggest"
)

// Options controls a single scan.
type Options struct {
	// Competitors are URLs whose content is compared against the page.
	Competitors []string
	// Concurrency bounds parallel competitor fetches.
	Concurrency int
	// SkipStore leaves the report out of the history store.
	SkipStore bool
}

// Runner performs scans. The store may be nil, in which case reports are
// not persisted.
type Runner struct {
	client   *fetch.Client
	analyzer *content.Analyzer
	store    db.Store
}

// NewRunner returns a Runner using the given HTTP client and store.
func NewRunner(client *fetch.Client, store db.Store) *Runner {
	return &Runner{
		client:   client,
		analyzer: content.NewAnalyzer(),
		store:    store,
	}
}

// ValidateURL checks that raw is an absolute http(s) URL with a host.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL %q must start with http:// or https://", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL %q has no host", raw)
	}
	return nil
}

// Run analyzes a single URL and returns the assembled report. The report is
// stored in the history unless opts.SkipStore is set.
func (r *Runner) Run(ctx context.Context, rawURL string, opts Options) (*model.Report, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := r.client.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	doc, err := page.Parse(rawURL, resp.Body, resp.StatusCode)
	if err != nil {
		return nil, err
	}

	report := &model.Report{
		ID:        uuid.NewString(),
		URL:       rawURL,
		FetchedAt: time.Now().UTC(),
		Meta:      doc.MetaInfo(),
		Headings:  doc.Headings(),
		Links:     doc.Links(),
	}

	text := doc.MainText()
	report.Content = r.analyzer.Analyze(text)

	if len(opts.Competitors) > 0 {
		report.Content.Competitors = r.analyzer.CompareCompetitors(
			ctx, text, opts.Competitors, r.fetchMainText, opts.Concurrency)
	}

	report.Suggestions = suggest.Generate(report.Meta, report.Headings, report.Links, report.Content)

	if r.store != nil && !opts.SkipStore {
		if err := r.store.SaveReport(report); err != nil {
			return nil, fmt.Errorf("save report: %w", err)
		}
	}

	logging.Debugf("scan: analyzed %s in %s (%d words, %d links)",
		rawURL, time.Since(start).Round(time.Millisecond), report.Content.WordCount, len(report.Links))
	return report, nil
}

// fetchMainText fetches a URL and returns its readability-extracted text.
// Used for competitor comparison.
func (r *Runner) fetchMainText(ctx context.Context, rawURL string) (string, error) {
	resp, err := r.client.Get(ctx, rawURL)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("fetch %s: status code %d", rawURL, resp.StatusCode)
	}
	doc, err := page.Parse(rawURL, resp.Body, resp.StatusCode)
	if err != nil {
		return "", err
	}
	return doc.MainText(), nil
}
