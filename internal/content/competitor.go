// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package content

import (
	"context"
	"sort"
	"sync"

	"github.com/sitescope/sitescope/internal/model"
)

// FetchTextFunc fetches the extracted main text of a URL. The scan layer
// wires this to fetch + readability so the analyzer stays network-free.
type FetchTextFunc func(ctx context.Context, url string) (string, error)

// maxCompetitorPhrases bounds the common/unique phrase lists per competitor.
const maxCompetitorPhrases = 10

// CompareCompetitors fetches each competitor URL concurrently and compares
// its trigram phrases with the main text. A failed fetch is recorded on the
// insight for that URL and does not abort the rest. Results keep the input
// URL order.
func (a *Analyzer) CompareCompetitors(ctx context.Context, mainText string, urls []string, fetchText FetchTextFunc, concurrency int) *model.CompetitorAnalysis {
	if len(urls) == 0 {
		return nil
	}
	if concurrency < 1 {
		concurrency = 1
	}

	mainSet := trigramSet(mainText)
	insights := make([]model.CompetitorInsight, len(urls))

	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)
	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			insights[i] = a.compareOne(ctx, mainSet, u, fetchText)
		}(i, u)
	}
	wg.Wait()

	return &model.CompetitorAnalysis{
		Analyzed: len(insights),
		Insights: insights,
	}
}

func (a *Analyzer) compareOne(ctx context.Context, mainSet map[string]struct{}, url string, fetchText FetchTextFunc) model.CompetitorInsight {
	insight := model.CompetitorInsight{URL: url}

	text, err := fetchText(ctx, url)
	if err != nil {
		insight.FetchError = err.Error()
		return insight
	}
	if text == "" {
		insight.FetchError = "no extractable content"
		return insight
	}

	compSet := trigramSet(text)
	var common, unique []string
	for phrase := range compSet {
		if _, ok := mainSet[phrase]; ok {
			common = append(common, phrase)
		} else {
			unique = append(unique, phrase)
		}
	}
	sort.Strings(common)
	sort.Strings(unique)

	if len(mainSet) > 0 {
		insight.Similarity = float64(len(common)) / float64(len(mainSet))
	}
	insight.CommonPhrases = clip(common, maxCompetitorPhrases)
	insight.UniquePhrases = clip(unique, maxCompetitorPhrases)
	return insight
}

func clip(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
