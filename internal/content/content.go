// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// package content computes the text-level SEO metrics of a page: word and
// sentence statistics, Flesch Reading Ease, stopword-filtered keyword
// rankings, trigram phrase density and competitor phrase overlap.
package content

import (
	"sort"

	"github.com/sitescope/sitescope/internal/model"
	"github.com/sitescope/sitescope/util/slicest"
)

// defaultStopWords are excluded from keyword extraction.
var defaultStopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "be", "to", "of", "and", "a", "in", "that", "have",
		"i", "it", "for", "not", "on", "with", "he", "as", "you",
		"do", "at", "this", "but", "his", "by", "from", "they",
		"we", "say", "her", "she", "or", "an", "will", "my", "one",
		"all", "would", "there", "their", "what", "so", "up", "out",
	} {
		defaultStopWords[w] = struct{}{}
	}
}

// topKeywordCount bounds the keyword ranking in a report.
const topKeywordCount = 10

// topTrigramCount bounds the trigram ranking in a report.
const topTrigramCount = 20

// Analyzer computes content metrics. The zero value is not usable; create
// one with NewAnalyzer.
type Analyzer struct {
	stopWords map[string]struct{}
}

// NewAnalyzer returns an Analyzer with the default stopword list.
func NewAnalyzer() *Analyzer {
	return &Analyzer{stopWords: defaultStopWords}
}

// Analyze computes the full metric set for a text. Empty input yields a
// zero-valued result rather than an error.
func (a *Analyzer) Analyze(text string) model.ContentMetrics {
	if text == "" {
		return model.ContentMetrics{
			TopKeywords: []model.KeywordCount{},
			Trigrams:    []model.TrigramStat{},
		}
	}

	words := Words(text)
	wordCount := len(words)

	metrics := model.ContentMetrics{
		WordCount:   wordCount,
		Readability: fleschReadingEase(text, words),
	}

	keywords := a.keywords(words)
	if wordCount > 0 {
		metrics.KeywordDensity = float64(len(keywords)) / float64(wordCount)
	}
	metrics.TopKeywords = topKeywords(keywords, topKeywordCount)

	trigrams := trigramStats(words)
	if len(trigrams) > topTrigramCount {
		trigrams = trigrams[:topTrigramCount]
	}
	metrics.Trigrams = trigrams

	return metrics
}

// fleschReadingEase computes the Flesch Reading Ease score:
// 206.835 - 1.015*(words/sentences) - 84.6*(syllables/words).
// Texts without sentences score zero.
func fleschReadingEase(text string, words []string) float64 {
	sentences := Sentences(text)
	if len(sentences) == 0 || len(words) == 0 {
		return 0
	}
	syllables := slicest.Reduce(words, func(w string, sum int) int {
		return sum + Syllables(w)
	})
	return 206.835 -
		1.015*(float64(len(words))/float64(len(sentences))) -
		84.6*(float64(syllables)/float64(len(words)))
}

// keywords filters word tokens down to keyword candidates. Stopwords and
// tokens shorter than three characters are dropped.
func (a *Analyzer) keywords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) <= 2 {
			continue
		}
		if _, stop := a.stopWords[w]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}

// topKeywords ranks keywords by frequency, ties broken alphabetically for
// stable output.
func topKeywords(keywords []string, limit int) []model.KeywordCount {
	freq := map[string]int{}
	for _, k := range keywords {
		freq[k]++
	}
	ranked := make([]model.KeywordCount, 0, len(freq))
	for k, n := range freq {
		ranked = append(ranked, model.KeywordCount{Keyword: k, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Keyword < ranked[j].Keyword
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
