// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package content

import (
	"math"
	"strings"
	"testing"
)

func TestAnalyzeEmptyText(t *testing.T) {
	a := NewAnalyzer()
	m := a.Analyze("")

	if m.WordCount != 0 {
		t.Errorf("WordCount = %d, want 0", m.WordCount)
	}
	if m.Readability != 0 {
		t.Errorf("Readability = %f, want 0", m.Readability)
	}
	if m.TopKeywords == nil || len(m.TopKeywords) != 0 {
		t.Errorf("TopKeywords = %v, want empty non-nil slice", m.TopKeywords)
	}
	if m.Trigrams == nil || len(m.Trigrams) != 0 {
		t.Errorf("Trigrams = %v, want empty non-nil slice", m.Trigrams)
	}
}

func TestAnalyzeCountsAndKeywords(t *testing.T) {
	a := NewAnalyzer()
	text := "Apples are great. Apples are healthy snacks. Everyone loves apples."
	m := a.Analyze(text)

	if m.WordCount != 10 {
		t.Errorf("WordCount = %d, want 10", m.WordCount)
	}
	if len(m.TopKeywords) == 0 {
		t.Fatal("expected keywords")
	}
	if m.TopKeywords[0].Keyword != "apples" || m.TopKeywords[0].Count != 3 {
		t.Errorf("top keyword = %+v, want apples x3", m.TopKeywords[0])
	}
	for _, kw := range m.TopKeywords {
		if _, stop := defaultStopWords[kw.Keyword]; stop {
			t.Errorf("stopword %q leaked into keywords", kw.Keyword)
		}
	}
}

func TestAnalyzeKeywordDensity(t *testing.T) {
	a := NewAnalyzer()
	// 6 words, 4 keyword tokens (apples, apples, healthy, tasty).
	m := a.Analyze("apples and apples so healthy tasty")
	want := 4.0 / 6.0
	if math.Abs(m.KeywordDensity-want) > 1e-9 {
		t.Errorf("KeywordDensity = %f, want %f", m.KeywordDensity, want)
	}
}

func TestFleschReadingEase(t *testing.T) {
	// "The cat sat." is one sentence of three one-syllable words:
	// 206.835 - 1.015*3 - 84.6*1 = 119.19
	words := Words("The cat sat.")
	got := fleschReadingEase("The cat sat.", words)
	want := 206.835 - 1.015*3 - 84.6*1
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("fleschReadingEase = %f, want %f", got, want)
	}
}

func TestFleschNoSentences(t *testing.T) {
	if got := fleschReadingEase("", nil); got != 0 {
		t.Errorf("fleschReadingEase on empty text = %f, want 0", got)
	}
}

func TestTopKeywordsTieBreak(t *testing.T) {
	ranked := topKeywords([]string{"pear", "kiwi", "pear", "kiwi"}, 10)
	if len(ranked) != 2 {
		t.Fatalf("got %d keywords, want 2", len(ranked))
	}
	// Equal counts rank alphabetically.
	if ranked[0].Keyword != "kiwi" || ranked[1].Keyword != "pear" {
		t.Errorf("tie break order = %s, %s; want kiwi, pear", ranked[0].Keyword, ranked[1].Keyword)
	}
}

func TestAnalyzeTrigramLimit(t *testing.T) {
	a := NewAnalyzer()
	// Long unique text produces far more than the trigram cap.
	var b strings.Builder
	for i := 0; i < 50; i++ {
		b.WriteString("alpha")
		b.WriteString(string(rune('a' + i%26)))
		b.WriteString(" ")
	}
	m := a.Analyze(b.String())
	if len(m.Trigrams) > 20 {
		t.Errorf("got %d trigrams, want at most 20", len(m.Trigrams))
	}
}
