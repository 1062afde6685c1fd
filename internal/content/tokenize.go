// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package content

import (
	"regexp"
	"strings"
)

var (
	// \w is ASCII-only in Go; match letters and digits of any script so
	// non-English pages tokenize correctly.
	wordRe     = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	sentenceRe = regexp.MustCompile(`[.!?]+`)
)

// Words lowercases text and splits it into word tokens.
func Words(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

// Sentences splits text on terminal punctuation runs and drops empty
// fragments.
func Sentences(text string) []string {
	parts := sentenceRe.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Syllables estimates the syllable count of a single word using a vowel-run
// heuristic: each vowel group counts once, a trailing silent 'e' is
// discounted, and every word counts at least one syllable.
func Syllables(word string) int {
	word = strings.ToLower(word)
	if word == "" {
		return 0
	}
	const vowels = "aeiouy"
	count := 0
	prevVowel := false
	for i, r := range word {
		isVowel := strings.ContainsRune(vowels, r)
		if isVowel && (i == 0 || !prevVowel) {
			count++
		}
		prevVowel = isVowel
	}
	if strings.HasSuffix(word, "e") {
		count--
	}
	if count <= 0 {
		count = 1
	}
	return count
}
