// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package content

import (
	"reflect"
	"testing"
)

func TestWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and splits",
			text: "The Quick, Brown Fox!",
			want: []string{"the", "quick", "brown", "fox"},
		},
		{
			name: "numbers count as words",
			text: "top 10 tips",
			want: []string{"top", "10", "tips"},
		},
		{
			name: "keeps accented and non-latin words intact",
			text: "Über das Café",
			want: []string{"über", "das", "café"},
		},
		{
			name: "cyrillic text",
			text: "привет мир",
			want: []string{"привет", "мир"},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Words(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Words(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "splits on terminal punctuation",
			text: "First sentence. Second one! Third?",
			want: []string{"First sentence", "Second one", "Third"},
		},
		{
			name: "collapses punctuation runs",
			text: "Wait... what?!",
			want: []string{"Wait", "what"},
		},
		{
			name: "no punctuation is one sentence",
			text: "just a fragment",
			want: []string{"just a fragment"},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sentences(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Sentences(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"table", 1},   // trailing 'e' discount
		{"beautiful", 3},
		{"queue", 1},
		{"rhythm", 1},  // 'y' is the only vowel
		{"e", 1},       // never below one
		{"", 0},
		{"SEO", 1}, // 'eo' is a single vowel group
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := Syllables(tt.word); got != tt.want {
				t.Errorf("Syllables(%q) = %d, want %d", tt.word, got, tt.want)
			}
		})
	}
}
