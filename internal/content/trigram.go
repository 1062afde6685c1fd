// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package content

import (
	"sort"
	"strings"

	"github.com/sitescope/sitescope/internal/model"
)

// trigramStats counts every three-word phrase in the token stream and
// returns them ranked by frequency with their density (count over total
// trigrams). Ties are broken alphabetically for stable output.
func trigramStats(words []string) []model.TrigramStat {
	if len(words) < 3 {
		return []model.TrigramStat{}
	}
	total := len(words) - 2
	freq := make(map[string]int, total)
	for i := 0; i < total; i++ {
		phrase := strings.Join(words[i:i+3], " ")
		freq[phrase]++
	}
	stats := make([]model.TrigramStat, 0, len(freq))
	for phrase, n := range freq {
		stats = append(stats, model.TrigramStat{
			Phrase:  phrase,
			Count:   n,
			Density: float64(n) / float64(total),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Phrase < stats[j].Phrase
	})
	return stats
}

// trigramSet returns the distinct trigram phrases of a text.
func trigramSet(text string) map[string]struct{} {
	words := Words(text)
	set := map[string]struct{}{}
	for i := 0; i+2 < len(words); i++ {
		set[strings.Join(words[i:i+3], " ")] = struct{}{}
	}
	return set
}
