package analysis

import (
	"sort"
	"strings"
)

var stopWords = map[string]bool{
	"this": true, "that": true, "with": true, "have": true, "will": true,
	"from": true, "they": true, "been": true, "were": true, "said": true,
	"each": true, "which": true, "their": true, "time": true, "about": true,
	"would": true, "there": true, "could": true, "other": true, "more": true,
	"very": true, "what": true, "know": true, "just": true,
}

// ExtractKeywords returns at most topN tokens ordered by descending
// frequency, ties broken by first occurrence. Tokens are lowercased with
// punctuation stripped; stop words are removed. Empty input yields an empty
// slice, not an error.
func ExtractKeywords(text string, topN int) []string {
	keywords := []string{}
	if topN <= 0 {
		return keywords
	}

	counts := make(map[string]int)
	var order []string

	for _, field := range strings.Fields(strings.ToLower(text)) {
		token := strings.TrimFunc(field, func(r rune) bool {
			return !isWordRune(r)
		})
		if token == "" || stopWords[token] {
			continue
		}
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	// Stable sort over the first-occurrence order keeps ties deterministic.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > topN {
		order = order[:topN]
	}
	return append(keywords, order...)
}

func isWordRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '\'' || r == '-' || r > 127
}
