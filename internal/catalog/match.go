/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package catalog

import "strings"

var matchNormalizer = strings.NewReplacer(
	".", "",
	"-", " ",
	"_", " ",
	"'", "",
	"\"", "",
	"/", " ",
	"\\", " ",
	"(", " ",
	")", " ",
	"[", " ",
	"]", " ",
	",", " ",
	";", " ",
	":", " ",
	"!", "",
	"?", "",
	"&", " ",
)

// normalizeMatchText lowercases, strips punctuation, and collapses
// whitespace so lookups ignore case and spacing differences.
func normalizeMatchText(s string) string {
	s = matchNormalizer.Replace(strings.ToLower(strings.TrimSpace(s)))
	return strings.Join(strings.Fields(s), " ")
}

// matchKey builds the exact-lookup index key for a name/artist pair.
func matchKey(name, artist string) string {
	return normalizeMatchText(name) + "|" + normalizeMatchText(artist)
}

// matchScore rates how closely two normalized strings agree, in [0,1].
// It takes the better of token-set overlap (Jaccard) and normalized
// Levenshtein similarity, so both word reordering and small typos are
// tolerated.
func matchScore(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	overlap := tokenOverlap(a, b)
	lev := levenshteinSimilarity(a, b)
	if overlap > lev {
		return overlap
	}
	return lev
}

func tokenOverlap(a, b string) float64 {
	setA := map[string]struct{}{}
	for _, tok := range strings.Fields(a) {
		setA[tok] = struct{}{}
	}
	setB := map[string]struct{}{}
	for _, tok := range strings.Fields(b) {
		setB[tok] = struct{}{}
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	shared := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			shared++
		}
	}
	union := len(setA) + len(setB) - shared
	return float64(shared) / float64(union)
}

func levenshteinSimilarity(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(ra, rb))/float64(longest)
}

// levenshtein computes edit distance with a two-row DP table.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			min := del
			if ins < min {
				min = ins
			}
			if sub < min {
				min = sub
			}
			curr[j] = min
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
