// Package suggest proposes close matches for mistyped command words using
// Levenshtein distance.
package suggest

import (
	"slices"
	"strings"
)

// levenshtein calculates the edit distance between two strings
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Create matrix
	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}

	// Fill matrix
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}

// Closest returns up to limit candidates close to unknown, best first.
// Comparison ignores case. Ties keep the order of candidates.
func Closest(unknown string, candidates []string, limit int) []string {
	unknown = strings.ToLower(strings.TrimSpace(unknown))
	if unknown == "" || limit <= 0 {
		return nil
	}

	type scored struct {
		word  string
		score int
	}
	var matches []scored

	// Short words tolerate two edits; longer ones a third of their length.
	maxDist := max(2, len(unknown)/3)
	for _, c := range candidates {
		dist := levenshtein(unknown, strings.ToLower(c))
		if dist <= maxDist {
			matches = append(matches, scored{c, dist})
		}
	}

	slices.SortStableFunc(matches, func(a, b scored) int {
		return a.score - b.score
	})

	var result []string
	for i := 0; i < len(matches) && i < limit; i++ {
		result = append(result, matches[i].word)
	}
	return result
}

// Hint formats the best match as " (did you mean "x"?)", or "" when nothing
// is close enough.
func Hint(unknown string, candidates []string) string {
	best := Closest(unknown, candidates, 1)
	if len(best) == 0 {
		return ""
	}
	return ` (did you mean "` + best[0] + `"?)`
}
