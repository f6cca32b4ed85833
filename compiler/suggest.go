package compiler

import (
	"slices"
	"strings"
)

// directiveNames lists the directives readDirective accepts.
var directiveNames = []string{"content", "replace", "strip"}

// levenshteinDistance calculates the edit distance between two strings.
func levenshteinDistance(a, b string) int {
	if a == "" {
		return len(b)
	}
	if b == "" {
		return len(a)
	}

	prevRow := make([]int, len(a)+1)
	currRow := make([]int, len(a)+1)
	for j := range prevRow {
		prevRow[j] = j
	}

	for i := 1; i <= len(b); i++ {
		currRow[0] = i
		for j := 1; j <= len(a); j++ {
			cost := 0
			if a[j-1] != b[i-1] {
				cost = 1
			}
			currRow[j] = min(
				currRow[j-1]+1,    // insertion
				prevRow[j]+1,      // deletion
				prevRow[j-1]+cost, // substitution
			)
		}
		prevRow, currRow = currRow, prevRow
	}

	return prevRow[len(a)]
}

// suggest returns up to three candidates within two edits of name, closest
// first.
func suggest(name string, candidates []string) []string {
	const threshold = 2
	const maxSuggestions = 3

	type suggestion struct {
		name     string
		distance int
	}
	var suggestions []suggestion
	for _, c := range candidates {
		if dist := levenshteinDistance(strings.ToLower(name), strings.ToLower(c)); dist <= threshold {
			suggestions = append(suggestions, suggestion{c, dist})
		}
	}
	slices.SortStableFunc(suggestions, func(a, b suggestion) int { return a.distance - b.distance })

	var result []string
	for i := 0; i < len(suggestions) && i < maxSuggestions; i++ {
		result = append(result, suggestions[i].name)
	}
	return result
}

// didYouMean formats the suggestions for name, or returns the empty string.
func didYouMean(name string, candidates []string, prefix string) string {
	similar := suggest(name, candidates)
	if len(similar) == 0 {
		return ""
	}
	for i, s := range similar {
		similar[i] = prefix + s
	}
	return "; did you mean " + strings.Join(similar, " or ") + "?"
}
