package compiler

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// estimateLineNumber tries to find the approximate line number where text appears in the source.
// Fragments rebuilt from parsed attributes may be quoted differently from the source, so it
// falls back to distinctive parts of the fragment.
func estimateLineNumber(source, text string) int {
	lines := strings.Split(source, "\n")

	// First try: exact match
	for i, line := range lines {
		if strings.Contains(line, text) {
			return i + 1
		}
	}

	// Second try: a placeholder, from its opening "${" up to the first space
	if idx := strings.Index(text, "${"); idx >= 0 {
		searchText := text[idx:]
		if end := strings.IndexFunc(searchText, unicode.IsSpace); end > 2 {
			searchText = searchText[:end]
		}
		for i, line := range lines {
			if strings.Contains(line, searchText) {
				return i + 1
			}
		}
	}

	// Third try: a directive attribute, by its name
	if name, _, ok := strings.Cut(text, "="); ok && strings.HasPrefix(name, DirectivePrefix) {
		for i, line := range lines {
			if strings.Contains(line, name) {
				return i + 1
			}
		}
	}

	// Fallback: search for any significant substring
	trimmed := strings.TrimSpace(text)
	if len(trimmed) > 10 {
		searchText := trimmed[:10]
		for i, line := range lines {
			if strings.Contains(line, searchText) {
				return i + 1
			}
		}
	}

	return 1 // Default to line 1 if not found
}

// findHoleLine returns the first line that uses the hole name, either in a
// placeholder or in a content or replace directive, or 0 when there is none.
func findHoleLine(source, name string) int {
	pattern := fmt.Sprintf(`\$\{\s*%[1]s[\s}]|%[2]s(content|replace)\s*=\s*["']?\s*%[1]s\b`,
		regexp.QuoteMeta(name), regexp.QuoteMeta(DirectivePrefix))
	re := regexp.MustCompile(pattern)
	matchIndex := re.FindStringIndex(source)
	if matchIndex == nil {
		return 0
	}
	return strings.Count(source[:matchIndex[0]], "\n") + 1
}

// getContextLines returns a formatted string with context lines around the error line.
// It shows 'contextSize' lines before and after the target line.
func getContextLines(source string, lineNumber int, contextSize int) string {
	lines := strings.Split(source, "\n")

	startLine := max(lineNumber-contextSize-1, 0) // -1 for 0-based indexing
	endLine := min(lineNumber+contextSize, len(lines))

	var result strings.Builder
	result.WriteString("\n")

	for i := startLine; i < endLine; i++ {
		lineNum := i + 1
		prefix := "  "

		// Highlight the error line with a marker
		if lineNum == lineNumber {
			prefix = "> "
		}

		fmt.Fprintf(&result, "%s%4d | %s\n", prefix, lineNum, lines[i])
	}

	return result.String()
}

// exportName turns a hole or module name into an exported Go identifier:
// "main_menu" and "main-menu" become "MainMenu", "title" becomes "Title".
func exportName(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if r == '_' || r == '-' || r == '.' || unicode.IsSpace(r) {
			upper = true
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	out := b.String()
	if out == "" || unicode.IsDigit(rune(out[0])) {
		out = "T" + out
	}
	return out
}
