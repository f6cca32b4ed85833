package compiler

// SplitOnSpaces splits s on runs of whitespace. A token that starts with a
// double quote runs to the next unescaped double quote, which admits spaces
// and the empty token (""). A backslash right before a quote keeps the quote
// from closing the token; no other escape is interpreted and the backslash
// stays in the token.
func SplitOnSpaces(s string) ([]string, error) {
	var tokens []string
	i := 0
	for i < len(s) {
		c := s[i]
		if isSpace(c) {
			i++
			continue
		}
		if c == '"' {
			j := i + 1
			for {
				if j >= len(s) {
					return nil, &SyntaxError{Err: ErrUnterminatedQuote, Fragment: s}
				}
				if s[j] == '"' && s[j-1] != '\\' {
					break
				}
				j++
			}
			tokens = append(tokens, s[i+1:j])
			i = j + 1
			continue
		}
		j := i
		for j < len(s) && !isSpace(s[j]) {
			j++
		}
		tokens = append(tokens, s[i:j])
		i = j
	}
	return tokens, nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// ValidIdentifier reports whether s is a hole or function name:
// a lowercase ASCII letter followed by ASCII letters, digits or underscores.
func ValidIdentifier(s string) bool {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9', c == '_':
		default:
			return false
		}
	}
	return true
}
