package ingest

import "strings"

// Normalize lowercases text and trims surrounding whitespace.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Tokenize splits text into normalized tokens. A token is a maximal run
// of ASCII letters, digits, and apostrophes; everything else separates.
// Tokens are returned in input order.
func Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	for _, r := range Normalize(text) {
		if isTokenRune(r) {
			current.WriteRune(r)
		} else if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	// Don't forget the last token
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// TokenSet returns the distinct tokens of text as a membership set.
func TokenSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

func isTokenRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '\''
}
