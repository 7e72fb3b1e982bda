package lexicon

import (
	"strings"
	"unicode"
)

// #region stopwords
// Stopwords contains common English words excluded from key-term extraction.
var Stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true,
	"was": true, "were": true, "do": true, "does": true, "did": true,
	"have": true, "has": true, "had": true, "be": true, "been": true,
	"being": true, "will": true, "would": true, "could": true, "should": true,
	"may": true, "might": true, "can": true, "shall": true, "not": true,
	"no": true, "and": true, "or": true, "but": true, "if": true,
	"then": true, "than": true, "so": true, "as": true, "at": true,
	"by": true, "for": true, "from": true, "in": true, "into": true,
	"of": true, "on": true, "to": true, "with": true, "about": true,
	"up": true, "out": true, "it": true, "its": true, "this": true,
	"that": true, "what": true, "which": true, "who": true, "how": true,
	"when": true, "where": true, "why": true, "you": true, "me": true,
	"i": true, "my": true, "your": true, "we": true, "they": true,
	"he": true, "she": true, "her": true, "him": true, "us": true,
	"them": true, "tell": true, "please": true, "explain": true,
}

// Normalize lowercases s and drops every rune that is not a letter or digit.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Tokenize splits text into lowercase alphanumeric words longer than minLen.
// Duplicates are kept.
func Tokenize(text string, minLen int) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len([]rune(w)) > minLen {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// KeyTerms returns up to n whitespace tokens of text whose normalized form is
// non-empty and not a stopword. Original casing is kept; surrounding
// punctuation is trimmed.
func KeyTerms(text string, n int) []string {
	var terms []string
	for _, tok := range strings.Fields(text) {
		if len(terms) >= n {
			break
		}
		norm := Normalize(tok)
		if norm == "" || Stopwords[norm] {
			continue
		}
		terms = append(terms, strings.TrimFunc(tok, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}))
	}
	return terms
}

// #endregion stopwords
