package repository

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// minTokenLength mirrors the usual full-text minimum token size
const minTokenLength = 3

var stopwords = map[string]struct{}{
	"and": {}, "are": {}, "for": {}, "from": {}, "has": {}, "have": {}, "its": {},
	"not": {}, "the": {}, "this": {}, "that": {}, "was": {}, "were": {}, "with": {},
	"into": {}, "under": {}, "use": {}, "used": {}, "you": {}, "your": {},
}

// tokenize case-folds s and splits it into indexable words
func tokenize(s string) []string {
	folded := cases.Fold().String(s)
	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) < minTokenLength {
			continue
		}
		if _, stop := stopwords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// uniqueTokens tokenizes s and drops repeated words, keeping first-seen order
func uniqueTokens(s string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, tok := range tokenize(s) {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
