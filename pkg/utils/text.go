// Package utils provides shared utilities for text, math, and logging.
package utils

import (
	"sort"
	"strings"
	"unicode"
)

// Truncate returns s truncated to maxLen characters, with "..." appended if truncated.
// If maxLen is 0 or negative, returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// NormalizeText lowercases s and collapses internal whitespace to single spaces.
// Used as the dedup key for stored questions.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// stopwords excluded from keyword extraction.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "is": true, "are": true, "was": true, "were": true,
	"can": true, "should": true, "would": true, "could": true, "do": true,
	"does": true, "did": true, "how": true, "what": true, "when": true,
	"where": true, "why": true, "who": true, "which": true,
}

// ExtractKeywords returns the unique, sorted, stopword-filtered keywords of text.
// Tokens are lowercased, punctuation is treated as whitespace, and tokens of
// length 2 or shorter are dropped.
func ExtractKeywords(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)

	seen := make(map[string]bool)
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 2 || stopwords[word] {
			continue
		}
		seen[word] = true
	}
	keywords := make([]string, 0, len(seen))
	for word := range seen {
		keywords = append(keywords, word)
	}
	sort.Strings(keywords)
	return keywords
}

// KeywordSet converts a keyword slice to a set.
func KeywordSet(keywords []string) map[string]bool {
	set := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		set[k] = true
	}
	return set
}
