package match

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// stopWords are function words carrying no matching signal. They are removed
// before keyword extraction so phrasing like "we struggle with X" and
// "struggling with X" yield the same keyword set.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"be": true, "is": true, "are": true, "was": true, "do": true,
	"have": true, "has": true, "it": true, "that": true, "this": true,
	"to": true, "of": true, "in": true, "on": true, "at": true, "for": true,
	"as": true, "by": true, "from": true, "with": true, "not": true,
	"you": true, "we": true, "our": true, "us": true,
	"need": true, "want": true, "can": true, "should": true, "would": true,
	"after": true, "before": true, "during": true,
}

// cleanText lowercases text and replaces punctuation with spaces. Hyphens and
// underscores survive so compound terms like "post-purchase" stay one token.
// Runs of whitespace collapse to single spaces.
func cleanText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// tokenize splits cleaned text into words, trimming hyphens and underscores
// left dangling at token edges.
func tokenize(cleaned string) []string {
	fields := strings.Fields(cleaned)
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		token := strings.Trim(field, "-_")
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// keywordTokens filters tokens down to content words: longer than two runes,
// not a stop word, not a pure number. Duplicates are dropped with
// first-occurrence order preserved, which keeps downstream expansion and
// scoring deterministic.
func keywordTokens(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	keywords := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if utf8.RuneCountInString(token) <= 2 || stopWords[token] || isNumeric(token) {
			continue
		}
		if seen[token] {
			continue
		}
		seen[token] = true
		keywords = append(keywords, token)
	}
	return keywords
}

func isNumeric(token string) bool {
	for _, r := range token {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// tokenSet builds a membership set over tokens.
func tokenSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		set[token] = true
	}
	return set
}
