package match

import "fmt"

// ProcessedQuery is the normalized, read-only view of one query. It is
// created once per request and consumed by all five scoring layers.
type ProcessedQuery struct {
	// Original is the raw input text.
	Original string

	// Cleaned is the lowercased, punctuation-stripped text.
	Cleaned string

	// Tokens are all words of Cleaned, stop words included.
	Tokens []string

	// Keywords are the content tokens: no stop words, no short tokens, no
	// pure numbers, deduplicated in first-occurrence order. This is the
	// token set exact matching scores against.
	Keywords []string

	// Expanded is Keywords plus every synonym-table equivalent, originals
	// first. The fuzzy, domain and intent paths read it; exact matching
	// never does.
	Expanded []string

	// Intent is the classified intent category name, or GeneralIntent.
	Intent string

	// Vector is the query embedding. It is nil when no embedder is
	// configured or the embedding call failed; the engine fills it after
	// normalization.
	Vector []float32
}

// Normalizer turns raw query text into a ProcessedQuery. It is pure text
// work; the engine attaches the embedding vector separately, so the
// normalizer stays trivially testable.
type Normalizer struct {
	synonyms SynonymTable
	intents  []IntentCategory
}

// NewNormalizer creates a normalizer over the given vocabulary tables.
func NewNormalizer(synonyms SynonymTable, intents []IntentCategory) *Normalizer {
	return &Normalizer{synonyms: synonyms, intents: intents}
}

// Normalize cleans and tokenizes raw text, extracts keywords, expands them
// through the synonym table and classifies the query intent.
// Returns ErrEmptyQuery when no keyword survives filtering.
func (n *Normalizer) Normalize(raw string) (*ProcessedQuery, error) {
	cleaned := cleanText(raw)
	tokens := tokenize(cleaned)
	keywords := keywordTokens(tokens)
	if len(keywords) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyQuery, raw)
	}

	expanded := n.synonyms.Expand(keywords)
	return &ProcessedQuery{
		Original: raw,
		Cleaned:  cleaned,
		Tokens:   tokens,
		Keywords: keywords,
		Expanded: expanded,
		Intent:   classifyIntent(expanded, n.intents),
	}, nil
}
