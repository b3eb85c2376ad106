package match

import "github.com/poiesic/solvent/catalog"

// Level discretizes a confidence score.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// MatchResult is one ranked recommendation: the matched entry, its aggregate
// confidence, the per-layer breakdown and a human-readable justification.
// Results are immutable once returned and never persisted.
type MatchResult struct {
	// Entry is the matched catalog entry. Shared with the catalog;
	// read-only.
	Entry *catalog.Entry `json:"entry"`

	// Confidence is the weighted combination of the layer scores, in [0,1].
	Confidence float64 `json:"confidence"`

	// Level is Confidence discretized against the configured thresholds.
	Level Level `json:"level"`

	// Scores holds the raw, unweighted per-layer scores behind Confidence.
	// Layers omitted by capability degradation are absent from the map.
	Scores map[Layer]float64 `json:"scores"`

	// MatchedKeywords are the entry keywords the query mentioned verbatim,
	// in the entry's declaration order.
	MatchedKeywords []string `json:"matched_keywords"`

	// Reasoning is a one-sentence justification naming the dominant layer's
	// contribution. Deterministic for identical scores.
	Reasoning string `json:"reasoning"`

	// Notes carries scoring caveats, such as the semantic layer being
	// unavailable for this query.
	Notes []string `json:"notes,omitempty"`
}
