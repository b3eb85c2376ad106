package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poiesic/solvent/catalog"
)

func TestMatchedKeywords_EntryDeclarationOrder(t *testing.T) {
	entry := &catalog.Entry{
		ID:       "e",
		Name:     "E",
		Category: "C",
		Keywords: []string{"survey", "feedback", "collection"},
	}
	query := testQuery(t, "collection feedback collection feedback")
	assert.Equal(t, []string{"feedback", "collection"}, matchedKeywords(query, entry),
		"order follows the entry's keyword declaration, not the query")
}

func TestMatchedKeywords_CaseInsensitivePreservesEntryCasing(t *testing.T) {
	entry := &catalog.Entry{ID: "e", Name: "E", Category: "C", Keywords: []string{"NPS", "feedback"}}
	query := testQuery(t, "improve nps feedback")
	assert.Equal(t, []string{"NPS", "feedback"}, matchedKeywords(query, entry))
}

func TestDominantLayer_TieResolvesInCanonicalOrder(t *testing.T) {
	scores := map[Layer]float64{
		LayerExact:    0.5,
		LayerFuzzy:    0.9,
		LayerSemantic: 0.9,
		LayerDomain:   0.2,
		LayerIntent:   0.1,
	}
	assert.Equal(t, LayerFuzzy, dominantLayer(scores), "fuzzy precedes semantic in canonical order")
}

func TestReasoning_Deterministic(t *testing.T) {
	query := testQuery(t, "collect customer feedback")
	scores := map[Layer]float64{LayerExact: 0.8, LayerFuzzy: 0.4}
	matched := []string{"collect", "feedback", "surveys"}

	first := reasoning(query, scores, matched)
	assert.Equal(t, first, reasoning(query, scores, matched))
	assert.Equal(t, `Directly mentions "collect" and "feedback" from your description.`, first,
		"at most two keywords are referenced")
}

func TestReasoning_DomainTemplateNamesIntent(t *testing.T) {
	query := testQuery(t, "collect customer feedback")
	scores := map[Layer]float64{LayerExact: 0.1, LayerDomain: 1.0}
	assert.Equal(t, "Belongs to the product area that serves feedback collection needs.",
		reasoning(query, scores, nil))
}

func TestExplainMatch_Format(t *testing.T) {
	result := &MatchResult{
		Entry: &catalog.Entry{
			ID:       "survey_feedback",
			Name:     "Automated Post-Purchase Surveys",
			Category: "Voice of Customer",
			Keywords: []string{"survey"},
		},
		Confidence:      0.68,
		Level:           LevelHigh,
		Scores:          map[Layer]float64{LayerExact: 0.2, LayerFuzzy: 0.36, LayerSemantic: 1, LayerDomain: 1, LayerIntent: 1},
		MatchedKeywords: []string{"feedback"},
		Reasoning:       "Describes the same kind of problem your description raises.",
	}

	expected := "Automated Post-Purchase Surveys (survey_feedback)\n" +
		"  confidence: 0.680 (high)\n" +
		"  exact:    0.200\n" +
		"  fuzzy:    0.360\n" +
		"  semantic: 1.000\n" +
		"  domain:   1.000\n" +
		"  intent:   1.000\n" +
		"  matched keywords: feedback\n" +
		"  reasoning: Describes the same kind of problem your description raises.\n"
	assert.Equal(t, expected, ExplainMatch(result))
	assert.Equal(t, ExplainMatch(result), ExplainMatch(result), "byte-identical across calls")
}

func TestExplainMatch_OmitsAbsentLayers(t *testing.T) {
	result := &MatchResult{
		Entry:      &catalog.Entry{ID: "e", Name: "E", Category: "C", Keywords: []string{"k"}},
		Confidence: 0.5,
		Level:      LevelMedium,
		Scores:     map[Layer]float64{LayerExact: 1, LayerFuzzy: 0.2, LayerDomain: 0, LayerIntent: 0},
		Reasoning:  "r",
	}
	assert.NotContains(t, ExplainMatch(result), "semantic")
}

func TestExplainMatch_IncludesNotes(t *testing.T) {
	result := &MatchResult{
		Entry:      &catalog.Entry{ID: "e", Name: "E", Category: "C", Keywords: []string{"k"}},
		Confidence: 0.33,
		Level:      LevelLow,
		Scores:     map[Layer]float64{LayerSemantic: 0},
		Reasoning:  "r",
		Notes:      []string{noteSemanticUnavailable},
	}
	assert.Contains(t, ExplainMatch(result), "note: "+noteSemanticUnavailable)
}

func TestExplainMatch_NilSafe(t *testing.T) {
	assert.Equal(t, "", ExplainMatch(nil))
	assert.Equal(t, "", ExplainMatch(&MatchResult{}))
}
