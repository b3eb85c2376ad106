package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText_LowercasesAndStripsPunctuation(t *testing.T) {
	assert.Equal(t, "we struggle with collecting customer feedback after purchases",
		cleanText("We struggle with collecting customer feedback after purchases!"))
}

func TestCleanText_KeepsInWordHyphens(t *testing.T) {
	assert.Equal(t, "post-purchase surveys", cleanText("Post-Purchase surveys?"))
}

func TestCleanText_CollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "feedback collection really", cleanText("  feedback,,,   collection!!! (really)  "))
}

func TestTokenize_TrimsDanglingHyphens(t *testing.T) {
	assert.Equal(t, []string{"post-purchase", "flow"}, tokenize("post-purchase- -flow"))
}

func TestKeywordTokens_FiltersStopShortAndNumericTokens(t *testing.T) {
	tokens := tokenize(cleanText("We need 24 surveys to track the NPS score"))
	// "we", "need", "to", "the" are stop words; "24" is numeric; "nps" survives.
	assert.Equal(t, []string{"surveys", "track", "nps", "score"}, keywordTokens(tokens))
}

func TestKeywordTokens_DedupesPreservingFirstOccurrence(t *testing.T) {
	tokens := []string{"feedback", "surveys", "feedback", "collection", "surveys"}
	assert.Equal(t, []string{"feedback", "surveys", "collection"}, keywordTokens(tokens))
}

func TestKeywordTokens_TypicalPainPoint(t *testing.T) {
	tokens := tokenize(cleanText("We struggle with collecting customer feedback after purchases"))
	assert.Equal(t, []string{"struggle", "collecting", "customer", "feedback", "purchases"},
		keywordTokens(tokens))
}
