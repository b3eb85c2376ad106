package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyIntent_FeedbackCollection(t *testing.T) {
	expanded := DefaultSynonyms().Expand([]string{"collect", "customer", "feedback"})
	assert.Equal(t, "feedback_collection", classifyIntent(expanded, DefaultIntents()))
}

func TestClassifyIntent_CustomerService(t *testing.T) {
	expanded := DefaultSynonyms().Expand([]string{"support", "ticket", "resolve"})
	assert.Equal(t, "customer_service", classifyIntent(expanded, DefaultIntents()))
}

func TestClassifyIntent_NoOverlapFallsBackToGeneral(t *testing.T) {
	assert.Equal(t, GeneralIntent, classifyIntent([]string{"quantum", "blockchain"}, DefaultIntents()))
}

func TestClassifyIntent_TieKeepsFirstDeclared(t *testing.T) {
	intents := []IntentCategory{
		{Name: "first", Keywords: []string{"alpha", "beta"}},
		{Name: "second", Keywords: []string{"alpha", "gamma"}},
	}
	// "alpha" scores one for both; declaration order breaks the tie.
	assert.Equal(t, "first", classifyIntent([]string{"alpha"}, intents))
}

func TestClassifyIntent_StrictlyGreaterDisplaces(t *testing.T) {
	intents := []IntentCategory{
		{Name: "first", Keywords: []string{"alpha"}},
		{Name: "second", Keywords: []string{"alpha", "beta"}},
	}
	assert.Equal(t, "second", classifyIntent([]string{"alpha", "beta"}, intents))
}

func TestIntentByName(t *testing.T) {
	intents := DefaultIntents()
	require.NotNil(t, intentByName(intents, "automation"))
	assert.Nil(t, intentByName(intents, GeneralIntent), "general maps to no category")
	assert.Nil(t, intentByName(intents, "unheard_of"))
}

func TestDefaultIntents_CategoriesArePopulated(t *testing.T) {
	for _, intent := range DefaultIntents() {
		assert.NotEmpty(t, intent.Keywords, "intent %q", intent.Name)
		assert.NotEmpty(t, intent.Categories, "intent %q", intent.Name)
	}
}
