package solvent

import (
	"strings"

	"github.com/poiesic/solvent/catalog"
	"github.com/poiesic/solvent/match"
)

// AnalyzeOptions tune a single Analyze call.
type AnalyzeOptions struct {
	// MaxResults caps the number of recommendations. Values below 1 fall
	// back to the match configuration's default.
	MaxResults int

	// IncludeAnalysis attaches the aggregate Summary to the result.
	IncludeAnalysis bool
}

// Analysis is the complete outcome of one pain-point analysis.
type Analysis struct {
	// Query is the pain point exactly as submitted.
	Query string `json:"pain_point"`

	// Intent is the classified intent of the query, or "general".
	Intent string `json:"intent"`

	// Recommendations are the matched entries in descending confidence
	// order, enriched with guidance text.
	Recommendations []*Recommendation `json:"recommendations"`

	// Summary aggregates the result set; present only when requested.
	Summary *Summary `json:"analysis,omitempty"`

	// CacheStale flags that the catalog has changed since the embedding
	// cache was built, so semantic scores may lag the entry text.
	CacheStale bool `json:"cache_stale,omitempty"`
}

// Recommendation is one matched catalog entry enriched with guidance text.
type Recommendation struct {
	*match.MatchResult

	// HowItHelps restates the entry description in terms of the query.
	HowItHelps string `json:"how_it_helps"`

	// ImplementationNote suggests a first adoption step for the entry's
	// category.
	ImplementationNote string `json:"implementation_note"`
}

// Summary aggregates a ranked result set for reporting.
type Summary struct {
	// Complexity is a coarse read of the query: over twenty words is
	// "high", over ten "medium", anything shorter "low".
	Complexity string `json:"pain_point_complexity"`

	// WordCount is the number of whitespace-separated words submitted.
	WordCount int `json:"word_count"`

	// SolutionsFound is the number of recommendations returned.
	SolutionsFound int `json:"solutions_found"`

	// TopConfidence is the confidence of the best match, 0 when none.
	TopConfidence float64 `json:"top_confidence"`

	// Categories counts recommendations per catalog category.
	Categories map[string]int `json:"category_distribution"`

	// ConfidenceLevels counts recommendations per confidence level.
	ConfidenceLevels map[string]int `json:"confidence_distribution"`

	// PrimaryCategories lists up to three categories in the order their
	// first recommendation appears in the ranking.
	PrimaryCategories []string `json:"primary_categories"`
}

// howItHelps contextualizes an entry's description against the query
// keywords. The first matching rule wins; entries outside every rule keep
// their plain description.
func howItHelps(query *match.ProcessedQuery, entry *catalog.Entry) string {
	keywords := make(map[string]bool, len(query.Keywords))
	for _, keyword := range query.Keywords {
		keywords[keyword] = true
	}

	switch {
	case keywords["feedback"] && entry.Category == "Voice of Customer":
		return entry.Description + " This directly addresses your feedback collection challenges."
	case keywords["support"] && entry.Category == "AI Customer Service":
		return entry.Description + " This can reduce the burden on your support team."
	case keywords["customer"] && keywords["analysis"]:
		return entry.Description + " This provides the customer insights you need."
	}
	return entry.Description
}

// implementationNote suggests a first adoption step, keyed by category.
func implementationNote(category string) string {
	switch category {
	case "Voice of Customer":
		return "Start with a pilot program focusing on your most important customer touchpoints."
	case "AI Customer Service":
		return "Begin with FAQ automation for your most common support queries."
	case "Insights":
		return "Start by connecting your existing data sources for immediate visibility."
	case "Customer 360":
		return "Begin with integrating your primary customer interaction channels."
	case "AI & Automation":
		return "Start with automating your most repetitive customer service tasks."
	}
	return "Consider implementing this feature as part of your customer experience improvement initiative."
}

// summarize aggregates the ranked results for one query.
func summarize(query *match.ProcessedQuery, results []*match.MatchResult) *Summary {
	words := len(strings.Fields(query.Original))
	complexity := "low"
	switch {
	case words > 20:
		complexity = "high"
	case words > 10:
		complexity = "medium"
	}

	categories := make(map[string]int)
	levels := make(map[string]int)
	var primary []string
	top := 0.0
	for i, result := range results {
		if i == 0 {
			top = result.Confidence
		}
		if categories[result.Entry.Category] == 0 && len(primary) < 3 {
			primary = append(primary, result.Entry.Category)
		}
		categories[result.Entry.Category]++
		levels[string(result.Level)]++
	}

	return &Summary{
		Complexity:        complexity,
		WordCount:         words,
		SolutionsFound:    len(results),
		TopConfidence:     top,
		Categories:        categories,
		ConfidenceLevels:  levels,
		PrimaryCategories: primary,
	}
}
