package match

import (
	"fmt"
	"strings"

	"github.com/poiesic/solvent/catalog"
)

// matchedKeywords returns the entry keywords the query mentions verbatim,
// deduplicated, in the entry's keyword declaration order.
func matchedKeywords(query *ProcessedQuery, entry *catalog.Entry) []string {
	queryTokens := tokenSet(query.Keywords)
	matched := make([]string, 0, len(entry.Keywords))
	seen := make(map[string]bool, len(entry.Keywords))
	for _, keyword := range entry.Keywords {
		lower := strings.ToLower(keyword)
		if !queryTokens[lower] || seen[lower] {
			continue
		}
		seen[lower] = true
		matched = append(matched, keyword)
	}
	return matched
}

// dominantLayer returns the highest-scoring layer present in scores. Ties
// resolve in canonical layer order so the choice is reproducible.
func dominantLayer(scores map[Layer]float64) Layer {
	var dominant Layer
	best := -1.0
	for _, layer := range layerOrder {
		if score, ok := scores[layer]; ok && score > best {
			best = score
			dominant = layer
		}
	}
	return dominant
}

// reasoning builds the one-sentence justification for a scored entry. The
// template is chosen by the dominant layer and references at most two matched
// keywords or the detected intent, so identical layer scores always produce
// identical text.
func reasoning(query *ProcessedQuery, scores map[Layer]float64, matched []string) string {
	switch dominantLayer(scores) {
	case LayerExact:
		if len(matched) > 0 {
			return fmt.Sprintf("Directly mentions %s from your description.", keywordPhrase(matched))
		}
		return "Shares exact terminology with your description."
	case LayerFuzzy:
		if len(matched) > 0 {
			return fmt.Sprintf("Uses terminology close to %s in your description.", keywordPhrase(matched))
		}
		return "Uses terminology close to the wording of your description."
	case LayerSemantic:
		return "Describes the same kind of problem your description raises."
	case LayerDomain:
		return fmt.Sprintf("Belongs to the product area that serves %s needs.", intentPhrase(query.Intent))
	case LayerIntent:
		return "Addresses pain points that closely mirror your description."
	}
	return "Matched your description across several signals."
}

// keywordPhrase quotes at most two keywords for use inside a sentence.
func keywordPhrase(matched []string) string {
	quoted := make([]string, 0, 2)
	for _, keyword := range matched {
		quoted = append(quoted, fmt.Sprintf("%q", keyword))
		if len(quoted) == 2 {
			break
		}
	}
	return strings.Join(quoted, " and ")
}

// intentPhrase renders an intent category name as prose.
func intentPhrase(intent string) string {
	return strings.ReplaceAll(intent, "_", " ")
}

// ExplainMatch renders a multi-line, human-readable breakdown of one result:
// confidence, level, per-layer scores in canonical order, matched keywords,
// reasoning and notes. Byte-identical across calls with identical input; no
// map is ranged directly.
func ExplainMatch(result *MatchResult) string {
	if result == nil || result.Entry == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", result.Entry.Name, result.Entry.ID)
	fmt.Fprintf(&b, "  confidence: %.3f (%s)\n", result.Confidence, result.Level)
	for _, layer := range layerOrder {
		score, ok := result.Scores[layer]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  %-9s %.3f\n", layer+":", score)
	}
	if len(result.MatchedKeywords) > 0 {
		fmt.Fprintf(&b, "  matched keywords: %s\n", strings.Join(result.MatchedKeywords, ", "))
	}
	fmt.Fprintf(&b, "  reasoning: %s\n", result.Reasoning)
	for _, note := range result.Notes {
		fmt.Fprintf(&b, "  note: %s\n", note)
	}
	return b.String()
}
