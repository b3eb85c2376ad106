package match

import (
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/poiesic/solvent/catalog"
	"github.com/poiesic/solvent/embedding"
)

var (
	_ Scorer = exactScorer{}
	_ Scorer = fuzzyScorer{}
	_ Scorer = semanticScorer{}
	_ Scorer = domainScorer{}
	_ Scorer = intentScorer{}
)

// exactScorer scores verbatim keyword overlap: the share of query keyword
// tokens found in the entry's keyword set. Pure set overlap without synonym
// expansion, so literal mentions stay precise.
type exactScorer struct{}

func (exactScorer) Layer() Layer { return LayerExact }

func (exactScorer) Score(query *ProcessedQuery, entry *catalog.Entry) (float64, error) {
	keywords := entryKeywordSet(entry)
	hits := 0
	for _, token := range query.Keywords {
		if keywords[token] {
			hits++
		}
	}
	return float64(hits) / float64(max(1, len(query.Keywords))), nil
}

// fuzzyScorer scores near-miss terminology. For each query keyword token it
// takes the best normalized Levenshtein similarity over the token's synonym
// variants against the entry's keywords, then averages the per-token bests.
// Bests under the floor contribute zero so noise tokens cannot inflate the
// average.
type fuzzyScorer struct {
	synonyms SynonymTable
	floor    float64
}

func (fuzzyScorer) Layer() Layer { return LayerFuzzy }

func (s fuzzyScorer) Score(query *ProcessedQuery, entry *catalog.Entry) (float64, error) {
	if len(query.Keywords) == 0 {
		return 0, nil
	}

	sum := 0.0
	for _, token := range query.Keywords {
		best := 0.0
		for _, variant := range s.synonyms.Variants(token) {
			for _, keyword := range entry.Keywords {
				sim, err := edlib.StringsSimilarity(variant, strings.ToLower(keyword), edlib.Levenshtein)
				if err != nil {
					continue
				}
				if float64(sim) > best {
					best = float64(sim)
				}
			}
		}
		if best >= s.floor {
			sum += best
		}
	}
	return sum / float64(len(query.Keywords)), nil
}

// semanticScorer scores meaning overlap as the clamped cosine similarity
// between the query vector and the entry's cached vector.
type semanticScorer struct {
	cache *embedding.Cache
}

func (semanticScorer) Layer() Layer { return LayerSemantic }

func (s semanticScorer) Score(query *ProcessedQuery, entry *catalog.Entry) (float64, error) {
	if len(query.Vector) == 0 {
		return 0, ErrNoQueryVector
	}
	vector, err := s.cache.Vector(entry.ID)
	if err != nil {
		return 0, err
	}
	return embedding.CosineSimilarity(query.Vector, vector), nil
}

// domainScorer scores taxonomy alignment between the classified query intent
// and the entry's placement: full credit when the intent maps to the entry's
// category, half when only the subcategory mapping matches.
type domainScorer struct {
	intents []IntentCategory
}

func (domainScorer) Layer() Layer { return LayerDomain }

func (s domainScorer) Score(query *ProcessedQuery, entry *catalog.Entry) (float64, error) {
	intent := intentByName(s.intents, query.Intent)
	if intent == nil {
		// GeneralIntent maps to nothing.
		return 0, nil
	}
	for _, category := range intent.Categories {
		if strings.EqualFold(category, entry.Category) {
			return 1.0, nil
		}
	}
	for _, subcategory := range intent.Subcategories {
		if strings.EqualFold(subcategory, entry.Subcategory) {
			return 0.5, nil
		}
	}
	return 0, nil
}

// intentScorer scores pain-point alignment: the best token-overlap ratio
// between the expanded query tokens and any single tokenized pain-point
// phrase. The best phrase wins outright, so one strong pain-point match is
// not diluted by many weak ones.
type intentScorer struct{}

func (intentScorer) Layer() Layer { return LayerIntent }

func (intentScorer) Score(query *ProcessedQuery, entry *catalog.Entry) (float64, error) {
	expanded := tokenSet(query.Expanded)
	best := 0.0
	for _, phrase := range entry.PainPointsAddressed {
		tokens := keywordTokens(tokenize(cleanText(phrase)))
		if len(tokens) == 0 {
			continue
		}
		hits := 0
		for _, token := range tokens {
			if expanded[token] {
				hits++
			}
		}
		if ratio := float64(hits) / float64(len(tokens)); ratio > best {
			best = ratio
		}
	}
	return best, nil
}

// entryKeywordSet lowercases the entry's declared keywords for
// case-insensitive comparison against query tokens.
func entryKeywordSet(entry *catalog.Entry) map[string]bool {
	set := make(map[string]bool, len(entry.Keywords))
	for _, keyword := range entry.Keywords {
		set[strings.ToLower(keyword)] = true
	}
	return set
}
