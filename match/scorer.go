package match

import "github.com/poiesic/solvent/catalog"

// Layer identifies one independent scoring dimension.
type Layer string

const (
	LayerExact    Layer = "exact"
	LayerFuzzy    Layer = "fuzzy"
	LayerSemantic Layer = "semantic"
	LayerDomain   Layer = "domain"
	LayerIntent   Layer = "intent"
)

// layerOrder is the canonical order for presentation, weight renormalization
// and dominant-layer tie-breaks.
var layerOrder = []Layer{LayerExact, LayerFuzzy, LayerSemantic, LayerDomain, LayerIntent}

// Scorer computes one layer's score for a query against a single entry.
// Implementations are pure (identical inputs yield identical scores) and
// independent: no scorer reads another's output.
type Scorer interface {
	// Layer names the dimension this scorer computes.
	Layer() Layer

	// Score returns the layer score in [0,1]. An error marks the entry or
	// the layer unscorable; it never accompanies a partial score.
	Score(query *ProcessedQuery, entry *catalog.Entry) (float64, error)
}
