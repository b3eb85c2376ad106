// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package match

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/poiesic/solvent/ai"
	"github.com/poiesic/solvent/catalog"
	"github.com/poiesic/solvent/embedding"
)

// noteSemanticUnavailable annotates results scored without a query vector so
// reasoning never claims semantic support that was not computed.
const noteSemanticUnavailable = "semantic similarity was not computed for this query"

// Engine scores and ranks catalog entries against pain-point queries. It is
// safe for concurrent use: all state is set at construction and read-only
// afterwards; per-request data lives in the ProcessedQuery.
type Engine struct {
	config     *Config
	normalizer *Normalizer
	embedder   ai.Embedder
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger.With("component", "match-engine")
		return nil
	}
}

// NewEngine creates an engine over the given configuration. A nil config uses
// DefaultConfig. The embedder may be nil: the engine then runs without the
// semantic layer and renormalizes the remaining weights.
//
// Configuration errors are fatal here: an engine is never constructed over
// invalid weights or thresholds.
func NewEngine(config *Config, embedder ai.Embedder, opts ...Option) (*Engine, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		config:     config,
		normalizer: NewNormalizer(config.Synonyms, config.Intents),
		embedder:   embedder,
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Config returns the engine's validated configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// Normalize runs the text pipeline and, when an embedder is configured,
// attaches the query vector, the single blocking call in the request path.
// An embedding failure is not fatal: the query proceeds without a vector and
// the semantic layer scores zero with an annotation.
func (e *Engine) Normalize(ctx context.Context, queryText string) (*ProcessedQuery, error) {
	query, err := e.normalizer.Normalize(queryText)
	if err != nil {
		return nil, err
	}

	if e.embedder == nil {
		return query, nil
	}
	vector, err := e.embedder.EmbedText(ctx, queryText)
	if err != nil {
		e.logger.Warn("query embedding failed, scoring without semantic support", "err", err)
		return query, nil
	}
	query.Vector = vector
	return query, nil
}

// Match normalizes queryText and ranks entries against it using the cached
// entry vectors. maxResults caps the output; values below 1 fall back to the
// configured default. Pure given its inputs: identical query text and cache
// content produce identical output, reasoning text included.
func (e *Engine) Match(ctx context.Context, queryText string, entries []*catalog.Entry, cache *embedding.Cache, maxResults int) ([]*MatchResult, error) {
	query, err := e.Normalize(ctx, queryText)
	if err != nil {
		return nil, err
	}
	return e.MatchQuery(query, entries, cache, maxResults)
}

// MatchQuery ranks entries against an already normalized query. Callers that
// need the ProcessedQuery for their own reporting normalize once and pass it
// here rather than paying a second embedding call through Match.
func (e *Engine) MatchQuery(query *ProcessedQuery, entries []*catalog.Entry, cache *embedding.Cache, maxResults int) ([]*MatchResult, error) {
	if query == nil {
		return nil, ErrEmptyQuery
	}

	scorers, weights := e.buildScorers(cache)
	results := make([]*MatchResult, 0, len(entries))

entryLoop:
	for _, entry := range entries {
		if entry == nil {
			continue
		}

		scores := make(map[Layer]float64, len(scorers))
		var notes []string
		confidence := 0.0
		for i, scorer := range scorers {
			score, err := scorer.Score(query, entry)
			switch {
			case errors.Is(err, ErrNoQueryVector):
				// The query could not be embedded. The layer stays in the
				// breakdown with a zero score and the result says so.
				score = 0
				notes = append(notes, noteSemanticUnavailable)
			case err != nil:
				e.logger.Debug("entry excluded from scoring",
					"entry_id", entry.ID, "layer", scorer.Layer(), "err", err)
				continue entryLoop
			}
			scores[scorer.Layer()] = score
			confidence += weights[i] * score
		}

		if confidence < e.config.Thresholds.Low {
			continue
		}

		matched := matchedKeywords(query, entry)
		results = append(results, &MatchResult{
			Entry:           entry,
			Confidence:      confidence,
			Level:           e.config.Thresholds.Level(confidence),
			Scores:          scores,
			MatchedKeywords: matched,
			Reasoning:       reasoning(query, scores, matched),
			Notes:           notes,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Confidence != results[j].Confidence {
			return results[i].Confidence > results[j].Confidence
		}
		return results[i].Entry.ID < results[j].Entry.ID
	})

	if maxResults < 1 {
		maxResults = e.config.MaxResults
	}
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// buildScorers assembles the scorer set for one request in canonical layer
// order. The semantic layer requires both an embedder and a cache; without
// them it is omitted and the remaining weights are renormalized to sum
// to 1.0, keeping confidence comparable across configurations.
func (e *Engine) buildScorers(cache *embedding.Cache) ([]Scorer, []float64) {
	scorers := make([]Scorer, 0, len(layerOrder))
	scorers = append(scorers,
		exactScorer{},
		fuzzyScorer{synonyms: e.config.Synonyms, floor: e.config.FuzzyFloor},
	)
	if e.embedder != nil && cache != nil {
		scorers = append(scorers, semanticScorer{cache: cache})
	}
	scorers = append(scorers,
		domainScorer{intents: e.config.Intents},
		intentScorer{},
	)

	total := 0.0
	for _, scorer := range scorers {
		total += e.config.Weights.For(scorer.Layer())
	}
	weights := make([]float64, len(scorers))
	for i, scorer := range scorers {
		weights[i] = e.config.Weights.For(scorer.Layer()) / total
	}
	return scorers, weights
}
