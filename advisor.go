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


package solvent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/poiesic/solvent/ai"
	"github.com/poiesic/solvent/ai/breaker"
	"github.com/poiesic/solvent/ai/openai"
	"github.com/poiesic/solvent/catalog"
	"github.com/poiesic/solvent/embedding"
	"github.com/poiesic/solvent/match"
	"github.com/poiesic/solvent/storage"
	"github.com/poiesic/solvent/storage/badger"
)

// Version is the release identifier reported by the health endpoint and CLI.
const Version = "1.0.0"

// ErrNoEmbedder is returned by BuildEmbeddings when the advisor was
// constructed without an embedding backend.
var ErrNoEmbedder = errors.New("advisor has no embedder configured")

// Advisor ties the pieces together: the feature catalog, the persisted
// embedding cache, the embedder and the match engine. It is safe for
// concurrent use; the only mutation, BuildEmbeddings, swaps the cache
// pointer under a write lock.
type Advisor struct {
	catalog  *catalog.Catalog
	backend  *badger.Backend
	vectors  storage.VectorRepository
	embedder ai.Embedder
	engine   *match.Engine
	aiConfig *ai.Config
	logger   *slog.Logger

	mu    sync.RWMutex
	cache *embedding.Cache
}

// Option configures an Advisor.
type Option func(*advisorOptions) error

type advisorOptions struct {
	aiConfig    *ai.Config
	matchConfig *match.Config
	embedder    ai.Embedder
	noEmbedder  bool
	breaker     *breaker.Settings
	inMemory    bool
	logger      *slog.Logger
}

// WithAIConfig sets the embedding service configuration.
func WithAIConfig(config *ai.Config) Option {
	return func(o *advisorOptions) error {
		if config == nil {
			return errors.New("ai config must not be nil")
		}
		o.aiConfig = config
		return nil
	}
}

// WithMatchConfig sets the match engine configuration.
// Default is match.DefaultConfig(); validation happens when the engine is
// constructed.
func WithMatchConfig(config *match.Config) Option {
	return func(o *advisorOptions) error {
		o.matchConfig = config
		return nil
	}
}

// WithEmbedder injects a ready-made embedder, bypassing the OpenAI client
// and circuit breaker construction. Intended for tests and for embedders
// assembled elsewhere.
func WithEmbedder(embedder ai.Embedder) Option {
	return func(o *advisorOptions) error {
		if embedder == nil {
			return breaker.ErrNilEmbedder
		}
		o.embedder = embedder
		return nil
	}
}

// WithoutEmbedder disables semantic scoring entirely: the advisor serves the
// text layers only and BuildEmbeddings fails with ErrNoEmbedder.
func WithoutEmbedder() Option {
	return func(o *advisorOptions) error {
		o.noEmbedder = true
		return nil
	}
}

// WithBreakerSettings overrides the circuit breaker wrapped around the
// constructed embedder. Ignored when WithEmbedder or WithoutEmbedder is used.
func WithBreakerSettings(settings breaker.Settings) Option {
	return func(o *advisorOptions) error {
		o.breaker = &settings
		return nil
	}
}

// WithInMemoryStore keeps the vector store in memory, ignoring the dbPath
// given to New. Nothing survives a restart; intended for tests.
func WithInMemoryStore() Option {
	return func(o *advisorOptions) error {
		o.inMemory = true
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *advisorOptions) error {
		o.logger = logger
		return nil
	}
}

// New opens an advisor over the catalog JSON at catalogPath and the Badger
// vector store at dbPath. Any persisted embedding cache is loaded at once; an
// absent or stale cache is a warning rather than an error, because the text
// layers keep working without it.
func New(catalogPath, dbPath string, opts ...Option) (*Advisor, error) {
	// Apply options
	options := &advisorOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	logger := options.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "advisor")

	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return nil, err
	}

	// Open vector store
	backend, err := badger.OpenBackend(dbPath, options.inMemory)
	if err != nil {
		return nil, err
	}
	vectors := badger.NewVectorRepository(backend)

	embedder, err := buildEmbedder(options)
	if err != nil {
		backend.Close()
		return nil, err
	}

	engine, err := match.NewEngine(options.matchConfig, embedder, match.WithLogger(logger))
	if err != nil {
		backend.Close()
		return nil, err
	}

	advisor := &Advisor{
		catalog:  cat,
		backend:  backend,
		vectors:  vectors,
		embedder: embedder,
		engine:   engine,
		aiConfig: options.aiConfig,
		logger:   logger,
	}

	cache, err := vectors.Load(context.Background())
	switch {
	case errors.Is(err, storage.ErrNotFound):
		logger.Warn("no embedding cache persisted yet, matching without the semantic layer")
	case err != nil:
		backend.Close()
		return nil, fmt.Errorf("loading embedding cache: %w", err)
	default:
		advisor.cache = cache
		logger.Info("embedding cache loaded",
			"vectors", cache.Len(),
			"model", cache.Meta().Model,
			"dimensions", cache.Meta().Dimensions)
	}

	if err := advisor.VerifyCache(); err != nil {
		logger.Warn("embedding cache needs a rebuild", "err", err)
	}

	return advisor, nil
}

// buildEmbedder resolves the embedder from the options: an injected
// instance, none at all, or an OpenAI-compatible client behind a circuit
// breaker.
func buildEmbedder(options *advisorOptions) (ai.Embedder, error) {
	if options.noEmbedder {
		return nil, nil
	}
	if options.embedder != nil {
		return options.embedder, nil
	}

	inner, err := openai.NewEmbedder(options.aiConfig)
	if err != nil {
		return nil, err
	}

	settings := breaker.DefaultSettings()
	if options.breaker != nil {
		settings = *options.breaker
	}
	return breaker.New(inner, settings, "query-embedder")
}

// Analyze matches painPoint against the catalog and enriches each result
// with guidance text. An empty or all-stop-word pain point returns
// match.ErrEmptyQuery.
func (a *Advisor) Analyze(ctx context.Context, painPoint string, opts *AnalyzeOptions) (*Analysis, error) {
	if opts == nil {
		opts = &AnalyzeOptions{}
	}

	query, err := a.engine.Normalize(ctx, painPoint)
	if err != nil {
		return nil, err
	}

	a.mu.RLock()
	cache := a.cache
	a.mu.RUnlock()

	results, err := a.engine.MatchQuery(query, a.catalog.Entries(), cache, opts.MaxResults)
	if err != nil {
		return nil, err
	}

	recommendations := make([]*Recommendation, 0, len(results))
	for _, result := range results {
		recommendations = append(recommendations, &Recommendation{
			MatchResult:        result,
			HowItHelps:         howItHelps(query, result.Entry),
			ImplementationNote: implementationNote(result.Entry.Category),
		})
	}

	analysis := &Analysis{
		Query:           painPoint,
		Intent:          query.Intent,
		Recommendations: recommendations,
		CacheStale:      a.CacheStale(),
	}
	if opts.IncludeAnalysis {
		analysis.Summary = summarize(query, results)
	}
	return analysis, nil
}

// Explain renders the scoring breakdown of one catalog entry against a pain
// point, including entries that fall below the confidence floor.
func (a *Advisor) Explain(ctx context.Context, painPoint, entryID string) (string, error) {
	entry, err := a.catalog.Entry(entryID)
	if err != nil {
		return "", err
	}

	a.mu.RLock()
	cache := a.cache
	a.mu.RUnlock()

	results, err := a.engine.Match(ctx, painPoint, []*catalog.Entry{entry}, cache, 1)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return fmt.Sprintf("%s (%s)\n  below the confidence floor for this query\n", entry.Name, entry.ID), nil
	}
	return match.ExplainMatch(results[0]), nil
}

// BuildEmbeddings embeds the catalog, persists the resulting cache and swaps
// it in for subsequent queries. With force false, entries unchanged since the
// previous build reuse their stored vectors; force true recomputes all of
// them. Builder options tune batching, retries and progress reporting.
func (a *Advisor) BuildEmbeddings(ctx context.Context, force bool, opts ...embedding.Option) error {
	if a.embedder == nil {
		return ErrNoEmbedder
	}

	a.mu.RLock()
	prev := a.cache
	a.mu.RUnlock()

	builder, err := embedding.NewBuilder(a.embedder, a.aiConfig.Model, opts...)
	if err != nil {
		return err
	}
	defer builder.Release()

	cache, err := builder.Build(ctx, a.catalog.Entries(), prev, force)
	if err != nil {
		return err
	}
	if err := a.vectors.Save(ctx, cache); err != nil {
		return fmt.Errorf("persisting embedding cache: %w", err)
	}

	a.mu.Lock()
	a.cache = cache
	a.mu.Unlock()

	a.logger.Info("embedding cache rebuilt", "vectors", cache.Len(), "model", cache.Meta().Model)
	return nil
}

// VerifyCache returns nil when every catalog entry has a current cached
// vector, and an error wrapping embedding.ErrStaleCache otherwise. Matching
// never fails on a stale cache; this is for operators deciding whether to
// rebuild.
func (a *Advisor) VerifyCache() error {
	a.mu.RLock()
	cache := a.cache
	a.mu.RUnlock()

	entries := a.catalog.Entries()
	if cache == nil {
		if len(entries) == 0 {
			return nil
		}
		return fmt.Errorf("%w: no cache built for %d entries", embedding.ErrStaleCache, len(entries))
	}
	if stale := cache.StaleIDs(entries); len(stale) > 0 {
		return fmt.Errorf("%w: %d of %d entries affected", embedding.ErrStaleCache, len(stale), len(entries))
	}
	return nil
}

// CacheStale reports whether VerifyCache would fail.
func (a *Advisor) CacheStale() bool {
	return a.VerifyCache() != nil
}

// Entry returns the catalog entry with the given id.
func (a *Advisor) Entry(id string) (*catalog.Entry, error) {
	return a.catalog.Entry(id)
}

// Categories returns every catalog category with its entry count.
func (a *Advisor) Categories() []catalog.CategorySummary {
	return a.catalog.Categories()
}

// EntriesByCategory returns the entries of one category, matched
// case-insensitively.
func (a *Advisor) EntriesByCategory(name string) []*catalog.Entry {
	return a.catalog.EntriesByCategory(name)
}

// Catalog exposes the loaded catalog.
func (a *Advisor) Catalog() *catalog.Catalog {
	return a.catalog
}

// Stats describes the advisor's current state for health and CLI reporting.
type Stats struct {
	Version       string    `json:"version"`
	Entries       int       `json:"entries"`
	Categories    int       `json:"categories"`
	CachedVectors int       `json:"cached_vectors"`
	Model         string    `json:"model,omitempty"`
	Dimensions    int       `json:"dimensions,omitempty"`
	BuiltAt       time.Time `json:"built_at"`
	StaleEntries  int       `json:"stale_entries"`
	SemanticReady bool      `json:"semantic_ready"`
}

// Stats reports catalog and cache state.
func (a *Advisor) Stats() Stats {
	a.mu.RLock()
	cache := a.cache
	a.mu.RUnlock()

	stats := Stats{
		Version:       Version,
		Entries:       a.catalog.Len(),
		Categories:    len(a.catalog.Categories()),
		SemanticReady: a.embedder != nil && cache != nil,
	}
	if cache == nil {
		stats.StaleEntries = a.catalog.Len()
		return stats
	}

	meta := cache.Meta()
	stats.CachedVectors = cache.Len()
	stats.Model = meta.Model
	stats.Dimensions = meta.Dimensions
	stats.BuiltAt = meta.BuiltAt
	stats.StaleEntries = len(cache.StaleIDs(a.catalog.Entries()))
	return stats
}

// Close releases the vector store. The advisor must not be used afterwards.
func (a *Advisor) Close() error {
	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing vector store", "err", err)
		return err
	}
	return nil
}
