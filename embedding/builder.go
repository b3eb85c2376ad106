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


package embedding

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/solvent/ai"
	"github.com/poiesic/solvent/catalog"
)

const (
	defaultBatchSize      = 100
	defaultMaxAttempts    = 3
	defaultRetryDelay     = time.Second
	defaultReportInterval = 100
)

// Builder embeds catalog entries and assembles them into a Cache. Entries
// whose content hash matches a previous cache are reused without calling the
// embedder, so repeated builds over an unchanged catalog are free. Batches
// are embedded concurrently over a worker pool.
type Builder struct {
	embedder       ai.Embedder
	model          string
	pool           *ants.Pool
	batchSize      int
	maxAttempts    int
	retryDelay     time.Duration
	progressWriter io.Writer
	reportInterval int
	logger         *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder) error

// WithPoolSize sets the worker pool size for concurrent batch embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(b *Builder) error {
		if size < 1 {
			size = 1
		}

		if b.pool != nil {
			b.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		b.pool = pool
		return nil
	}
}

// WithBatchSize sets how many entries are embedded per request.
// Default is 100.
func WithBatchSize(size int) Option {
	return func(b *Builder) error {
		if size < 1 {
			return fmt.Errorf("batch size must be positive, got %d", size)
		}
		b.batchSize = size
		return nil
	}
}

// WithRetry sets the retry budget for failed embedding requests. The delay
// doubles after each failed attempt. Defaults are 3 attempts starting at
// one second.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(b *Builder) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		b.maxAttempts = maxAttempts
		b.retryDelay = baseDelay
		return nil
	}
}

// WithProgress directs progress reporting to w. Default is no output.
func WithProgress(w io.Writer) Option {
	return func(b *Builder) error {
		b.progressWriter = w
		return nil
	}
}

// WithReportInterval sets how many entries pass between progress reports.
// Default is 100.
func WithReportInterval(n int) Option {
	return func(b *Builder) error {
		if n < 1 {
			return fmt.Errorf("report interval must be positive, got %d", n)
		}
		b.reportInterval = n
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger.With("component", "embedding-builder")
		return nil
	}
}

// NewBuilder creates a builder that embeds entries with embedder and stamps
// caches with the given model name. The model name participates in reuse:
// records from a previous cache built with a different model are never
// reused.
func NewBuilder(embedder ai.Embedder, model string, opts ...Option) (*Builder, error) {
	if embedder == nil {
		return nil, ErrNilEmbedder
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		embedder:       embedder,
		model:          model,
		pool:           pool,
		batchSize:      defaultBatchSize,
		maxAttempts:    defaultMaxAttempts,
		retryDelay:     defaultRetryDelay,
		reportInterval: defaultReportInterval,
		logger:         slog.Default().With("component", "embedding-builder"),
	}

	for _, opt := range opts {
		if optErr := opt(b); optErr != nil {
			b.Release()
			return nil, optErr
		}
	}

	return b, nil
}

// Build embeds every entry and returns a new Cache. When prev is non-nil
// and force is false, entries whose content hash and model match a previous
// record reuse its vector without an embedder call. Any embedding failure
// fails the whole build; partial caches are never returned.
func (b *Builder) Build(ctx context.Context, entries []*catalog.Entry, prev *Cache, force bool) (*Cache, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()

	reused := make(map[string]*Record)
	var pending []*catalog.Entry
	for _, e := range entries {
		if r := b.reusable(e, prev, force); r != nil {
			reused[e.ID] = r
			continue
		}
		pending = append(pending, e)
	}

	b.logger.Info("building embedding cache",
		"entries", len(entries),
		"reused", len(reused),
		"pending", len(pending),
		"force", force)

	fresh, err := b.embedPending(ctx, pending)
	if err != nil {
		return nil, err
	}

	records := make([]*Record, 0, len(entries))
	dims := 0
	for _, e := range entries {
		r, ok := reused[e.ID]
		if !ok {
			r = fresh[e.ID]
		}
		if r == nil {
			return nil, fmt.Errorf("entry %q: %w", e.ID, ErrMissingEmbedding)
		}
		if dims == 0 {
			dims = len(r.Vector)
		} else if len(r.Vector) != dims {
			return nil, fmt.Errorf("%w: entry %q has %d dimensions, want %d",
				ErrDimensionMismatch, e.ID, len(r.Vector), dims)
		}
		records = append(records, r)
	}

	meta := Meta{
		Model:      b.model,
		Dimensions: dims,
		EntryCount: len(records),
		BuiltAt:    time.Now().UTC(),
	}

	b.logger.Info("embedding cache built",
		"entries", len(records),
		"dimensions", dims,
		"elapsed", time.Since(start).Round(time.Millisecond))

	return NewCache(meta, records), nil
}

// reusable returns the previous record for e when its vector can be carried
// over unchanged, or nil when e must be re-embedded.
func (b *Builder) reusable(e *catalog.Entry, prev *Cache, force bool) *Record {
	if force || prev == nil || prev.Meta().Model != b.model {
		return nil
	}
	r, ok := prev.records[e.ID]
	if !ok || len(r.Vector) == 0 || r.ContentHash != e.ContentHash() {
		return nil
	}
	return &Record{EntryID: r.EntryID, ContentHash: r.ContentHash, Vector: r.Vector}
}

// embedPending fans batches of entries out over the worker pool and collects
// the resulting records by entry id.
func (b *Builder) embedPending(ctx context.Context, pending []*catalog.Entry) (map[string]*Record, error) {
	results := make(map[string]*Record, len(pending))
	if len(pending) == 0 {
		return results, nil
	}

	tracker := NewProgressTracker(b.progressWriter, len(pending), b.reportInterval)
	tracker.Start()

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		errs []error
	)

	for i := 0; i < len(pending); i += b.batchSize {
		end := i + b.batchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[i:end]

		wg.Add(1)
		submitErr := b.pool.Submit(func() {
			defer wg.Done()

			records, err := b.embedBatch(ctx, batch)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			for _, r := range records {
				results[r.EntryID] = r
			}
			tracker.Update(len(records))
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, submitErr)
			mu.Unlock()
			break
		}
	}

	wg.Wait()
	tracker.Finish()

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return results, nil
}

// embedBatch embeds one batch of entries, retrying transient failures, and
// L2-normalizes the resulting vectors.
func (b *Builder) embedBatch(ctx context.Context, batch []*catalog.Entry) ([]*Record, error) {
	texts := make([]string, len(batch))
	for i, e := range batch {
		texts[i] = e.CombinedText()
	}

	var vectors [][]float32
	operation := func() error {
		var err error
		vectors, err = b.embedder.EmbedTexts(ctx, texts)
		return err
	}
	if err := RetryWithBackoff(ctx, operation, b.maxAttempts, b.retryDelay); err != nil {
		return nil, fmt.Errorf("embedding batch of %d entries: %w", len(batch), err)
	}

	if len(vectors) != len(batch) {
		return nil, fmt.Errorf("%w: got %d vectors for %d entries",
			ErrEmbeddingCount, len(vectors), len(batch))
	}

	records := make([]*Record, len(batch))
	for i, e := range batch {
		records[i] = &Record{
			EntryID:     e.ID,
			ContentHash: e.ContentHash(),
			Vector:      NormalizeVector(vectors[i]),
		}
	}

	b.logger.Debug("embedded batch", "entries", len(batch))
	return records, nil
}

// Release frees the worker pool. The builder must not be used afterwards.
func (b *Builder) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}
