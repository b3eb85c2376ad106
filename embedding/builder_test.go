package embedding

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/solvent/ai/mock"
	"github.com/poiesic/solvent/catalog"
)

func builderEntries() []*catalog.Entry {
	return []*catalog.Entry{
		{
			ID:          "survey_feedback",
			Name:        "Survey Feedback",
			Category:    "Voice of Customer",
			Description: "Collects structured feedback after purchases",
			Keywords:    []string{"survey", "feedback"},
		},
		{
			ID:          "ticket_routing",
			Name:        "Ticket Routing",
			Category:    "AI Customer Service",
			Description: "Routes support tickets to the right team automatically",
			Keywords:    []string{"routing", "tickets"},
		},
		{
			ID:          "sentiment_trends",
			Name:        "Sentiment Trends",
			Category:    "Insights",
			Description: "Tracks sentiment across feedback channels over time",
			Keywords:    []string{"sentiment", "trends"},
		},
	}
}

func newTestBuilder(t *testing.T, embedder *mock.MockEmbedder, opts ...Option) *Builder {
	t.Helper()
	b, err := NewBuilder(embedder, "test-model", opts...)
	require.NoError(t, err)
	t.Cleanup(b.Release)
	return b
}

func TestNewBuilder_NilEmbedder(t *testing.T) {
	_, err := NewBuilder(nil, "test-model")
	assert.ErrorIs(t, err, ErrNilEmbedder)
}

func TestBuilder_Build(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	b := newTestBuilder(t, embedder)
	entries := builderEntries()

	cache, err := b.Build(context.Background(), entries, nil, false)
	require.NoError(t, err)

	assert.Equal(t, 3, cache.Len())
	assert.Equal(t, "test-model", cache.Meta().Model)
	assert.Equal(t, 384, cache.Meta().Dimensions)
	assert.Equal(t, 3, cache.Meta().EntryCount)
	assert.False(t, cache.Meta().BuiltAt.IsZero())

	for _, e := range entries {
		v, err := cache.Vector(e.ID)
		require.NoError(t, err)
		assert.Len(t, v, 384)

		hash, ok := cache.Hash(e.ID)
		require.True(t, ok)
		assert.Equal(t, e.ContentHash(), hash)
	}
}

func TestBuilder_Build_NormalizesVectors(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i := range texts {
			out[i] = []float32{3, 4}
		}
		return out, nil
	}
	b := newTestBuilder(t, embedder)

	cache, err := b.Build(context.Background(), builderEntries(), nil, false)
	require.NoError(t, err)

	v, err := cache.Vector("survey_feedback")
	require.NoError(t, err)
	assert.InDelta(t, 0.6, float64(v[0]), 1e-6)
	assert.InDelta(t, 0.8, float64(v[1]), 1e-6)
}

func TestBuilder_Build_SecondBuildReusesEverything(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	b := newTestBuilder(t, embedder)
	entries := builderEntries()

	first, err := b.Build(context.Background(), entries, nil, false)
	require.NoError(t, err)
	require.Positive(t, embedder.CallCount(), "first build must call the embedder")

	embedder.Reset()

	second, err := b.Build(context.Background(), entries, first, false)
	require.NoError(t, err)

	assert.Zero(t, embedder.CallCount(), "unchanged catalog should not re-embed anything")
	for _, e := range entries {
		v1, err := first.Vector(e.ID)
		require.NoError(t, err)
		v2, err := second.Vector(e.ID)
		require.NoError(t, err)
		assert.Equal(t, v1, v2, "reused vectors must be identical")
	}
}

func TestBuilder_Build_ForceReembedsEverything(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	b := newTestBuilder(t, embedder)
	entries := builderEntries()

	first, err := b.Build(context.Background(), entries, nil, false)
	require.NoError(t, err)

	embedder.Reset()

	_, err = b.Build(context.Background(), entries, first, true)
	require.NoError(t, err)
	assert.Positive(t, embedder.CallCount(), "force should bypass reuse")
}

func TestBuilder_Build_OnlyChangedEntriesReembedded(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	b := newTestBuilder(t, embedder)
	entries := builderEntries()

	first, err := b.Build(context.Background(), entries, nil, false)
	require.NoError(t, err)

	embedder.Reset()
	var (
		mu       sync.Mutex
		embedded []string
	)
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		mu.Lock()
		embedded = append(embedded, texts...)
		mu.Unlock()
		out := make([][]float32, len(texts))
		for i, text := range texts {
			out[i] = mock.DeterministicVector(text, 384)
		}
		return out, nil
	}

	entries[1].Description = "Routes support tickets with updated logic"

	second, err := b.Build(context.Background(), entries, first, false)
	require.NoError(t, err)

	require.Len(t, embedded, 1, "only the changed entry should be re-embedded")
	assert.Equal(t, entries[1].CombinedText(), embedded[0])
	assert.Equal(t, 3, second.Len())

	// Unchanged entries keep their previous vectors.
	v1, err := first.Vector("survey_feedback")
	require.NoError(t, err)
	v2, err := second.Vector("survey_feedback")
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
}

func TestBuilder_Build_ModelChangeInvalidatesReuse(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	entries := builderEntries()

	b1 := newTestBuilder(t, embedder)
	first, err := b1.Build(context.Background(), entries, nil, false)
	require.NoError(t, err)

	embedder.Reset()

	b2, err := NewBuilder(embedder, "other-model")
	require.NoError(t, err)
	t.Cleanup(b2.Release)

	_, err = b2.Build(context.Background(), entries, first, false)
	require.NoError(t, err)
	assert.Positive(t, embedder.CallCount(), "a different model must not reuse cached vectors")
}

func TestBuilder_Build_EmbedderFailure(t *testing.T) {
	embedFailure := errors.New("embedding service unavailable")
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, embedFailure
	}
	b := newTestBuilder(t, embedder, WithRetry(2, time.Millisecond))

	_, err := b.Build(context.Background(), builderEntries(), nil, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, embedFailure)
	assert.Equal(t, 2, embedder.CallCount(), "failed batch should be retried")
}

func TestBuilder_Build_CountMismatch(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return make([][]float32, len(texts)-1), nil
	}
	b := newTestBuilder(t, embedder, WithRetry(1, time.Millisecond))

	_, err := b.Build(context.Background(), builderEntries(), nil, false)
	assert.ErrorIs(t, err, ErrEmbeddingCount)
}

func TestBuilder_Build_DimensionMismatch(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i, text := range texts {
			// Vector length varies with the text, so entries disagree.
			out[i] = make([]float32, len(text))
		}
		return out, nil
	}
	b := newTestBuilder(t, embedder, WithBatchSize(1))

	_, err := b.Build(context.Background(), builderEntries(), nil, false)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestBuilder_Build_EmptyEntries(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	b := newTestBuilder(t, embedder)

	cache, err := b.Build(context.Background(), nil, nil, false)
	require.NoError(t, err)

	assert.Zero(t, cache.Len())
	assert.Zero(t, cache.Meta().EntryCount)
	assert.Zero(t, embedder.CallCount())
}

func TestBuilder_Build_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	embedder := mock.NewMockEmbedder()
	b := newTestBuilder(t, embedder)

	_, err := b.Build(ctx, builderEntries(), nil, false)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, embedder.CallCount())
}
