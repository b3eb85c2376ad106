package breaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/solvent/ai/mock"
)

func testSettings() Settings {
	return Settings{
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		MinRequests:  3,
		FailureRatio: 0.5,
	}
}

func TestNew(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		wrapped, err := New(mock.NewMockEmbedder(), DefaultSettings(), "test")
		require.NoError(t, err)
		assert.NotNil(t, wrapped)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := New(nil, DefaultSettings(), "test")
		assert.ErrorIs(t, err, ErrNilEmbedder)
	})
}

func TestEmbedder_PassThrough(t *testing.T) {
	inner := mock.NewMockEmbedder()
	wrapped, err := New(inner, testSettings(), "test")
	require.NoError(t, err)

	ctx := context.Background()

	vector, err := wrapped.EmbedText(ctx, "hello")
	require.NoError(t, err)
	assert.Len(t, vector, 384)
	assert.Equal(t, mock.DeterministicVector("hello", 384), vector)

	vectors, err := wrapped.EmbedTexts(ctx, []string{"a", "b"})
	require.NoError(t, err)
	assert.Len(t, vectors, 2)

	assert.Equal(t, 2, inner.CallCount())
}

func TestEmbedder_TripsOnRepeatedFailures(t *testing.T) {
	inner := mock.NewMockEmbedder()
	failure := errors.New("embedding service down")
	inner.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, failure
	}

	wrapped, err := New(inner, testSettings(), "test")
	require.NoError(t, err)

	ctx := context.Background()

	// Enough failures to cross MinRequests at a 100% failure ratio.
	for i := 0; i < 3; i++ {
		_, err := wrapped.EmbedText(ctx, "query")
		assert.ErrorIs(t, err, failure)
	}

	// Breaker is now open: the inner embedder must not be reached.
	before := inner.CallCount()
	_, err = wrapped.EmbedText(ctx, "query")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, before, inner.CallCount())
}

func TestEmbedder_SuccessKeepsBreakerClosed(t *testing.T) {
	inner := mock.NewMockEmbedder()
	wrapped, err := New(inner, testSettings(), "test")
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		_, err := wrapped.EmbedText(ctx, "query")
		require.NoError(t, err)
	}
	assert.Equal(t, 10, inner.CallCount())
}
