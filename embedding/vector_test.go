package embedding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func magnitude(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

func TestNormalizeVector_UnitLength(t *testing.T) {
	v := []float32{3, 4}

	got := NormalizeVector(v)

	require.Len(t, got, 2)
	assert.InDelta(t, 1.0, magnitude(got), 1e-6, "normalized vector should have unit length")
	assert.InDelta(t, 0.6, float64(got[0]), 1e-6)
	assert.InDelta(t, 0.8, float64(got[1]), 1e-6)
}

func TestNormalizeVector_ZeroVector(t *testing.T) {
	got := NormalizeVector([]float32{0, 0, 0})

	require.Len(t, got, 3)
	for _, x := range got {
		assert.Zero(t, x, "zero vector should stay zero")
	}
}

func TestNormalizeVector_DoesNotModifyInput(t *testing.T) {
	v := []float32{1, 2, 2}

	NormalizeVector(v)

	assert.Equal(t, []float32{1, 2, 2}, v)
}

func TestNormalizeVector_Empty(t *testing.T) {
	got := NormalizeVector(nil)
	assert.Empty(t, got)
}

func TestCosineSimilarity_IdenticalVectors(t *testing.T) {
	v := []float32{0.1, 0.5, 0.3}

	got := CosineSimilarity(v, v)

	assert.InDelta(t, 1.0, got, 1e-6, "identical vectors should score 1.0")
}

func TestCosineSimilarity_ScaleInvariant(t *testing.T) {
	a := []float32{0.2, 0.7, 0.1, 0.4}
	b := []float32{0.5, 0.1, 0.9, 0.3}
	scaled := make([]float32, len(a))
	for i, x := range a {
		scaled[i] = x * 7
	}

	assert.InDelta(t, CosineSimilarity(a, b), CosineSimilarity(scaled, b), 1e-6,
		"cosine similarity should be invariant under scaling")
}

func TestCosineSimilarity_Orthogonal(t *testing.T) {
	got := CosineSimilarity([]float32{1, 0}, []float32{0, 1})
	assert.InDelta(t, 0.0, got, 1e-6)
}

func TestCosineSimilarity_OppositeClampedToZero(t *testing.T) {
	got := CosineSimilarity([]float32{1, 1}, []float32{-1, -1})
	assert.Zero(t, got, "anti-correlated vectors should clamp to 0, not go negative")
}

func TestCosineSimilarity_MismatchedLengths(t *testing.T) {
	got := CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3})
	assert.Zero(t, got)
}

func TestCosineSimilarity_ZeroVector(t *testing.T) {
	got := CosineSimilarity([]float32{0, 0}, []float32{1, 1})
	assert.Zero(t, got)
}
