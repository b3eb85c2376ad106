package embedding

import "math"

// NormalizeVector returns a unit-length copy of vector using L2
// normalization. A zero vector cannot be normalized and comes back as a
// zero vector of the same length. The input is never modified.
func NormalizeVector(vector []float32) []float32 {
	var sum float64
	for _, v := range vector {
		sum += float64(v) * float64(v)
	}

	magnitude := math.Sqrt(sum)
	if magnitude == 0 {
		return make([]float32, len(vector))
	}

	normalized := make([]float32, len(vector))
	for i, v := range vector {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}

// CosineSimilarity returns the cosine of the angle between a and b, clamped
// to [0, 1]. Anti-correlated vectors score 0 rather than negative so the
// result can be used directly as a match score. Vectors of different
// lengths, empty vectors, and zero vectors all score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if cos < 0 {
		return 0
	}
	if cos > 1 {
		return 1
	}
	return cos
}
