package embedding

import "time"

//go:generate go run ../cmd/musgen

// Record pairs a catalog entry with its precomputed vector. ContentHash is
// the hash of the entry's combined text at the time the vector was embedded;
// a mismatch against the live catalog marks the record stale.
type Record struct {
	EntryID     string
	ContentHash uint64
	Vector      []float32
}

// Meta describes the build that produced a cache: which model embedded the
// vectors, their dimensionality, how many entries were covered, and when.
type Meta struct {
	Model      string
	Dimensions int
	EntryCount int
	BuiltAt    time.Time
}
