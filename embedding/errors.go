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

import "errors"

var (
	// ErrNilEmbedder indicates a builder was constructed without an embedder.
	ErrNilEmbedder = errors.New("embedder is nil")

	// ErrMissingEmbedding indicates the cache holds no vector for an entry.
	ErrMissingEmbedding = errors.New("no cached embedding for entry")

	// ErrStaleCache indicates cached vectors no longer match the catalog's
	// current content hashes.
	ErrStaleCache = errors.New("embedding cache is stale")

	// ErrDimensionMismatch indicates vectors of differing lengths were
	// produced for a single cache build.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmbeddingCount indicates the embedder returned a different number
	// of vectors than texts submitted.
	ErrEmbeddingCount = errors.New("embedding count mismatch")

	// ErrInvalidMaxAttempts indicates a retry budget that is zero or negative.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")
)
