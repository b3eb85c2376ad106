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


// Package embedding holds precomputed catalog vectors and builds them.
//
// The Cache maps catalog-entry ids to vectors embedded from each entry's
// combined text, together with the content hash observed at build time.
// Matching never embeds catalog text: the cache is built by an explicit
// administrative action (Builder.Build) and read concurrently without locks
// afterwards. Content hashes make rebuilds cheap and idempotent: an entry
// whose text has not changed reuses its existing vector, so building twice
// over identical content performs no embedder calls the second time.
//
// Vectors are L2-normalized before they enter the cache. Query-time
// similarity still computes the full cosine, so query vectors arrive raw
// from the embedder without a normalization pass.
//
// Builds fan out over an ants worker pool in batches, retry embedder calls
// with exponential backoff, and can report progress to a writer. The builder
// never mutates an existing Cache: it returns a new one, which callers swap
// in atomically.
package embedding
