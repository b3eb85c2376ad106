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

// Package match scores and ranks catalog entries against free-text
// descriptions of business problems.
//
// A query is normalized once (lowercased, tokenized, stop words removed,
// business synonyms expanded, intent classified) and then scored against every
// catalog entry by five independent layers:
//
//   - exact: verbatim overlap between query tokens and entry keywords
//   - fuzzy: best normalized Levenshtein similarity per query token, with a
//     floor that keeps noise tokens from inflating the average
//   - semantic: clamped cosine similarity between the query vector and the
//     entry's cached embedding
//   - domain: alignment between the classified query intent and the entry's
//     category or subcategory
//   - intent: best token-overlap ratio against the entry's pain-point phrases
//
// The Engine combines the layer scores into one weighted confidence value,
// drops entries below a hard floor, assigns a high/medium/low level, and
// returns results sorted by confidence with ties broken by entry id. Output
// is deterministic: identical inputs produce byte-identical results,
// reasoning text included.
//
// # Degraded Operation
//
// The semantic layer needs an embedder and a populated cache. When either is
// missing the engine omits that layer and renormalizes the remaining weights
// to sum to 1.0, so confidence stays comparable across configurations. A
// query embedding failure at request time is softer: the layer stays in the
// breakdown with a zero score and the result carries an explicit note, so
// reasoning never claims semantic support that was not computed.
//
// The synonym table, the intent taxonomy, layer weights, thresholds and the
// fuzzy floor are configuration (see Config), validated at engine
// construction and immutable afterwards.
package match
