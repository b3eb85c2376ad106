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


// Package catalog defines the read-only solution catalog consumed by the
// matching engine.
//
// A catalog is loaded once from a JSON document, validated, and never mutated
// afterwards. Every entry describes one platform feature: its identity and
// categorization, the pain points it addresses, and the descriptive text the
// embedding cache turns into a vector. The combined text of an entry
// (description, pain points, keywords, use cases) is the unit that gets
// embedded; its BLAKE2b content hash is how the cache detects catalog edits
// without recomputing vectors.
//
// Catalogs are plain values passed explicitly to their consumers. There is no
// package-level state.
package catalog
