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

package match

import "errors"

var (
	// ErrEmptyQuery is returned when a query normalizes to zero keyword
	// tokens. Callers should report "no match possible", not crash.
	ErrEmptyQuery = errors.New("query normalizes to no keywords")

	// ErrInvalidWeights is returned when the layer weights are not all
	// positive or do not sum to 1.0.
	ErrInvalidWeights = errors.New("invalid layer weights")

	// ErrInvalidThresholds is returned when the confidence thresholds do not
	// satisfy high > medium > low > 0.
	ErrInvalidThresholds = errors.New("invalid confidence thresholds")

	// ErrInvalidFloor is returned when the fuzzy floor is outside [0, 1].
	ErrInvalidFloor = errors.New("invalid fuzzy floor")

	// ErrInvalidMaxResults is returned when the default result count is
	// below 1.
	ErrInvalidMaxResults = errors.New("max results must be at least 1")

	// ErrNoQueryVector marks a semantic score that could not be computed
	// because the query has no embedding vector. The engine recovers by
	// scoring the layer zero and annotating the result.
	ErrNoQueryVector = errors.New("query has no embedding vector")
)
