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


// Package storage provides the persistence layer for embedding caches.
//
// This package defines the repository interface that decouples storage
// implementation from the matching logic. It allows different storage
// backends (BadgerDB, in-memory, etc.) to be used interchangeably.
//
// # Constructor Return Type Pattern
//
// Test helpers return the storage.VectorRepository interface to keep
// consumers decoupled from BadgerDB specifics:
//
//	repo, backend, err := badger.NewMemoryRepository()
//
// Implementation packages may return concrete types from their own
// constructors since the concrete type is needed for wiring.
//
// # Layout
//
// The stored cache has two parts:
//
//   - one record per catalog entry, holding the entry id, the content hash
//     observed at build time, and the embedded vector
//   - one metadata value describing the build (model, dimensions, entry
//     count, build time)
//
// Save replaces the whole cache in a single transaction, so readers never
// observe a half-written build and records for entries removed from the
// catalog do not linger.
//
// # Serialization
//
// Values are serialized with the MUS binary format (github.com/mus-format),
// which is compact and fast for vector-heavy records. See serialization.go
// for the wrapper functions.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation
// and timeout support. Pass context.Background() for operations
// without specific timeout requirements.
package storage
