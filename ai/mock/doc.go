// Package mock provides test doubles for ai interfaces.
//
// MockEmbedder produces deterministic vectors so tests that exercise the
// semantic layer are reproducible without an embedding service. Behavior can
// be overridden per test via the exported function fields.
package mock
