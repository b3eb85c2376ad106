package storage

import (
	"context"

	"github.com/poiesic/solvent/embedding"
)

// VectorRepository persists embedding caches.
// Implementations must be thread-safe and support concurrent access.
type VectorRepository interface {
	// Load reads the complete stored cache: metadata plus all records.
	// Returns ErrNotFound when no cache has ever been saved.
	Load(ctx context.Context) (*embedding.Cache, error)

	// Save replaces the stored cache atomically. Records from previous
	// builds that are absent from cache are removed, so entries dropped
	// from the catalog do not linger.
	Save(ctx context.Context, cache *embedding.Cache) error

	// GetRecord retrieves a single record by catalog entry id.
	// Returns ErrNotFound if the record doesn't exist.
	GetRecord(ctx context.Context, entryID string) (*embedding.Record, error)

	// PutRecord upserts a single record without touching the rest of the
	// cache or its metadata.
	PutRecord(ctx context.Context, record *embedding.Record) error

	// GetMeta retrieves the metadata of the stored cache.
	// Returns ErrNotFound when no cache has ever been saved.
	GetMeta(ctx context.Context) (*embedding.Meta, error)
}
