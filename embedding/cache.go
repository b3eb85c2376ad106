package embedding

import (
	"fmt"
	"sort"

	"github.com/poiesic/solvent/catalog"
)

// Cache is an immutable snapshot of precomputed entry vectors, keyed by
// catalog entry id. Once constructed it is never mutated, so it may be read
// from any number of goroutines without locking. Rebuilds produce a fresh
// Cache that callers swap in.
type Cache struct {
	meta    Meta
	records map[string]*Record
}

// NewCache assembles a cache from build metadata and records. Records with
// empty ids are dropped; a later record for the same id wins.
func NewCache(meta Meta, records []*Record) *Cache {
	byID := make(map[string]*Record, len(records))
	for _, r := range records {
		if r == nil || r.EntryID == "" {
			continue
		}
		byID[r.EntryID] = r
	}
	return &Cache{meta: meta, records: byID}
}

// Meta returns the metadata recorded when the cache was built.
func (c *Cache) Meta() Meta {
	return c.meta
}

// Len returns the number of cached records.
func (c *Cache) Len() int {
	return len(c.records)
}

// Vector returns the cached vector for entryID. Entries absent from the
// cache return an error wrapping ErrMissingEmbedding; callers typically
// exclude such entries from the result set rather than failing the request.
func (c *Cache) Vector(entryID string) ([]float32, error) {
	r, ok := c.records[entryID]
	if !ok || len(r.Vector) == 0 {
		return nil, fmt.Errorf("entry %q: %w", entryID, ErrMissingEmbedding)
	}
	return r.Vector, nil
}

// Hash returns the content hash recorded for entryID and whether the entry
// is cached at all.
func (c *Cache) Hash(entryID string) (uint64, bool) {
	r, ok := c.records[entryID]
	if !ok {
		return 0, false
	}
	return r.ContentHash, true
}

// Records returns the cached records sorted by entry id. The slice is fresh
// but the records themselves are shared; callers must not modify them.
func (c *Cache) Records() []*Record {
	out := make([]*Record, 0, len(c.records))
	for _, r := range c.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryID < out[j].EntryID })
	return out
}

// StaleIDs returns the ids of catalog entries whose combined text no longer
// matches the hash recorded at build time, including entries that have no
// cached vector at all. The result is sorted.
func (c *Cache) StaleIDs(entries []*catalog.Entry) []string {
	var stale []string
	for _, e := range entries {
		hash, ok := c.Hash(e.ID)
		if !ok || hash != e.ContentHash() {
			stale = append(stale, e.ID)
		}
	}
	sort.Strings(stale)
	return stale
}

// Stale reports whether any catalog entry is missing from the cache or has
// changed since the cache was built.
func (c *Cache) Stale(entries []*catalog.Entry) bool {
	for _, e := range entries {
		hash, ok := c.Hash(e.ID)
		if !ok || hash != e.ContentHash() {
			return true
		}
	}
	return false
}
