package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Catalog is a validated, immutable collection of entries with id lookup.
type Catalog struct {
	entries []*Entry
	byID    map[string]*Entry
}

// catalogFile is the on-disk JSON document shape.
type catalogFile struct {
	Features []*Entry `json:"features"`
}

// New builds a catalog from entries, validating each one and rejecting
// duplicate ids. The slice is retained; callers must not mutate it afterwards.
func New(entries []*Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}

	byID := make(map[string]*Entry, len(entries))
	for i, entry := range entries {
		if entry == nil {
			return nil, fmt.Errorf("%w: entry %d is nil", ErrInvalidEntry, i)
		}
		if err := entry.validate(); err != nil {
			return nil, err
		}
		if _, exists := byID[entry.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateEntry, entry.ID)
		}
		byID[entry.ID] = entry
	}

	return &Catalog{entries: entries, byID: byID}, nil
}

// Load reads a catalog JSON document from disk.
// The document is an object with a "features" array of entries.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	return New(file.Features)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns all entries in declaration order.
// The returned slice is shared; callers must treat it as read-only.
func (c *Catalog) Entries() []*Entry {
	return c.entries
}

// Entry returns the entry with the given id, or ErrUnknownEntry.
func (c *Catalog) Entry(id string) (*Entry, error) {
	entry, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntry, id)
	}
	return entry, nil
}

// CategorySummary pairs a category name with its entry count.
type CategorySummary struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Categories returns every category with its entry count, sorted by name.
func (c *Catalog) Categories() []CategorySummary {
	counts := make(map[string]int)
	for _, entry := range c.entries {
		counts[entry.Category]++
	}

	summaries := make([]CategorySummary, 0, len(counts))
	for name, count := range counts {
		summaries = append(summaries, CategorySummary{Name: name, Count: count})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})
	return summaries
}

// EntriesByCategory returns the entries whose category matches name,
// compared case-insensitively, in declaration order.
func (c *Catalog) EntriesByCategory(name string) []*Entry {
	var matched []*Entry
	for _, entry := range c.entries {
		if strings.EqualFold(entry.Category, name) {
			matched = append(matched, entry)
		}
	}
	return matched
}
