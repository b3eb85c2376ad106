package catalog

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// Entry describes a single solution in the catalog.
// Entries are immutable once loaded; matching never writes to them.
type Entry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Description string `json:"description"`

	// PainPointsAddressed is an ordered list of short phrases describing the
	// problems this entry solves. The intent layer scores queries against
	// these phrases individually.
	PainPointsAddressed []string `json:"pain_points_addressed"`

	// Keywords is the ordered term set used by the exact and fuzzy layers.
	// Matched-keyword lists in results preserve this declaration order.
	Keywords []string `json:"keywords"`

	Benefits []string `json:"benefits"`
	UseCases []string `json:"use_cases"`
}

// CombinedText concatenates the fields that carry semantic content, in a
// fixed order. This is the unit of text that gets embedded and hashed, so
// the order must never change between builds.
func (e *Entry) CombinedText() string {
	parts := []string{
		e.Description,
		strings.Join(e.PainPointsAddressed, " "),
		strings.Join(e.Keywords, " "),
		strings.Join(e.UseCases, " "),
	}
	return strings.Join(parts, " ")
}

// ContentHash returns a deterministic 64-bit BLAKE2b digest of the entry's
// combined text. Identical content produces identical hashes, which lets the
// embedding cache detect edits without recomputing vectors.
func (e *Entry) ContentHash() uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(e.CombinedText()))
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

// validate checks the fields matching cannot work without.
func (e *Entry) validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidEntry)
	}
	if e.Name == "" {
		return fmt.Errorf("%w: %q has no name", ErrInvalidEntry, e.ID)
	}
	if e.Category == "" {
		return fmt.Errorf("%w: %q has no category", ErrInvalidEntry, e.ID)
	}
	if e.Description == "" {
		return fmt.Errorf("%w: %q has no description", ErrInvalidEntry, e.ID)
	}
	if len(e.Keywords) == 0 {
		return fmt.Errorf("%w: %q has no keywords", ErrInvalidEntry, e.ID)
	}
	return nil
}
