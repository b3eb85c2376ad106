package catalog

import "errors"

var (
	// ErrEmptyCatalog indicates a catalog with no entries.
	ErrEmptyCatalog = errors.New("catalog has no entries")

	// ErrInvalidEntry indicates an entry missing a required field.
	ErrInvalidEntry = errors.New("invalid catalog entry")

	// ErrDuplicateEntry indicates two entries sharing an id.
	ErrDuplicateEntry = errors.New("duplicate entry id")

	// ErrUnknownEntry indicates a lookup for an id not in the catalog.
	ErrUnknownEntry = errors.New("unknown entry id")
)
