package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/solvent/embedding"
	"github.com/poiesic/solvent/storage"
)

// VectorRepository implements storage.VectorRepository for BadgerDB.
type VectorRepository struct {
	backend *Backend
}

var _ storage.VectorRepository = (*VectorRepository)(nil)

// NewVectorRepository creates a new VectorRepository on top of backend.
// The repository does not own the backend; the caller remains responsible
// for closing it.
func NewVectorRepository(backend *Backend) *VectorRepository {
	return &VectorRepository{backend: backend}
}

// Load reads the complete stored cache.
func (r *VectorRepository) Load(ctx context.Context) (*embedding.Cache, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var (
		meta    *embedding.Meta
		records []*embedding.Record
	)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		meta, err = readMeta(tx)
		if err != nil {
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeVectorPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				record, err := storage.UnmarshalRecord(val)
				if err != nil {
					return err
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return embedding.NewCache(*meta, records), nil
}

// Save replaces the stored cache in a single transaction. Records left over
// from previous builds are deleted first, so the stored set always mirrors
// the cache exactly.
func (r *VectorRepository) Save(ctx context.Context, cache *embedding.Cache) error {
	if cache == nil {
		return storage.ErrNilCache
	}
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		// Collect stale keys first; deleting while iterating the same
		// transaction is not safe.
		var obsolete [][]byte
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeVectorPrefix()
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		for iter.Rewind(); iter.Valid(); iter.Next() {
			obsolete = append(obsolete, iter.Item().KeyCopy(nil))
		}
		iter.Close()

		for _, key := range obsolete {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}

		meta := cache.Meta()
		if err := tx.Set(makeMetaKey(), storage.MarshalMeta(&meta)); err != nil {
			return err
		}

		for _, record := range cache.Records() {
			if err := tx.Set(makeVectorKey(record.EntryID), storage.MarshalRecord(record)); err != nil {
				return err
			}
		}

		return tx.Commit()
	}, true)
}

// GetRecord retrieves a single record by catalog entry id.
func (r *VectorRepository) GetRecord(ctx context.Context, entryID string) (*embedding.Record, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var record *embedding.Record
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeVectorKey(entryID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			record, err = storage.UnmarshalRecord(val)
			return err
		})
	}, false)
	return record, err
}

// PutRecord upserts a single record.
func (r *VectorRepository) PutRecord(ctx context.Context, record *embedding.Record) error {
	if record == nil {
		return storage.ErrNilRecord
	}
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeVectorKey(record.EntryID), storage.MarshalRecord(record)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetMeta retrieves the metadata of the stored cache.
func (r *VectorRepository) GetMeta(ctx context.Context) (*embedding.Meta, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var meta *embedding.Meta
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		meta, err = readMeta(tx)
		return err
	}, false)
	return meta, err
}

// readMeta reads and unmarshals the metadata value within tx.
func readMeta(tx *badger.Txn) (*embedding.Meta, error) {
	item, err := tx.Get(makeMetaKey())
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var meta *embedding.Meta
	err = item.Value(func(val []byte) error {
		meta, err = storage.UnmarshalMeta(val)
		return err
	})
	return meta, err
}
