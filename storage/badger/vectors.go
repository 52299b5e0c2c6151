package badger

import (
	"context"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/storage"
)

// Store implements storage.Store for BadgerDB. Vector records are
// partitioned by namespace prefix and searched with a brute-force
// dot-product scan.
type Store struct {
	backend *Backend
}

var _ storage.Store = (*Store)(nil)

// NewStore opens a BadgerDB-backed store at the given path.
func NewStore(path string) (storage.Store, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return &Store{backend: backend}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Upsert writes vector records into the given namespace.
func (s *Store) Upsert(ctx context.Context, namespace string, records ...*core.VectorRecord) error {
	if namespace == "" {
		return storage.ErrInvalidNamespace
	}
	return s.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			key := makeVectorKey(namespace, record.ID)
			value := storage.MarshalVectorRecord(record)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Query finds the topK records in the namespace most similar to the given
// vector, ordered by score descending. An empty namespace holds no records,
// so the result is empty rather than an error.
func (s *Store) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]*core.VectorMatch, error) {
	if namespace == "" {
		return nil, storage.ErrInvalidNamespace
	}
	if topK <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var matches []*core.VectorMatch

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeNamespacePrefix(namespace)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			item := iter.Item()
			var record *core.VectorRecord
			err := item.Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalVectorRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if record == nil || len(record.Vector) == 0 {
				continue
			}

			matches = append(matches, &core.VectorMatch{
				ID:    record.ID,
				Score: dotProduct(vector, record.Vector),
				Meta:  record.Meta,
			})
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	// Sort by score descending, ties by ID for deterministic output.
	slices.SortFunc(matches, func(a, b *core.VectorMatch) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}

	return matches, nil
}

// DeleteNamespace removes every record in the namespace.
func (s *Store) DeleteNamespace(ctx context.Context, namespace string) error {
	if namespace == "" {
		return storage.ErrInvalidNamespace
	}
	return s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeNamespacePrefix(namespace)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)

		var keys [][]byte
		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		iter.Close()

		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Stats returns the record count per namespace.
func (s *Store) Stats(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		for _, namespace := range core.Namespaces() {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = makeNamespacePrefix(string(namespace))
			opts.PrefetchValues = false
			iter := tx.NewIterator(opts)

			count := 0
			for iter.Rewind(); iter.Valid(); iter.Next() {
				count++
			}
			iter.Close()
			counts[string(namespace)] = count
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return counts, nil
}
