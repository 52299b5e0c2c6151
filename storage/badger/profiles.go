package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/storage"
)

// PutProfiles stores one or more profiles keyed by actor ID.
func (s *Store) PutProfiles(ctx context.Context, profiles ...*core.Profile) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		for _, profile := range profiles {
			key := makeProfileKey(profile.ActorID)
			value := storage.MarshalProfile(profile)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetProfile retrieves a single profile by actor ID.
func (s *Store) GetProfile(ctx context.Context, actorID core.ActorID) (*core.Profile, error) {
	var result *core.Profile
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readProfile(tx, makeProfileKey(actorID))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetProfiles retrieves multiple profiles by actor ID, preserving input
// order. Missing actors are skipped without error.
func (s *Store) GetProfiles(ctx context.Context, actorIDs ...core.ActorID) ([]*core.Profile, error) {
	profiles := make([]*core.Profile, 0, len(actorIDs))
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		for _, actorID := range actorIDs {
			profile, err := readProfile(tx, makeProfileKey(actorID))
			if err != nil {
				return err
			}
			if profile != nil {
				profiles = append(profiles, profile)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// Count returns the number of stored profiles.
func (s *Store) Count(ctx context.Context) (int, error) {
	count := 0
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = profilePrefix()
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// readProfile reads a profile by key within a transaction.
// Returns nil without error if the key does not exist.
func readProfile(tx *badger.Txn, key []byte) (*core.Profile, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var profile *core.Profile
	err = item.Value(func(val []byte) error {
		var err error
		profile, err = storage.UnmarshalProfile(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}
