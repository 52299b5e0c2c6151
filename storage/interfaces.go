package storage

import (
	"context"

	"github.com/poiesic/scout/core"
)

// VectorStore provides namespace-partitioned vector storage and similarity
// search. Implementations must be thread-safe and support concurrent access.
type VectorStore interface {
	// Upsert writes vector records into the given namespace, replacing any
	// records with matching IDs.
	Upsert(ctx context.Context, namespace string, records ...*core.VectorRecord) error

	// Query finds the records in the namespace most similar to the given
	// vector. Returns up to topK matches ordered by similarity score
	// (highest first). An unknown namespace yields an empty result, not
	// an error.
	Query(ctx context.Context, namespace string, vector []float32, topK int) ([]*core.VectorMatch, error)

	// DeleteNamespace removes every record in the namespace.
	DeleteNamespace(ctx context.Context, namespace string) error

	// Stats returns the record count per namespace.
	Stats(ctx context.Context) (map[string]int, error)

	// Close closes the store and releases resources.
	Close() error
}

// ProfileRepository provides operations for managing display profiles.
// Implementations must be thread-safe.
type ProfileRepository interface {
	// PutProfiles stores one or more profiles keyed by actor ID,
	// replacing any existing profile for the same actor.
	PutProfiles(ctx context.Context, profiles ...*core.Profile) error

	// GetProfile retrieves a single profile by actor ID.
	// Returns ErrNotFound if no profile exists for the actor.
	GetProfile(ctx context.Context, actorID core.ActorID) (*core.Profile, error)

	// GetProfiles retrieves multiple profiles by actor ID.
	// Returns only the profiles that exist (no error for missing actors),
	// preserving input order.
	GetProfiles(ctx context.Context, actorIDs ...core.ActorID) ([]*core.Profile, error)

	// Count returns the number of stored profiles.
	Count(ctx context.Context) (int, error)

	// Close closes the repository and releases resources.
	Close() error
}

// Store combines vector and profile storage over a single backend.
type Store interface {
	VectorStore
	ProfileRepository
}
