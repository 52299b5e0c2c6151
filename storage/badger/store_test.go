package badger

import (
	"context"
	"fmt"
	"testing"

	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func makeRecord(id string, actorID core.ActorID, vector []float32) *core.VectorRecord {
	return &core.VectorRecord{
		ID:     id,
		Vector: vector,
		Meta:   core.ChunkMeta{ActorID: actorID, Name: string(actorID)},
	}
}

func TestStore_UpsertAndQuery(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Upsert(ctx, "skills",
		makeRecord("skills_a_0", "a", []float32{1, 0, 0}),
		makeRecord("skills_b_0", "b", []float32{0, 1, 0}),
		makeRecord("skills_c_0", "c", []float32{0.9, 0.1, 0}),
	)
	require.NoError(t, err)

	matches, err := store.Query(ctx, "skills", []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	// Ordered by similarity to the query vector.
	assert.Equal(t, "skills_a_0", matches[0].ID)
	assert.Equal(t, "skills_c_0", matches[1].ID)
	assert.Equal(t, "skills_b_0", matches[2].ID)
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestStore_QueryTopKTruncation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		rec := makeRecord(fmt.Sprintf("skills_x%d_0", i), core.ActorID(fmt.Sprintf("x%d", i)), []float32{float32(i) / 20, 1, 0})
		require.NoError(t, store.Upsert(ctx, "skills", rec))
	}

	matches, err := store.Query(ctx, "skills", []float32{0, 1, 0}, 5)
	require.NoError(t, err)
	assert.Len(t, matches, 5)
}

func TestStore_QueryNamespaceIsolation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "skills", makeRecord("skills_a_0", "a", []float32{1, 0})))
	require.NoError(t, store.Upsert(ctx, "education", makeRecord("education_a_0", "a", []float32{1, 0})))

	matches, err := store.Query(ctx, "skills", []float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "skills_a_0", matches[0].ID)
}

func TestStore_QueryUnknownNamespace(t *testing.T) {
	store := newTestStore(t)

	matches, err := store.Query(context.Background(), "companies", []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestStore_QueryInvalidParams(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Query(ctx, "", []float32{1}, 10)
	assert.ErrorIs(t, err, storage.ErrInvalidNamespace)

	_, err = store.Query(ctx, "skills", []float32{1}, 0)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestStore_UpsertReplaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "skills", makeRecord("skills_a_0", "a", []float32{1, 0})))
	require.NoError(t, store.Upsert(ctx, "skills", makeRecord("skills_a_0", "a", []float32{0, 1})))

	matches, err := store.Query(ctx, "skills", []float32{0, 1}, 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.InDelta(t, 1.0, matches[0].Score, 0.0001)
}

func TestStore_DeleteNamespace(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "skills", makeRecord("skills_a_0", "a", []float32{1})))
	require.NoError(t, store.Upsert(ctx, "education", makeRecord("education_a_0", "a", []float32{1})))

	require.NoError(t, store.DeleteNamespace(ctx, "skills"))

	matches, err := store.Query(ctx, "skills", []float32{1}, 10)
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, err = store.Query(ctx, "education", []float32{1}, 10)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestStore_Stats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "skills",
		makeRecord("skills_a_0", "a", []float32{1}),
		makeRecord("skills_b_0", "b", []float32{1}),
	))
	require.NoError(t, store.Upsert(ctx, "location", makeRecord("location_a_0", "a", []float32{1})))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats["skills"])
	assert.Equal(t, 1, stats["location"])
	assert.Equal(t, 0, stats["education"])
	assert.Equal(t, 0, stats["companies"])
}

func TestStore_Profiles(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	profiles := []*core.Profile{
		{ActorID: "a", Name: "Actor A", Headline: "engineer"},
		{ActorID: "b", Name: "Actor B", Location: "pune, india"},
	}
	require.NoError(t, store.PutProfiles(ctx, profiles...))

	got, err := store.GetProfile(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Actor A", got.Name)

	_, err = store.GetProfile(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Batch get skips missing actors and preserves input order.
	batch, err := store.GetProfiles(ctx, "b", "missing", "a")
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, core.ActorID("b"), batch[0].ActorID)
	assert.Equal(t, core.ActorID("a"), batch[1].ActorID)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestStore_ProfileOverwrite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutProfiles(ctx, &core.Profile{ActorID: "a", Name: "Old"}))
	require.NoError(t, store.PutProfiles(ctx, &core.Profile{ActorID: "a", Name: "New"}))

	got, err := store.GetProfile(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
