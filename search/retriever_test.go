package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/ai/mock"
	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/storage"
	"github.com/poiesic/scout/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test vectors are one-dimensional: the stored value IS the similarity
// score once the query embeds to [1].
func seedVector(t *testing.T, store storage.Store, ns string, score float32, meta core.ChunkMeta) {
	t.Helper()
	id := fmt.Sprintf("%s_%s_%d", ns, meta.ActorID, int(score*1000))
	err := store.Upsert(context.Background(), ns, &core.VectorRecord{
		ID:     id,
		Vector: []float32{score},
		Meta:   meta,
	})
	require.NoError(t, err)
}

func seedProfile(t *testing.T, store storage.Store, actorID core.ActorID) {
	t.Helper()
	err := store.PutProfiles(context.Background(), &core.Profile{
		ActorID: actorID,
		Name:    string(actorID),
	})
	require.NoError(t, err)
}

func unitEmbedder() *mock.MockEmbedder {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1}, nil
	}
	return embedder
}

func intentParser(intent core.Intent) *mock.MockQueryParser {
	parser := mock.NewMockQueryParser()
	parser.ParseFunc = func(ctx context.Context, query string) core.Intent {
		return intent
	}
	return parser
}

func newTestRetriever(t *testing.T, provider ai.AIProvider) (*Retriever, storage.Store) {
	t.Helper()
	store, err := badger.NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	retriever, err := NewRetriever(store, provider)
	require.NoError(t, err)
	return retriever, store
}

func resultIDs(resp *core.Response) []core.ActorID {
	ids := make([]core.ActorID, len(resp.Results))
	for i, res := range resp.Results {
		ids[i] = res.ActorID
	}
	return ids
}

func TestNewRetriever_Validation(t *testing.T) {
	_, err := NewRetriever(nil, mock.NewMockProvider())
	assert.ErrorIs(t, err, ErrStoreRequired)

	store, err := badger.NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	_, err = NewRetriever(store, nil)
	assert.ErrorIs(t, err, ErrAIProviderRequired)
}

func TestSearch_EducationContainmentFilter(t *testing.T) {
	intent := core.Intent{Education: []string{"stanford"}, EducationLogic: core.LogicOr}
	provider := mock.NewMockProviderWithServices(unitEmbedder(), intentParser(intent), nil, nil)
	retriever, store := newTestRetriever(t, provider)

	// Abbreviated term matches the longer stored school; semantic bleed
	// from an unrelated school is rejected.
	seedVector(t, store, "education", 0.9, core.ChunkMeta{ActorID: "match", School: "Stanford University"})
	seedVector(t, store, "education", 0.85, core.ChunkMeta{ActorID: "bleed", School: "Harvard University"})
	seedProfile(t, store, "match")
	seedProfile(t, store, "bleed")

	resp, err := retriever.Search(context.Background(), "stanford grads", &SearchOptions{TopK: 10})
	require.NoError(t, err)

	assert.Equal(t, []core.ActorID{"match"}, resultIDs(resp))
	assert.InDelta(t, 0.9, resp.Results[0].Score, 0.0001)
}

func TestSearch_EducationOverSpecifiedTerm(t *testing.T) {
	intent := core.Intent{Education: []string{"stanford university graduate school"}, EducationLogic: core.LogicOr}
	provider := mock.NewMockProviderWithServices(unitEmbedder(), intentParser(intent), nil, nil)
	retriever, store := newTestRetriever(t, provider)

	seedVector(t, store, "education", 0.8, core.ChunkMeta{ActorID: "a", School: "Stanford University"})
	seedProfile(t, store, "a")

	resp, err := retriever.Search(context.Background(), "q", &SearchOptions{TopK: 5})
	require.NoError(t, err)
	assert.Equal(t, []core.ActorID{"a"}, resultIDs(resp))
}

func TestSearch_EducationANDGroups(t *testing.T) {
	intent := core.Intent{
		Education:      []string{"Stanford", "Stanford University", "MIT"},
		EducationLogic: core.LogicAnd,
		EducationGroups: []core.CanonicalGroup{
			{Canonical: "stanford", Variations: []string{"Stanford", "Stanford University"}},
			{Canonical: "mit", Variations: []string{"MIT", "Massachusetts Institute of Technology"}},
		},
	}
	provider := mock.NewMockProviderWithServices(unitEmbedder(), intentParser(intent), nil, nil)
	retriever, store := newTestRetriever(t, provider)

	// "both" has one education chunk per degree; "stanford_only" only one.
	seedVector(t, store, "education", 0.9, core.ChunkMeta{ActorID: "both", School: "Stanford University"})
	seedVector(t, store, "education", 0.88, core.ChunkMeta{ActorID: "both", School: "MIT"})
	seedVector(t, store, "education", 0.87, core.ChunkMeta{ActorID: "stanford_only", School: "Stanford University"})
	seedProfile(t, store, "both")
	seedProfile(t, store, "stanford_only")

	resp, err := retriever.Search(context.Background(), "Stanford and MIT grads", &SearchOptions{TopK: 10})
	require.NoError(t, err)

	assert.Equal(t, []core.ActorID{"both"}, resultIDs(resp))
}

func TestSearch_CompaniesANDGroups(t *testing.T) {
	intent := core.Intent{
		Companies:      []string{"Google", "Stripe"},
		CompaniesLogic: core.LogicAnd,
		CompanyGroups: []core.CanonicalGroup{
			{Canonical: "google", Variations: []string{"Google", "Alphabet"}},
			{Canonical: "stripe", Variations: []string{"Stripe"}},
		},
	}
	provider := mock.NewMockProviderWithServices(unitEmbedder(), intentParser(intent), nil, nil)
	retriever, store := newTestRetriever(t, provider)

	seedVector(t, store, "companies", 0.9, core.ChunkMeta{ActorID: "both", Companies: []string{"Google", "Stripe"}})
	seedVector(t, store, "companies", 0.85, core.ChunkMeta{ActorID: "google_only", Companies: []string{"Google"}})
	seedProfile(t, store, "both")
	seedProfile(t, store, "google_only")

	resp, err := retriever.Search(context.Background(), "worked at Google and Stripe", &SearchOptions{TopK: 10})
	require.NoError(t, err)

	assert.Equal(t, []core.ActorID{"both"}, resultIDs(resp))
}

func TestSearch_CrossCategoryIntersection(t *testing.T) {
	intent := core.Intent{
		Skills:          []string{"frontend", "react"},
		Locations:       []string{"bangalore", "bengaluru"},
		NormalizedQuery: "frontend developers in bangalore",
	}
	provider := mock.NewMockProviderWithServices(unitEmbedder(), intentParser(intent), nil, nil)
	retriever, store := newTestRetriever(t, provider)

	seedVector(t, store, "skills", 0.8, core.ChunkMeta{ActorID: "in_both"})
	seedVector(t, store, "skills", 0.9, core.ChunkMeta{ActorID: "skills_only"})
	seedVector(t, store, "location", 0.6, core.ChunkMeta{ActorID: "in_both", Location: "Bengaluru, India"})
	seedVector(t, store, "location", 0.7, core.ChunkMeta{ActorID: "location_only", Location: "Bangalore"})
	seedProfile(t, store, "in_both")
	seedProfile(t, store, "skills_only")
	seedProfile(t, store, "location_only")

	resp, err := retriever.Search(context.Background(), "frontend devs in Bangalore", &SearchOptions{TopK: 10})
	require.NoError(t, err)

	require.Equal(t, []core.ActorID{"in_both"}, resultIDs(resp))
	// Mean of the two category scores.
	assert.InDelta(t, 0.7, resp.Results[0].Score, 0.0001)
}

func TestSearch_SingleCategoryScorePassthrough(t *testing.T) {
	intent := core.Intent{Locations: []string{"pune"}}
	provider := mock.NewMockProviderWithServices(unitEmbedder(), intentParser(intent), nil, nil)
	retriever, store := newTestRetriever(t, provider)

	seedVector(t, store, "location", 0.777, core.ChunkMeta{ActorID: "a", Location: "Pune, India"})
	seedProfile(t, store, "a")

	resp, err := retriever.Search(context.Background(), "people in pune", &SearchOptions{TopK: 10})
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	assert.InDelta(t, 0.777, resp.Results[0].Score, 0.0001)
}

func TestSearch_ZeroCategoriesFallback(t *testing.T) {
	intent := core.Intent{NormalizedQuery: "interesting people"}
	embedder := unitEmbedder()
	var embedded []string
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		embedded = append(embedded, text)
		return []float32{1}, nil
	}
	provider := mock.NewMockProviderWithServices(embedder, intentParser(intent), nil, nil)
	retriever, store := newTestRetriever(t, provider)

	seedVector(t, store, "skills", 0.5, core.ChunkMeta{ActorID: "a"})
	seedProfile(t, store, "a")

	resp, err := retriever.Search(context.Background(), "raw query", &SearchOptions{TopK: 10})
	require.NoError(t, err)

	assert.Equal(t, []core.ActorID{"a"}, resultIDs(resp))
	require.Len(t, embedded, 1)
	assert.Equal(t, "interesting people", embedded[0])
}

func TestSearch_FallbackWithEmptyNormalizedQuery(t *testing.T) {
	intent := core.Intent{}
	embedder := unitEmbedder()
	var embedded []string
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		embedded = append(embedded, text)
		return []float32{1}, nil
	}
	provider := mock.NewMockProviderWithServices(embedder, intentParser(intent), nil, nil)
	retriever, _ := newTestRetriever(t, provider)

	// Degrades to the raw query text and never raises.
	_, err := retriever.Search(context.Background(), "raw query", &SearchOptions{TopK: 10})
	require.NoError(t, err)
	require.Len(t, embedded, 1)
	assert.Equal(t, "raw query", embedded[0])
}

func TestSearch_ActiveCategoryWithZeroHitsYieldsNoResults(t *testing.T) {
	intent := core.Intent{
		Skills:    []string{"golang"},
		Companies: []string{"acme"},
	}
	provider := mock.NewMockProviderWithServices(unitEmbedder(), intentParser(intent), nil, nil)
	retriever, store := newTestRetriever(t, provider)

	// Skills hit exists but the companies namespace has nothing, so the
	// cross-category AND collapses to a valid empty result, not an error.
	seedVector(t, store, "skills", 0.9, core.ChunkMeta{ActorID: "a"})
	seedProfile(t, store, "a")

	resp, err := retriever.Search(context.Background(), "golang at acme", &SearchOptions{TopK: 10})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Empty(t, resp.Degraded)
}

func TestSearch_DegradedCategoryExcludedFromIntersection(t *testing.T) {
	intent := core.Intent{
		Skills:    []string{"golang"},
		Locations: []string{"pune"},
	}
	embedder := unitEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		if strings.HasPrefix(text, "Located in") {
			return nil, errors.New("embedding host down")
		}
		return []float32{1}, nil
	}
	provider := mock.NewMockProviderWithServices(embedder, intentParser(intent), nil, nil)
	retriever, store := newTestRetriever(t, provider)

	seedVector(t, store, "skills", 0.9, core.ChunkMeta{ActorID: "a"})
	seedProfile(t, store, "a")

	resp, err := retriever.Search(context.Background(), "golang in pune", &SearchOptions{TopK: 10})
	require.NoError(t, err)

	// The failed location category is soft-dropped and reported.
	assert.Equal(t, []core.ActorID{"a"}, resultIDs(resp))
	assert.Equal(t, []core.ChunkType{core.ChunkLocation}, resp.Degraded)
}

func TestSearch_AllCategoriesDegraded(t *testing.T) {
	intent := core.Intent{Skills: []string{"golang"}}
	embedder := unitEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding host down")
	}
	provider := mock.NewMockProviderWithServices(embedder, intentParser(intent), nil, nil)
	retriever, _ := newTestRetriever(t, provider)

	_, err := retriever.Search(context.Background(), "golang", &SearchOptions{TopK: 10})
	assert.ErrorIs(t, err, ErrAllCategoriesDegraded)
}

func TestSearch_RerankOverridesScores(t *testing.T) {
	intent := core.Intent{Skills: []string{"golang"}}
	reranker := mock.NewMockReranker()
	reranker.RerankFunc = func(ctx context.Context, query string, in core.Intent, candidates []*core.Candidate) ([]ai.Judgment, error) {
		// Judge only the second candidate; the first is dropped.
		return []ai.Judgment{{Index: 1, Score: 0.95, Reason: "strong match"}}, nil
	}
	provider := mock.NewMockProviderWithServices(unitEmbedder(), intentParser(intent), reranker, nil)
	retriever, store := newTestRetriever(t, provider)

	seedVector(t, store, "skills", 0.9, core.ChunkMeta{ActorID: "a"})
	seedVector(t, store, "skills", 0.8, core.ChunkMeta{ActorID: "b"})
	seedProfile(t, store, "a")
	seedProfile(t, store, "b")

	resp, err := retriever.Search(context.Background(), "golang", &SearchOptions{TopK: 10, Rerank: true})
	require.NoError(t, err)

	require.Equal(t, []core.ActorID{"b"}, resultIDs(resp))
	assert.InDelta(t, 0.95, resp.Results[0].Score, 0.0001)
	assert.Equal(t, "strong match", resp.Candidates[0].Reason)
}

func TestSearch_RerankFailureFallsBack(t *testing.T) {
	intent := core.Intent{Skills: []string{"golang"}}
	reranker := mock.NewMockReranker()
	reranker.RerankFunc = func(ctx context.Context, query string, in core.Intent, candidates []*core.Candidate) ([]ai.Judgment, error) {
		return nil, errors.New("malformed oracle response")
	}
	provider := mock.NewMockProviderWithServices(unitEmbedder(), intentParser(intent), reranker, nil)
	retriever, store := newTestRetriever(t, provider)

	seedVector(t, store, "skills", 0.9, core.ChunkMeta{ActorID: "a"})
	seedVector(t, store, "skills", 0.8, core.ChunkMeta{ActorID: "b"})
	seedProfile(t, store, "a")
	seedProfile(t, store, "b")

	resp, err := retriever.Search(context.Background(), "golang", &SearchOptions{TopK: 10, Rerank: true})
	require.NoError(t, err)

	// Pre-rerank order and scores stand unchanged.
	assert.Equal(t, []core.ActorID{"a", "b"}, resultIDs(resp))
	assert.InDelta(t, 0.9, resp.Results[0].Score, 0.0001)
	assert.InDelta(t, 0.8, resp.Results[1].Score, 0.0001)
}

func TestSearch_RerankInvalidIndicesDiscarded(t *testing.T) {
	intent := core.Intent{Skills: []string{"golang"}}
	reranker := mock.NewMockReranker()
	reranker.RerankFunc = func(ctx context.Context, query string, in core.Intent, candidates []*core.Candidate) ([]ai.Judgment, error) {
		return []ai.Judgment{
			{Index: 0, Score: 0.7},
			{Index: 99, Score: 0.99},
			{Index: -1, Score: 0.99},
		}, nil
	}
	provider := mock.NewMockProviderWithServices(unitEmbedder(), intentParser(intent), reranker, nil)
	retriever, store := newTestRetriever(t, provider)

	seedVector(t, store, "skills", 0.9, core.ChunkMeta{ActorID: "a"})
	seedProfile(t, store, "a")

	resp, err := retriever.Search(context.Background(), "golang", &SearchOptions{TopK: 10, Rerank: true})
	require.NoError(t, err)
	require.Equal(t, []core.ActorID{"a"}, resultIDs(resp))
	assert.InDelta(t, 0.7, resp.Results[0].Score, 0.0001)
}

func TestSearch_TopKTruncationAndTies(t *testing.T) {
	intent := core.Intent{Skills: []string{"golang"}}
	provider := mock.NewMockProviderWithServices(unitEmbedder(), intentParser(intent), nil, nil)
	retriever, store := newTestRetriever(t, provider)

	// Three actors with identical scores; ties break by actor id.
	for _, id := range []core.ActorID{"c", "a", "b"} {
		seedVector(t, store, "skills", 0.5, core.ChunkMeta{ActorID: id})
		seedProfile(t, store, id)
	}

	resp, err := retriever.Search(context.Background(), "golang", &SearchOptions{TopK: 2})
	require.NoError(t, err)

	assert.Equal(t, []core.ActorID{"a", "b"}, resultIDs(resp))
}

func TestSearch_ActorsWithoutProfilesSkipped(t *testing.T) {
	intent := core.Intent{Skills: []string{"golang"}}
	provider := mock.NewMockProviderWithServices(unitEmbedder(), intentParser(intent), nil, nil)
	retriever, store := newTestRetriever(t, provider)

	seedVector(t, store, "skills", 0.9, core.ChunkMeta{ActorID: "with_profile"})
	seedVector(t, store, "skills", 0.8, core.ChunkMeta{ActorID: "orphan"})
	seedProfile(t, store, "with_profile")

	resp, err := retriever.Search(context.Background(), "golang", &SearchOptions{TopK: 10})
	require.NoError(t, err)
	assert.Equal(t, []core.ActorID{"with_profile"}, resultIDs(resp))
}

func TestSearch_InvalidTopK(t *testing.T) {
	provider := mock.NewMockProvider()
	retriever, _ := newTestRetriever(t, provider)

	_, err := retriever.Search(context.Background(), "q", &SearchOptions{TopK: -1})
	assert.ErrorIs(t, err, ErrInvalidTopK)
}

func TestEvaluate(t *testing.T) {
	evaluator := mock.NewMockEvaluator()
	evaluator.EvaluateFunc = func(ctx context.Context, query string, results []*core.Candidate, intent core.Intent) (*ai.Evaluation, error) {
		return &ai.Evaluation{OverallScore: 8, Precision: 0.9, Feedback: "good"}, nil
	}
	provider := mock.NewMockProviderWithServices(nil, nil, nil, evaluator)
	retriever, _ := newTestRetriever(t, provider)

	eval, err := retriever.Evaluate(context.Background(), "q", nil, core.Intent{})
	require.NoError(t, err)
	assert.Equal(t, float32(8), eval.OverallScore)
}
