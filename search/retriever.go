package search

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/storage"
)

const (
	// DefaultTopK is the result count used when the caller does not set one.
	DefaultTopK = 10

	// rerankLimit caps how many candidates are submitted to the reranking
	// oracle in one call.
	rerankLimit = 20
)

// Retriever is the retrieval and combination engine. It decomposes a
// free-text query into per-category vector searches, suppresses embedding
// false positives with containment filtering, intersects across categories,
// and reranks the surviving candidates.
type Retriever struct {
	store           storage.Store
	embedder        ai.Embedder
	parser          ai.QueryParser
	reranker        ai.Reranker
	evaluator       ai.Evaluator
	categoryTimeout time.Duration
	logger          *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithCategoryTimeout bounds each category's embedding and vector-store
// round trip. A category exceeding the deadline is dropped from the
// combination instead of failing the search. Zero disables the bound.
func WithCategoryTimeout(d time.Duration) Option {
	return func(r *Retriever) error {
		r.categoryTimeout = d
		return nil
	}
}

// NewRetriever creates a new retriever.
func NewRetriever(store storage.Store, provider ai.AIProvider, opts ...Option) (*Retriever, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	r := &Retriever{
		store:     store,
		embedder:  provider.Embedder(),
		parser:    provider.QueryParser(),
		reranker:  provider.Reranker(),
		evaluator: provider.Evaluator(),
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// SearchOptions holds optional parameters for one search call.
type SearchOptions struct {
	TopK    int           // result count, DefaultTopK if zero
	Rerank  bool          // submit candidates to the reranking oracle
	Monitor SearchMonitor // optional observation hooks
}

// Search runs the full retrieval flow for one query: parse, per-category
// fan-out, filter, combine, rerank, and rank. The final ordering is
// deterministic given deterministic oracle responses.
func (r *Retriever) Search(ctx context.Context, query string, opts *SearchOptions) (*core.Response, error) {
	if opts == nil {
		opts = &SearchOptions{Rerank: true}
	}
	topK := opts.TopK
	if topK == 0 {
		topK = DefaultTopK
	}
	if topK < 0 {
		return nil, ErrInvalidTopK
	}
	monitor := opts.Monitor
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	// Parse failure is absorbed by the parser's fallback structure, so no
	// error path exists here.
	intent := r.parser.ParseQuery(ctx, query)
	monitor.AfterParse(&intent)

	active := intent.ActiveCategories()

	var (
		combined []categoryHit
		degraded []core.ChunkType
	)

	if len(active) == 0 {
		hits, err := r.searchFallback(ctx, query, &intent)
		if err != nil {
			r.logger.Error("fallback search failed", "query", query, "err", err)
			return nil, err
		}
		combined = hits
	} else {
		results, deg := r.fanOut(ctx, active, &intent, monitor)
		degraded = deg
		if len(results) == 0 && len(deg) > 0 {
			return nil, ErrAllCategoriesDegraded
		}
		combined = combine(results)
	}

	combinedIDs := make([]core.ActorID, len(combined))
	for i, hit := range combined {
		combinedIDs[i] = hit.actorID
	}
	monitor.AfterCombination(combinedIDs)

	candidates, err := r.buildCandidates(ctx, combined)
	if err != nil {
		return nil, err
	}

	sortCandidates(candidates)
	if len(candidates) > 2*topK {
		candidates = candidates[:2*topK]
	}

	if opts.Rerank && len(candidates) > 0 {
		candidates = r.rerank(ctx, query, &intent, candidates)
		monitor.AfterRerank(candidates)
	}

	sortCandidates(candidates)
	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	results := make([]core.Result, len(candidates))
	for i, c := range candidates {
		results[i] = core.Result{ActorID: c.ActorID, Score: roundScore(c.Score)}
	}
	monitor.Finish(results)

	return &core.Response{
		Query:      query,
		Intent:     intent,
		Results:    results,
		Candidates: candidates,
		Degraded:   degraded,
	}, nil
}

// categoryOutcome carries one category's fan-out result.
type categoryOutcome struct {
	category core.ChunkType
	hits     []categoryHit
	err      error
}

// fanOut issues all active category searches concurrently and joins them.
// A failed or timed-out category is dropped from the combination (soft
// fail, logged and reported via the degraded list); a category that
// succeeded with zero hits stays in the results as a valid empty set.
func (r *Retriever) fanOut(ctx context.Context, active []core.ChunkType, intent *core.Intent, monitor SearchMonitor) (map[core.ChunkType][]categoryHit, []core.ChunkType) {
	outcomes := make(chan categoryOutcome, len(active))

	var wg sync.WaitGroup
	for _, category := range active {
		ct := category
		wg.Add(1)
		go func() {
			defer wg.Done()

			cctx := ctx
			if r.categoryTimeout > 0 {
				var cancel context.CancelFunc
				cctx, cancel = context.WithTimeout(ctx, r.categoryTimeout)
				defer cancel()
			}

			hits, err := r.searchCategory(cctx, ct, intent)
			outcomes <- categoryOutcome{category: ct, hits: hits, err: err}
		}()
	}
	wg.Wait()
	close(outcomes)

	results := make(map[core.ChunkType][]categoryHit)
	var degraded []core.ChunkType
	for outcome := range outcomes {
		if outcome.err != nil {
			if errors.Is(outcome.err, context.DeadlineExceeded) {
				r.logger.Warn("category search timed out", "category", outcome.category)
			} else {
				r.logger.Warn("category search failed", "category", outcome.category, "err", outcome.err)
			}
			monitor.CategoryDegraded(outcome.category, outcome.err)
			degraded = append(degraded, outcome.category)
			continue
		}

		ids := make([]core.ActorID, len(outcome.hits))
		for i, hit := range outcome.hits {
			ids[i] = hit.actorID
		}
		monitor.AfterCategorySearch(outcome.category, ids)
		results[outcome.category] = outcome.hits
	}

	return results, degraded
}

// buildCandidates resolves combined hits into scored candidates with their
// display profiles. Actors without a stored profile are skipped.
func (r *Retriever) buildCandidates(ctx context.Context, hits []categoryHit) ([]*core.Candidate, error) {
	if len(hits) == 0 {
		return nil, nil
	}

	ids := make([]core.ActorID, len(hits))
	scores := make(map[core.ActorID]float32, len(hits))
	for i, hit := range hits {
		ids[i] = hit.actorID
		scores[hit.actorID] = hit.score
	}

	profiles, err := r.store.GetProfiles(ctx, ids...)
	if err != nil {
		r.logger.Error("error retrieving profiles", "count", len(ids), "err", err)
		return nil, err
	}

	candidates := make([]*core.Candidate, 0, len(profiles))
	for _, profile := range profiles {
		candidates = append(candidates, &core.Candidate{
			ActorID: profile.ActorID,
			Score:   scores[profile.ActorID],
			Profile: profile,
		})
	}
	if len(candidates) < len(ids) {
		r.logger.Debug("actors without stored profiles skipped", "missing", len(ids)-len(candidates))
	}
	return candidates, nil
}

// rerank submits the leading candidates to the reranking oracle. On
// success the oracle's judgment supersedes the heuristic scores entirely
// and unreferenced candidates are dropped; on failure the pre-rerank list
// stands unchanged.
func (r *Retriever) rerank(ctx context.Context, query string, intent *core.Intent, candidates []*core.Candidate) []*core.Candidate {
	window := candidates
	if len(window) > rerankLimit {
		window = window[:rerankLimit]
	}

	judgments, err := r.reranker.Rerank(ctx, query, *intent, window)
	if err != nil {
		r.logger.Warn("reranking failed, keeping heuristic order", "err", err)
		return candidates
	}

	reranked := make([]*core.Candidate, 0, len(judgments))
	for _, j := range judgments {
		if j.Index < 0 || j.Index >= len(window) {
			continue
		}
		c := window[j.Index]
		reranked = append(reranked, &core.Candidate{
			ActorID: c.ActorID,
			Score:   j.Score,
			Reason:  j.Reason,
			Profile: c.Profile,
		})
	}
	return reranked
}

// Evaluate submits a finished result list to the evaluation oracle and
// returns its quality report. Advisory only; not part of the search
// critical path.
func (r *Retriever) Evaluate(ctx context.Context, query string, results []*core.Candidate, intent core.Intent) (*ai.Evaluation, error) {
	return r.evaluator.Evaluate(ctx, query, results, intent)
}
