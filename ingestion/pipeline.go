package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/storage"
)

const (
	defaultRetryAttempts   = 3
	defaultRetryDelay      = time.Second
	defaultUpsertBatchSize = 50
)

// Pipeline orchestrates the ingestion of actor records. It normalizes
// actors into category chunks, embeds them, and upserts the vectors into
// their namespaces concurrently.
type Pipeline struct {
	store           storage.Store
	embedder        ai.Embedder
	pool            *ants.Pool
	retryAttempts   int
	retryDelay      time.Duration
	upsertBatchSize int
	logger          *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent namespace processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithRetry sets the attempt count and fixed delay used for embedding and
// upsert retries.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(p *Pipeline) error {
		if attempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		p.retryAttempts = attempts
		p.retryDelay = delay
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(store storage.Store, provider ai.AIProvider, opts ...Option) (*Pipeline, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if provider == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		store:           store,
		embedder:        provider.Embedder(),
		pool:            pool,
		retryAttempts:   defaultRetryAttempts,
		retryDelay:      defaultRetryDelay,
		upsertBatchSize: defaultUpsertBatchSize,
		logger:          slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// IngestStats summarizes one ingestion run.
type IngestStats struct {
	Actors   int
	Profiles int
	Chunks   map[core.ChunkType]int
}

// Ingest normalizes the given actors, stores their display profiles, and
// embeds and upserts their chunks per namespace. Namespaces are processed
// concurrently; Ingest blocks until all finish and returns the combined
// error if any namespace failed.
func (p *Pipeline) Ingest(ctx context.Context, actors []*core.Actor) (*IngestStats, error) {
	profiles := make([]*core.Profile, 0, len(actors))
	byNamespace := make(map[core.ChunkType][]*core.Chunk)

	for _, actor := range actors {
		if err := core.ValidateActor(actor); err != nil {
			return nil, err
		}
		profile, chunks := Normalize(actor)
		profiles = append(profiles, profile)
		for _, chunk := range chunks {
			byNamespace[chunk.Type] = append(byNamespace[chunk.Type], chunk)
		}
	}

	if err := p.store.PutProfiles(ctx, profiles...); err != nil {
		return nil, err
	}

	stats := &IngestStats{
		Actors:   len(actors),
		Profiles: len(profiles),
		Chunks:   make(map[core.ChunkType]int),
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, namespace := range core.Namespaces() {
		chunks := byNamespace[namespace]
		if len(chunks) == 0 {
			continue
		}
		stats.Chunks[namespace] = len(chunks)

		ns := namespace
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			if err := p.processNamespace(ctx, ns, chunks); err != nil {
				p.logger.Error("namespace ingestion failed", "namespace", ns, "err", err)
				mu.Lock()
				errs = append(errs, fmt.Errorf("namespace %s: %w", ns, err))
				mu.Unlock()
			}
		})
		if err != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}
	}

	wg.Wait()

	if len(errs) > 0 {
		return stats, errors.Join(errs...)
	}
	return stats, nil
}

// processNamespace embeds all chunk texts for one namespace and upserts
// the resulting vector records in batches.
func (p *Pipeline) processNamespace(ctx context.Context, namespace core.ChunkType, chunks []*core.Chunk) error {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	var vectors [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var embErr error
		vectors, embErr = p.embedder.EmbedTexts(ctx, texts)
		return embErr
	}, p.retryAttempts, p.retryDelay)
	if err != nil {
		return err
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: got %d for %d chunks", len(vectors), len(chunks))
	}

	// The chunk index is per actor, not per batch, so an actor's records
	// keep the same IDs across ingest runs and re-ingestion overwrites
	// them instead of accumulating stale copies.
	records := make([]*core.VectorRecord, len(chunks))
	perActor := make(map[core.ActorID]int)
	for i, chunk := range chunks {
		records[i] = &core.VectorRecord{
			ID:     fmt.Sprintf("%s_%s_%d", namespace, chunk.ActorID, perActor[chunk.ActorID]),
			Vector: vectors[i],
			Meta:   chunk.Meta,
		}
		perActor[chunk.ActorID]++
	}

	for start := 0; start < len(records); start += p.upsertBatchSize {
		end := start + p.upsertBatchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]
		err := RetryWithBackoff(ctx, func() error {
			return p.store.Upsert(ctx, string(namespace), batch...)
		}, p.retryAttempts, p.retryDelay)
		if err != nil {
			return err
		}
	}

	p.logger.Info("namespace ingested", "namespace", namespace, "chunks", len(chunks))
	return nil
}

// RefreshProfiles rebuilds and stores the display profiles for the given
// actors without touching the vector namespaces. Used when the vector
// index is intact but the profile cache needs regenerating.
func (p *Pipeline) RefreshProfiles(ctx context.Context, actors []*core.Actor) (int, error) {
	profiles := make([]*core.Profile, 0, len(actors))
	for _, actor := range actors {
		if err := core.ValidateActor(actor); err != nil {
			return 0, err
		}
		profile, _ := Normalize(actor)
		profiles = append(profiles, profile)
	}
	if err := p.store.PutProfiles(ctx, profiles...); err != nil {
		return 0, err
	}
	return len(profiles), nil
}

// Reset deletes every record in all category namespaces.
func (p *Pipeline) Reset(ctx context.Context) error {
	for _, namespace := range core.Namespaces() {
		if err := p.store.DeleteNamespace(ctx, string(namespace)); err != nil {
			return fmt.Errorf("reset namespace %s: %w", namespace, err)
		}
	}
	return nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
