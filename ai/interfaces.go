package ai

import (
	"context"

	"github.com/poiesic/scout/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch, preserving input order. Empty input yields empty output.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// QueryParser turns a free-text query into a structured, alias-expanded
// Intent. Implementations absorb all internal failures and return the
// permissive fallback intent instead of an error, so callers never need
// parse-failure handling. Implementations must be thread-safe.
type QueryParser interface {
	ParseQuery(ctx context.Context, query string) core.Intent
}

// Judgment is one reranker verdict, addressing a candidate by its index
// in the submitted slice. Score is authoritative (0.0-1.0).
type Judgment struct {
	Index  int     `json:"index"`
	Score  float32 `json:"score"`
	Reason string  `json:"reason"`
}

// Reranker judges candidate relevance against the original query and
// parsed intent. Candidates absent from the returned judgments are to be
// dropped by the caller. A non-nil error means the oracle's output was
// unusable and the pre-rerank ordering should stand.
type Reranker interface {
	Rerank(ctx context.Context, query string, intent core.Intent, candidates []*core.Candidate) ([]Judgment, error)
}

// Evaluation is a structured quality report for one query's results.
// Advisory only; never gates online results.
type Evaluation struct {
	OverallScore float32  `json:"overall_score"` // 0-10
	Precision    float32  `json:"precision"`     // 0-1
	Issues       []string `json:"issues"`
	Feedback     string   `json:"feedback"`
	Suggestions  []string `json:"suggestions"`
}

// Evaluator scores the quality of a finished result list.
type Evaluator interface {
	Evaluate(ctx context.Context, query string, results []*core.Candidate, intent core.Intent) (*Evaluation, error)
}

// AIProvider aggregates the AI oracles for convenient initialization and
// lifecycle management. All returned services are safe for concurrent use.
type AIProvider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// QueryParser returns the query intent parsing service.
	QueryParser() QueryParser

	// Reranker returns the relevance judging service.
	Reranker() Reranker

	// Evaluator returns the result quality evaluation service.
	Evaluator() Evaluator

	// Close releases resources held by the provider and its services.
	Close() error
}
