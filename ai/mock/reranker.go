package mock

import (
	"context"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/core"
)

// MockReranker is a test double for ai.Reranker.
// It allows custom behavior injection via function fields.
type MockReranker struct {
	// RerankFunc is called by Rerank if set.
	// If nil, echoes the candidates back with their existing scores.
	RerankFunc func(ctx context.Context, query string, intent core.Intent, candidates []*core.Candidate) ([]ai.Judgment, error)

	callCount int
}

// NewMockReranker creates a mock reranker that preserves candidate order.
// Note: Returns concrete type to allow test assertions.
func NewMockReranker() *MockReranker {
	return &MockReranker{}
}

// Rerank returns injected judgments, or one judgment per candidate keeping
// the incoming scores when no behavior has been injected.
func (m *MockReranker) Rerank(ctx context.Context, query string, intent core.Intent, candidates []*core.Candidate) ([]ai.Judgment, error) {
	m.callCount++

	if m.RerankFunc != nil {
		return m.RerankFunc(ctx, query, intent, candidates)
	}

	judgments := make([]ai.Judgment, len(candidates))
	for i, c := range candidates {
		judgments[i] = ai.Judgment{
			Index: i,
			Score: c.Score,
		}
	}
	return judgments, nil
}

// CallCount returns the number of times Rerank was called.
func (m *MockReranker) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockReranker) Reset() {
	m.callCount = 0
	m.RerankFunc = nil
}
