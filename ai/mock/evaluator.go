package mock

import (
	"context"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/core"
)

// MockEvaluator is a test double for ai.Evaluator.
// It allows custom behavior injection via function fields.
type MockEvaluator struct {
	// EvaluateFunc is called by Evaluate if set.
	// If nil, returns a neutral evaluation.
	EvaluateFunc func(ctx context.Context, query string, results []*core.Candidate, intent core.Intent) (*ai.Evaluation, error)

	callCount int
}

// NewMockEvaluator creates a mock evaluator with neutral default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockEvaluator() *MockEvaluator {
	return &MockEvaluator{}
}

// Evaluate returns the injected evaluation, or a neutral one when no
// behavior has been injected.
func (m *MockEvaluator) Evaluate(ctx context.Context, query string, results []*core.Candidate, intent core.Intent) (*ai.Evaluation, error) {
	m.callCount++

	if m.EvaluateFunc != nil {
		return m.EvaluateFunc(ctx, query, results, intent)
	}

	return &ai.Evaluation{
		OverallScore: 5.0,
		Precision:    1.0,
		Feedback:     "mock evaluation",
	}, nil
}

// CallCount returns the number of times Evaluate was called.
func (m *MockEvaluator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockEvaluator) Reset() {
	m.callCount = 0
	m.EvaluateFunc = nil
}
