package mock

import (
	"context"

	"github.com/poiesic/scout/core"
)

// MockQueryParser is a test double for ai.QueryParser.
// It allows custom behavior injection via function fields.
type MockQueryParser struct {
	// ParseFunc is called by ParseQuery if set.
	// If nil, returns the fallback intent for the query.
	ParseFunc func(ctx context.Context, query string) core.Intent

	callCount int
}

// NewMockQueryParser creates a mock parser with default fallback behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockQueryParser() *MockQueryParser {
	return &MockQueryParser{}
}

// ParseQuery returns the injected intent, or the fallback intent when no
// behavior has been injected.
func (m *MockQueryParser) ParseQuery(ctx context.Context, query string) core.Intent {
	m.callCount++

	if m.ParseFunc != nil {
		return m.ParseFunc(ctx, query)
	}

	return core.FallbackIntent(query)
}

// CallCount returns the number of times ParseQuery was called.
func (m *MockQueryParser) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockQueryParser) Reset() {
	m.callCount = 0
	m.ParseFunc = nil
}
