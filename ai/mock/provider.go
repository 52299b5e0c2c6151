package mock

import (
	"github.com/poiesic/scout/ai"
)

// MockProvider is a test double for ai.AIProvider.
// It bundles mock implementations of all oracle interfaces.
type MockProvider struct {
	embedder  *MockEmbedder
	parser    *MockQueryParser
	reranker  *MockReranker
	evaluator *MockEvaluator
}

// NewMockProvider creates a provider with default mock services.
func NewMockProvider() ai.AIProvider {
	return &MockProvider{
		embedder:  NewMockEmbedder(),
		parser:    NewMockQueryParser(),
		reranker:  NewMockReranker(),
		evaluator: NewMockEvaluator(),
	}
}

// NewMockProviderWithServices creates a provider with the given mocks,
// filling in defaults for any nil service.
func NewMockProviderWithServices(embedder *MockEmbedder, parser *MockQueryParser, reranker *MockReranker, evaluator *MockEvaluator) *MockProvider {
	if embedder == nil {
		embedder = NewMockEmbedder()
	}
	if parser == nil {
		parser = NewMockQueryParser()
	}
	if reranker == nil {
		reranker = NewMockReranker()
	}
	if evaluator == nil {
		evaluator = NewMockEvaluator()
	}
	return &MockProvider{
		embedder:  embedder,
		parser:    parser,
		reranker:  reranker,
		evaluator: evaluator,
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// QueryParser returns the mock query parser.
func (p *MockProvider) QueryParser() ai.QueryParser {
	return p.parser
}

// Reranker returns the mock reranker.
func (p *MockProvider) Reranker() ai.Reranker {
	return p.reranker
}

// Evaluator returns the mock evaluator.
func (p *MockProvider) Evaluator() ai.Evaluator {
	return p.evaluator
}

// Close is a no-op for mocks.
func (p *MockProvider) Close() error {
	return nil
}

// GetEmbedder returns the concrete mock for test assertions.
func (p *MockProvider) GetEmbedder() *MockEmbedder {
	return p.embedder
}

// GetQueryParser returns the concrete mock for test assertions.
func (p *MockProvider) GetQueryParser() *MockQueryParser {
	return p.parser
}

// GetReranker returns the concrete mock for test assertions.
func (p *MockProvider) GetReranker() *MockReranker {
	return p.reranker
}

// GetEvaluator returns the concrete mock for test assertions.
func (p *MockProvider) GetEvaluator() *MockEvaluator {
	return p.evaluator
}
