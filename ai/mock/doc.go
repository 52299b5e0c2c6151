// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.QueryParser,
// ai.Reranker, ai.Evaluator, and ai.AIProvider for use in unit tests. The
// mocks allow tests to run without external AI service dependencies and
// enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	embedding, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	parser := mock.NewMockQueryParser()
//	parser.ParseFunc = func(ctx context.Context, query string) core.Intent {
//	    return core.Intent{Skills: []string{"golang"}}
//	}
//
//	// Check call counts
//	count := parser.CallCount()
//
// The mock embedder produces deterministic vectors derived from the input
// text, so identical texts always embed to identical vectors and similarity
// comparisons remain stable across test runs.
package mock
