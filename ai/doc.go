// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package ai provides abstractions for the AI oracles used by scout.
//
// The retrieval engine treats all AI services as pure input/output
// contracts:
//
//   - Embedder: text to dense vector, batched
//   - QueryParser: free-text query to structured Intent (with fallback)
//   - Reranker: relevance judgments over candidate lists
//   - Evaluator: offline result-quality reports
//   - AIProvider: aggregates the above for initialization and lifecycle
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external services
//
// Public constructors (openai.NewProvider, ...) return INTERFACE types to
// enforce abstraction. Test utility constructors (mock.NewMockEmbedder,
// ...) return CONCRETE types to enable assertions and behavior injection
// via function fields.
//
// # Intent Cache
//
// IntentCache is an explicitly-owned, bounded cache of parsed intents.
// It is injected into the parser rather than held as ambient process
// state, which keeps tests isolated and eviction behavior testable.
//
// # Usage Example
//
//	config := ai.DefaultConfig()
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	intent := provider.QueryParser().ParseQuery(ctx, "Stanford and MIT grads")
//	vec, err := provider.Embedder().EmbedText(ctx, "Studied at Stanford")
package ai
