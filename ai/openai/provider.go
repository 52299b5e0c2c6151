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


package openai

import (
	"log/slog"

	"github.com/poiesic/scout/ai"
)

// Provider implements ai.AIProvider using OpenAI-compatible services.
// It manages the embedder, query parser, reranker, and evaluator.
type Provider struct {
	config    *ai.Config
	embedder  *Embedder
	parser    *QueryParser
	reranker  *Reranker
	evaluator *Evaluator
	logger    *slog.Logger
}

// ProviderOption configures a Provider.
type ProviderOption func(*providerOptions)

type providerOptions struct {
	intentCache *ai.IntentCache
}

// WithIntentCache injects a shared intent cache into the query parser.
// Default is a fresh cache with the default high-water mark.
func WithIntentCache(cache *ai.IntentCache) ProviderOption {
	return func(o *providerOptions) {
		if cache != nil {
			o.intentCache = cache
		}
	}
}

// NewProvider creates a new AI provider with OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Returns ai.AIProvider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config, opts ...ProviderOption) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	options := &providerOptions{
		intentCache: ai.NewIntentCache(0),
	}
	for _, opt := range opts {
		opt(options)
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	parser, err := newQueryParser(config, options.intentCache)
	if err != nil {
		return nil, err
	}

	reranker, err := newReranker(config)
	if err != nil {
		return nil, err
	}

	evaluator, err := newEvaluator(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:    config,
		embedder:  embedder,
		parser:    parser,
		reranker:  reranker,
		evaluator: evaluator,
		logger:    slog.Default().With("component", "openai-provider"),
	}, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// QueryParser returns the query intent parsing service.
func (p *Provider) QueryParser() ai.QueryParser {
	return p.parser
}

// Reranker returns the relevance judging service.
func (p *Provider) Reranker() ai.Reranker {
	return p.reranker
}

// Evaluator returns the result quality evaluation service.
func (p *Provider) Evaluator() ai.Evaluator {
	return p.evaluator
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
