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


package scout

import (
	"context"
	"log/slog"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/ai/openai"
	"github.com/poiesic/scout/ingestion"
	"github.com/poiesic/scout/search"
	"github.com/poiesic/scout/storage"
	"github.com/poiesic/scout/storage/badger"
)

// Engine bundles the storage backend and AI provider behind one handle and
// hands out the ingestion pipeline and retriever built on them.
type Engine struct {
	store    storage.Store
	provider ai.AIProvider
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
}

// WithAIConfig sets the AI service configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithProvider injects a pre-built AI provider, bypassing the OpenAI
// provider construction. Used by tests to supply mocks.
func WithProvider(provider ai.AIProvider) EngineOption {
	return func(o *engineOptions) {
		if provider != nil {
			o.provider = provider
		}
	}
}

// NewEngine opens the store at filePath and wires up the AI provider.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	// Apply options
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	store, err := badger.NewStore(filePath)
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	return &Engine{
		store:    store,
		provider: provider,
		logger:   slog.Default(),
	}, nil
}

// Close releases the AI provider and the storage backend.
func (e *Engine) Close() error {
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}
	if err := e.store.Close(); err != nil {
		e.logger.Error("error closing store", "err", err)
		return err
	}
	return nil
}

// Store returns the underlying vector and profile store.
func (e *Engine) Store() storage.Store {
	return e.store
}

// Provider returns the AI provider.
func (e *Engine) Provider() ai.AIProvider {
	return e.provider
}

// NewIngestionPipeline builds an ingestion pipeline over the engine's
// store and provider.
func (e *Engine) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(e.store, e.provider, opts...)
}

// NewRetriever builds a retriever over the engine's store and provider.
func (e *Engine) NewRetriever(opts ...search.Option) (*search.Retriever, error) {
	return search.NewRetriever(e.store, e.provider, opts...)
}

// Stats reports the vector record count per namespace plus the stored
// profile count under the "profiles" key.
func (e *Engine) Stats(ctx context.Context) (map[string]int, error) {
	stats, err := e.store.Stats(ctx)
	if err != nil {
		return nil, err
	}
	profiles, err := e.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats["profiles"] = profiles
	return stats, nil
}
