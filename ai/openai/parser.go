package openai

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// parseAttempts bounds retries over malformed parser JSON.
const parseAttempts = 3

// QueryParser implements ai.QueryParser using OpenAI-compatible chat APIs.
// Parse failures are absorbed: callers always receive a usable intent.
type QueryParser struct {
	client llms.Model
	cache  *ai.IntentCache
	logger *slog.Logger
}

// newQueryParser is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newQueryParser(config *ai.Config, cache *ai.IntentCache) (*QueryParser, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if cache == nil {
		cache = ai.NewIntentCache(0)
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &QueryParser{
		client: client,
		cache:  cache,
		logger: slog.Default().With("component", "openai-parser"),
	}, nil
}

// NewQueryParser creates a new query parser using the provided
// configuration and intent cache (nil cache gets a default one).
//
// Returns ai.QueryParser interface to enforce abstraction.
func NewQueryParser(config *ai.Config, cache *ai.IntentCache) (ai.QueryParser, error) {
	return newQueryParser(config, cache)
}

// ParseQuery normalizes and parses a free-text query into a structured,
// alias-expanded Intent. Results are cached by normalized query hash.
// On any internal failure the permissive fallback intent is returned.
func (p *QueryParser) ParseQuery(ctx context.Context, query string) core.Intent {
	if cached, ok := p.cache.Get(query); ok {
		p.logger.Debug("intent cache hit", "query", query)
		return cached
	}

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(buildParsePrompt())},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(
				"Parse and normalize this query: \"" + query + "\"\n\nReturn ONLY valid JSON, no markdown or explanation.")},
		},
	}

	var intent core.Intent
	for attempt := 1; attempt <= parseAttempts; attempt++ {
		response, err := p.client.GenerateContent(ctx, content, llms.WithTemperature(0.1), llms.WithJSONMode())
		if err != nil {
			p.logger.Warn("query parse call failed, using fallback intent", "query", query, "err", err)
			return core.FallbackIntent(query)
		}

		if len(response.Choices) < 1 {
			p.logger.Warn("no choices from parser model, using fallback intent", "query", query)
			return core.FallbackIntent(query)
		}

		responseText := cleanResponse(response.Choices[0].Content)
		if err := json.Unmarshal([]byte(responseText), &intent); err != nil {
			p.logger.Warn("error parsing intent response",
				"attempt", attempt,
				"response", responseText,
				"err", err)
			if attempt == parseAttempts {
				return core.FallbackIntent(query)
			}
			continue
		}
		break
	}

	intent.Normalize()
	if intent.NormalizedQuery == "" {
		intent.NormalizedQuery = query
	}

	p.cache.Put(query, intent)
	return intent
}
