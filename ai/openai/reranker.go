package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// rerankWindow caps how many candidates are submitted for judging.
const rerankWindow = 20

// Reranker implements ai.Reranker using an OpenAI-compatible chat API as
// a relevance judge.
type Reranker struct {
	client llms.Model
	logger *slog.Logger
}

// newReranker is an internal constructor that returns the concrete type.
func newReranker(config *ai.Config) (*Reranker, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &Reranker{
		client: client,
		logger: slog.Default().With("component", "openai-reranker"),
	}, nil
}

// NewReranker creates a new reranker using the provided configuration.
//
// Returns ai.Reranker interface to enforce abstraction.
func NewReranker(config *ai.Config) (ai.Reranker, error) {
	return newReranker(config)
}

// Rerank submits up to 20 candidates to the judge and returns its
// verdicts. A returned error means the response was unusable and the
// caller should keep its pre-rerank ordering.
func (r *Reranker) Rerank(ctx context.Context, query string, intent core.Intent, candidates []*core.Candidate) ([]ai.Judgment, error) {
	if len(candidates) == 0 {
		return []ai.Judgment{}, nil
	}
	if len(candidates) > rerankWindow {
		candidates = candidates[:rerankWindow]
	}

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(rerankSystemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(buildRerankPrompt(query, intent, candidates))},
		},
	}

	response, err := r.client.GenerateContent(ctx, content, llms.WithTemperature(0.1))
	if err != nil {
		r.logger.Error("rerank call failed", "err", err)
		return nil, err
	}
	if len(response.Choices) < 1 {
		return nil, fmt.Errorf("reranker returned no choices")
	}

	responseText := cleanResponse(response.Choices[0].Content)

	var judgments []ai.Judgment
	if err := json.Unmarshal([]byte(responseText), &judgments); err != nil {
		r.logger.Warn("error parsing rerank response", "response", responseText, "err", err)
		return nil, err
	}

	// Indices are zero-based per the prompt; discard anything out of range.
	valid := judgments[:0]
	for _, j := range judgments {
		if j.Index >= 0 && j.Index < len(candidates) {
			valid = append(valid, j)
		}
	}

	return valid, nil
}
